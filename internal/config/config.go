// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// config file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Configuration Categories:
//
//  1. Graph data source:
//     - Provider: live Neynar API or a local fixture document
//     - Neynar: base URL, credential, per-call timeout, pacing
//     - Breaker: circuit breaker guarding the live provider
//
//  2. Scoring:
//     - Recommend: weights, thresholds, limits, worker pool size
//
//  3. Serving:
//     - Server: HTTP listener settings
//     - Security: session tokens, CORS, inbound rate limiting
//
//  4. Observability:
//     - Logging: Log levels and output formats
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Provider  ProviderConfig  `koanf:"provider"`
	Neynar    NeynarConfig    `koanf:"neynar"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// Graph data source identifiers.
const (
	SourceLive    = "live"
	SourceFixture = "fixture"
)

// ProviderConfig selects the graph data source at startup.
type ProviderConfig struct {
	// Source is "live" (Neynar API) or "fixture" (local JSON document).
	Source string `koanf:"source"`

	// FixturePath points at a fixture document. Empty uses the embedded demo fixture.
	FixturePath string `koanf:"fixture_path"`

	// ProbeInterval is how often the upstream probe service checks the provider.
	ProbeInterval time.Duration `koanf:"probe_interval"`

	// ProbeFID is the creator looked up by the probe.
	ProbeFID int64 `koanf:"probe_fid"`
}

// NeynarConfig holds settings for the live Neynar graph provider.
type NeynarConfig struct {
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`

	// Timeout bounds every outbound call, including each page of a paged listing.
	Timeout time.Duration `koanf:"timeout"`

	// PageSize is the largest page requested from list endpoints.
	PageSize int `koanf:"page_size"`

	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	// ViewerFID is sent as viewer_fid on relation listings when non-zero.
	ViewerFID int64 `koanf:"viewer_fid"`
}

// BreakerConfig holds circuit breaker settings for the live provider.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	FailureRatio float64       `koanf:"failure_ratio"`
	MinRequests  uint32        `koanf:"min_requests"`
}

// RecommendConfig holds collaborator scoring settings.
type RecommendConfig struct {
	Weights    WeightsConfig    `koanf:"weights"`
	Thresholds ThresholdsConfig `koanf:"thresholds"`
	Version    string           `koanf:"version"`

	DefaultLimit       int `koanf:"default_limit"`
	MaxLimit           int `koanf:"max_limit"`
	CandidatePoolSize  int `koanf:"candidate_pool_size"`
	MaxScored          int `koanf:"max_scored"`
	FollowerSampleSize int `koanf:"follower_sample_size"`
	PostHistorySize    int `koanf:"post_history_size"`

	// Concurrency is the number of candidates fetched in parallel.
	Concurrency int `koanf:"concurrency"`

	MomentumLookback time.Duration `koanf:"momentum_lookback"`

	// NeutralAudienceQuality replaces an unknown upstream quality score.
	NeutralAudienceQuality float64 `koanf:"neutral_audience_quality"`

	// PoolSort is the upstream ranking used when discovering candidates: algorithmic or recent.
	PoolSort string `koanf:"pool_sort"`
}

// WeightsConfig holds the five scoring coefficients. They must sum to 1.
type WeightsConfig struct {
	Overlap            float64 `koanf:"overlap"`
	EngagementAffinity float64 `koanf:"engagement_affinity"`
	TopicSimilarity    float64 `koanf:"topic_similarity"`
	AudienceQuality    float64 `koanf:"audience_quality"`
	Momentum           float64 `koanf:"momentum"`
}

// ThresholdsConfig holds the minimum signal values that produce a reason string.
type ThresholdsConfig struct {
	Overlap            float64 `koanf:"overlap"`
	EngagementAffinity float64 `koanf:"engagement_affinity"`
	TopicSimilarity    float64 `koanf:"topic_similarity"`
	AudienceQuality    float64 `koanf:"audience_quality"`
	Momentum           float64 `koanf:"momentum"`
}

// SecurityConfig holds session resolution and inbound protection settings
type SecurityConfig struct {
	// SessionSecret verifies HS256 session tokens. Empty disables session resolution.
	SessionSecret     string        `koanf:"session_secret"`
	SessionCookie     string        `koanf:"session_cookie"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
// These settings are used to initialize the global zerolog logger.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// IsLive reports whether the live Neynar provider is selected.
func (c *Config) IsLive() bool {
	return c.Provider.Source == SourceLive
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from defaults, an optional config file, and
// environment variables (later sources override earlier ones).
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
