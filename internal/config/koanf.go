// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/collabscout/config.yaml",
	"/etc/collabscout/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Provider: ProviderConfig{
			Source:        SourceLive,
			FixturePath:   "", // embedded demo fixture
			ProbeInterval: time.Minute,
			ProbeFID:      1,
		},
		Neynar: NeynarConfig{
			BaseURL:           "https://api.neynar.com",
			APIKey:            "",
			Timeout:           8 * time.Second,
			PageSize:          100,
			RequestsPerSecond: 20,
			Burst:             10,
			ViewerFID:         0,
		},
		Breaker: BreakerConfig{
			Enabled:      true,
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      30 * time.Second,
			FailureRatio: 0.6,
			MinRequests:  10,
		},
		Recommend: RecommendConfig{
			Weights: WeightsConfig{
				Overlap:            0.35,
				EngagementAffinity: 0.20,
				TopicSimilarity:    0.20,
				AudienceQuality:    0.15,
				Momentum:           0.10,
			},
			Thresholds: ThresholdsConfig{
				Overlap:            0.05,
				EngagementAffinity: 0.6,
				TopicSimilarity:    0.5,
				AudienceQuality:    0.7,
				Momentum:           0.5,
			},
			Version:                "1.0",
			DefaultLimit:           10,
			MaxLimit:               50,
			CandidatePoolSize:      25,
			MaxScored:              50,
			FollowerSampleSize:     1000,
			PostHistorySize:        100,
			Concurrency:            8,
			MomentumLookback:       28 * 24 * time.Hour,
			NeutralAudienceQuality: 0.5,
			PoolSort:               "algorithmic",
		},
		Security: SecurityConfig{
			SessionSecret:     "",
			SessionCookie:     "session",
			SessionTimeout:    time.Hour,
			RateLimitReqs:     60,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := DefaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Environment variables (highest priority)
	// NEYNAR_API_KEY -> neynar.api_key
	// RECOMMEND_CONCURRENCY -> recommend.concurrency
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Graph data source
	"graph_source":         "provider.source",
	"graph_fixture_path":   "provider.fixture_path",
	"graph_probe_interval": "provider.probe_interval",
	"graph_probe_fid":      "provider.probe_fid",

	// Neynar
	"neynar_base_url":   "neynar.base_url",
	"neynar_api_key":    "neynar.api_key",
	"neynar_timeout":    "neynar.timeout",
	"neynar_page_size":  "neynar.page_size",
	"neynar_rps":        "neynar.requests_per_second",
	"neynar_burst":      "neynar.burst",
	"neynar_viewer_fid": "neynar.viewer_fid",

	// Circuit breaker
	"breaker_enabled":       "breaker.enabled",
	"breaker_max_requests":  "breaker.max_requests",
	"breaker_interval":      "breaker.interval",
	"breaker_timeout":       "breaker.timeout",
	"breaker_failure_ratio": "breaker.failure_ratio",
	"breaker_min_requests":  "breaker.min_requests",

	// Scoring
	"recommend_version":                  "recommend.version",
	"recommend_default_limit":            "recommend.default_limit",
	"recommend_max_limit":                "recommend.max_limit",
	"recommend_candidate_pool_size":      "recommend.candidate_pool_size",
	"recommend_max_scored":               "recommend.max_scored",
	"recommend_follower_sample_size":     "recommend.follower_sample_size",
	"recommend_post_history_size":        "recommend.post_history_size",
	"recommend_concurrency":              "recommend.concurrency",
	"recommend_momentum_lookback":        "recommend.momentum_lookback",
	"recommend_neutral_audience_quality": "recommend.neutral_audience_quality",
	"recommend_pool_sort":                "recommend.pool_sort",
	"recommend_weight_overlap":           "recommend.weights.overlap",
	"recommend_weight_engagement":        "recommend.weights.engagement_affinity",
	"recommend_weight_topic":             "recommend.weights.topic_similarity",
	"recommend_weight_audience_quality":  "recommend.weights.audience_quality",
	"recommend_weight_momentum":          "recommend.weights.momentum",

	// Security
	"session_secret":      "security.session_secret",
	"session_cookie":      "security.session_cookie",
	"session_timeout":     "security.session_timeout",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - NEYNAR_API_KEY -> neynar.api_key
//   - GRAPH_SOURCE -> provider.source
//   - HTTP_PORT -> server.port
//
// Unmapped variables return an empty key and are skipped, so unrelated
// environment variables never pollute the configuration.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
