// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package config

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Upper bounds shared with the recommendation engine.
const (
	// MaxResultLimit caps the number of recommendations returned per request.
	MaxResultLimit = 50

	// MaxConcurrency caps the candidate worker pool.
	MaxConcurrency = 8

	minUpstreamTimeout = time.Second
	maxUpstreamTimeout = 30 * time.Second

	// minSessionSecretLength is the minimum length of the HS256 session secret.
	minSessionSecretLength = 32
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that required configuration is present and valid.
//
// A missing NEYNAR_API_KEY is deliberately not rejected here: the live provider
// reports it at construction so the process can still serve health and metrics.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateProvider(); err != nil {
		return err
	}

	if err := c.validateNeynar(); err != nil {
		return err
	}

	if err := c.validateBreaker(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateProvider() error {
	switch c.Provider.Source {
	case SourceLive, SourceFixture:
	default:
		return fmt.Errorf("GRAPH_SOURCE must be one of: live, fixture (got %q)", c.Provider.Source)
	}
	if c.Provider.ProbeInterval < 0 {
		return fmt.Errorf("GRAPH_PROBE_INTERVAL must not be negative")
	}
	if c.Provider.ProbeFID < 0 {
		return fmt.Errorf("GRAPH_PROBE_FID must not be negative")
	}
	return nil
}

// validateNeynar validates the live provider settings (only if selected)
func (c *Config) validateNeynar() error {
	if !c.IsLive() {
		return nil
	}
	if err := validateHTTPURL(c.Neynar.BaseURL, "NEYNAR_BASE_URL"); err != nil {
		return err
	}
	if c.Neynar.Timeout < minUpstreamTimeout || c.Neynar.Timeout > maxUpstreamTimeout {
		return fmt.Errorf("NEYNAR_TIMEOUT must be between %s and %s", minUpstreamTimeout, maxUpstreamTimeout)
	}
	if c.Neynar.PageSize < 1 || c.Neynar.PageSize > 1000 {
		return fmt.Errorf("NEYNAR_PAGE_SIZE must be between 1 and 1000")
	}
	if c.Neynar.RequestsPerSecond <= 0 {
		return fmt.Errorf("NEYNAR_RPS must be positive")
	}
	if c.Neynar.Burst < 1 {
		return fmt.Errorf("NEYNAR_BURST must be at least 1")
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive")
	}
	return nil
}

// validateRecommend validates scoring weights, thresholds, and limits
func (c *Config) validateRecommend() error {
	r := &c.Recommend

	w := r.Weights
	weights := map[string]float64{
		"overlap":             w.Overlap,
		"engagement_affinity": w.EngagementAffinity,
		"topic_similarity":    w.TopicSimilarity,
		"audience_quality":    w.AudienceQuality,
		"momentum":            w.Momentum,
	}
	sum := 0.0
	for name, v := range weights {
		if v < 0 || v > 1 {
			return fmt.Errorf("recommend.weights.%s must be in [0, 1], got %v", name, v)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("recommend.weights must sum to 1, got %v", sum)
	}

	th := r.Thresholds
	for name, v := range map[string]float64{
		"overlap":             th.Overlap,
		"engagement_affinity": th.EngagementAffinity,
		"topic_similarity":    th.TopicSimilarity,
		"audience_quality":    th.AudienceQuality,
		"momentum":            th.Momentum,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("recommend.thresholds.%s must be in [0, 1], got %v", name, v)
		}
	}

	if r.NeutralAudienceQuality < 0 || r.NeutralAudienceQuality > 1 {
		return fmt.Errorf("RECOMMEND_NEUTRAL_AUDIENCE_QUALITY must be in [0, 1]")
	}
	if strings.TrimSpace(r.Version) == "" {
		return fmt.Errorf("RECOMMEND_VERSION is required")
	}
	if r.MaxLimit < 1 || r.MaxLimit > MaxResultLimit {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT must be between 1 and %d", MaxResultLimit)
	}
	if r.DefaultLimit < 1 || r.DefaultLimit > r.MaxLimit {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be between 1 and RECOMMEND_MAX_LIMIT (%d)", r.MaxLimit)
	}
	if r.CandidatePoolSize < 1 || r.CandidatePoolSize > MaxResultLimit {
		return fmt.Errorf("RECOMMEND_CANDIDATE_POOL_SIZE must be between 1 and %d", MaxResultLimit)
	}
	if r.MaxScored < 1 || r.MaxScored > MaxResultLimit {
		return fmt.Errorf("RECOMMEND_MAX_SCORED must be between 1 and %d", MaxResultLimit)
	}
	if r.FollowerSampleSize < 1 {
		return fmt.Errorf("RECOMMEND_FOLLOWER_SAMPLE_SIZE must be at least 1")
	}
	if r.PostHistorySize < 1 {
		return fmt.Errorf("RECOMMEND_POST_HISTORY_SIZE must be at least 1")
	}
	if r.Concurrency < 1 || r.Concurrency > MaxConcurrency {
		return fmt.Errorf("RECOMMEND_CONCURRENCY must be between 1 and %d", MaxConcurrency)
	}
	if r.MomentumLookback < 2*time.Hour {
		return fmt.Errorf("RECOMMEND_MOMENTUM_LOOKBACK must be at least 2h")
	}
	if r.PoolSort != "algorithmic" && r.PoolSort != "recent" {
		return fmt.Errorf("RECOMMEND_POOL_SORT must be one of: algorithmic, recent")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.SessionSecret != "" && len(c.Security.SessionSecret) < minSessionSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters", minSessionSecretLength)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	if c.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain * when ENVIRONMENT=production")
			}
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
