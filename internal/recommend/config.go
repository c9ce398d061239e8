// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package recommend

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tomtom215/collabscout/internal/graph"
)

const (
	// MaxPoolSize caps distinct candidates per request and the result limit.
	MaxPoolSize = 50

	// MaxConcurrency caps parallel candidate fetches.
	MaxConcurrency = 8

	// weightSumTolerance absorbs float error when checking that weights sum to 1.
	weightSumTolerance = 1e-9
)

// Config contains all configuration for the collaborator scoring engine.
type Config struct {
	// Weights are the five scoring coefficients. They must sum to 1.0.
	Weights Weights `json:"weights"`

	// Thresholds are the minimum signal values that emit a reason.
	Thresholds Thresholds `json:"thresholds"`

	// Version tags the weights in every response.
	// Default: "1.0".
	Version string `json:"version"`

	// DefaultLimit applies when a request does not name a limit.
	// Default: 10.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit clamps larger requested limits.
	// Default: 50.
	MaxLimit int `json:"max_limit"`

	// CandidatePoolSize is how many followed accounts are considered.
	// Default: 25.
	CandidatePoolSize int `json:"candidate_pool_size"`

	// MaxScored stops collecting after this many candidates scored successfully.
	// Default: 50.
	MaxScored int `json:"max_scored"`

	// FollowerSampleSize bounds each follower set used for overlap.
	// Default: 1000.
	FollowerSampleSize int `json:"follower_sample_size"`

	// PostHistorySize bounds each post history.
	// Default: 100.
	PostHistorySize int `json:"post_history_size"`

	// Concurrency is the candidate worker pool size.
	// Default: 8.
	Concurrency int `json:"concurrency"`

	// MomentumLookback is split into equal recent and prior windows.
	// Default: 28 days.
	MomentumLookback time.Duration `json:"momentum_lookback"`

	// NeutralAudienceQuality substitutes an unknown upstream quality score.
	// Default: 0.5.
	NeutralAudienceQuality float64 `json:"neutral_audience_quality"`

	// PoolSort is the upstream ranking of the candidate pool.
	// Default: algorithmic.
	PoolSort graph.SortOrder `json:"pool_sort"`
}

// Weights holds the five scoring coefficients.
type Weights struct {
	Overlap            float64 `json:"overlap"`
	EngagementAffinity float64 `json:"engagementAffinity"`
	TopicSimilarity    float64 `json:"topicSimilarity"`
	AudienceQuality    float64 `json:"audienceQuality"`
	Momentum           float64 `json:"momentum"`
}

// Weight map keys, shared by ToMap and WeightsFromMap.
const (
	keyOverlap            = "overlap"
	keyEngagementAffinity = "engagementAffinity"
	keyTopicSimilarity    = "topicSimilarity"
	keyAudienceQuality    = "audienceQuality"
	keyMomentum           = "momentum"
)

// Sum returns the total of all coefficients.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) Sum() float64 {
	return w.Overlap + w.EngagementAffinity + w.TopicSimilarity + w.AudienceQuality + w.Momentum
}

// ToMap returns the weights as a string-keyed map.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) ToMap() map[string]float64 {
	return map[string]float64{
		keyOverlap:            w.Overlap,
		keyEngagementAffinity: w.EngagementAffinity,
		keyTopicSimilarity:    w.TopicSimilarity,
		keyAudienceQuality:    w.AudienceQuality,
		keyMomentum:           w.Momentum,
	}
}

// WeightsFromMap is the inverse of ToMap. All five keys are required.
func WeightsFromMap(m map[string]float64) (Weights, error) {
	var w Weights
	fields := []struct {
		key string
		dst *float64
	}{
		{keyOverlap, &w.Overlap},
		{keyEngagementAffinity, &w.EngagementAffinity},
		{keyTopicSimilarity, &w.TopicSimilarity},
		{keyAudienceQuality, &w.AudienceQuality},
		{keyMomentum, &w.Momentum},
	}
	for _, f := range fields {
		v, ok := m[f.key]
		if !ok {
			return Weights{}, fmt.Errorf("weight %q missing", f.key)
		}
		*f.dst = v
	}
	if len(m) != len(fields) {
		return Weights{}, fmt.Errorf("expected %d weights, got %d", len(fields), len(m))
	}
	return w, nil
}

// Validate checks every coefficient is in [0,1] and that they sum to 1.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) Validate() error {
	for key, v := range w.ToMap() {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("weights.%s must be in [0, 1], got %v", key, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// Thresholds holds the minimum signal values that produce a reason string.
type Thresholds struct {
	Overlap            float64 `json:"overlap"`
	EngagementAffinity float64 `json:"engagementAffinity"`
	TopicSimilarity    float64 `json:"topicSimilarity"`
	AudienceQuality    float64 `json:"audienceQuality"`
	Momentum           float64 `json:"momentum"`
}

// DefaultWeights returns the version 1.0 coefficients.
func DefaultWeights() Weights {
	return Weights{
		Overlap:            0.35,
		EngagementAffinity: 0.20,
		TopicSimilarity:    0.20,
		AudienceQuality:    0.15,
		Momentum:           0.10,
	}
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: DefaultWeights(),
		Thresholds: Thresholds{
			Overlap:            0.05,
			EngagementAffinity: 0.6,
			TopicSimilarity:    0.5,
			AudienceQuality:    0.7,
			Momentum:           0.5,
		},
		Version:                "1.0",
		DefaultLimit:           10,
		MaxLimit:               MaxPoolSize,
		CandidatePoolSize:      25,
		MaxScored:              MaxPoolSize,
		FollowerSampleSize:     1000,
		PostHistorySize:        100,
		Concurrency:            MaxConcurrency,
		MomentumLookback:       28 * 24 * time.Hour,
		NeutralAudienceQuality: 0.5,
		PoolSort:               graph.SortAlgorithmic,
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}

	thresholds := map[string]float64{
		"overlap":             c.Thresholds.Overlap,
		"engagement_affinity": c.Thresholds.EngagementAffinity,
		"topic_similarity":    c.Thresholds.TopicSimilarity,
		"audience_quality":    c.Thresholds.AudienceQuality,
		"momentum":            c.Thresholds.Momentum,
	}
	for name, v := range thresholds {
		if v < 0 || v > 1 {
			return fmt.Errorf("thresholds.%s must be in [0, 1], got %v", name, v)
		}
	}

	if strings.TrimSpace(c.Version) == "" {
		return errors.New("version must not be empty")
	}
	if c.MaxLimit < 1 || c.MaxLimit > MaxPoolSize {
		return fmt.Errorf("max_limit must be between 1 and %d, got %d", MaxPoolSize, c.MaxLimit)
	}
	if c.DefaultLimit < 1 || c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("default_limit must be between 1 and max_limit (%d), got %d", c.MaxLimit, c.DefaultLimit)
	}
	if c.CandidatePoolSize < 1 || c.CandidatePoolSize > MaxPoolSize {
		return fmt.Errorf("candidate_pool_size must be between 1 and %d, got %d", MaxPoolSize, c.CandidatePoolSize)
	}
	if c.MaxScored < 1 || c.MaxScored > MaxPoolSize {
		return fmt.Errorf("max_scored must be between 1 and %d, got %d", MaxPoolSize, c.MaxScored)
	}
	if c.FollowerSampleSize < 1 {
		return fmt.Errorf("follower_sample_size must be positive, got %d", c.FollowerSampleSize)
	}
	if c.PostHistorySize < 1 {
		return fmt.Errorf("post_history_size must be positive, got %d", c.PostHistorySize)
	}
	if c.Concurrency < 1 || c.Concurrency > MaxConcurrency {
		return fmt.Errorf("concurrency must be between 1 and %d, got %d", MaxConcurrency, c.Concurrency)
	}
	if c.MomentumLookback < 2*time.Hour {
		return fmt.Errorf("momentum_lookback must be at least 2h, got %v", c.MomentumLookback)
	}
	if c.NeutralAudienceQuality < 0 || c.NeutralAudienceQuality > 1 {
		return fmt.Errorf("neutral_audience_quality must be in [0, 1], got %v", c.NeutralAudienceQuality)
	}
	if _, err := graph.ParseSortOrder(string(c.PoolSort)); err != nil {
		return fmt.Errorf("pool_sort: %w", err)
	}
	return nil
}

// resolveLimit applies the default and cap to a requested limit.
func (c *Config) resolveLimit(limit int) (int, error) {
	switch {
	case limit < 0:
		return 0, badRequest("limit must be positive, got %d", limit)
	case limit == 0:
		return c.DefaultLimit, nil
	case limit > c.MaxLimit:
		return c.MaxLimit, nil
	default:
		return limit, nil
	}
}
