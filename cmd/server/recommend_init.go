// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/collabscout/internal/config"
	"github.com/tomtom215/collabscout/internal/graph"
	"github.com/tomtom215/collabscout/internal/recommend"
)

// initRecommend creates the recommendation engine over provider.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func initRecommend(cfg *config.Config, provider graph.Provider, logger zerolog.Logger) (*recommend.Engine, error) {
	engineCfg, err := buildEngineConfig(&cfg.Recommend)
	if err != nil {
		return nil, err
	}

	engine, err := recommend.NewEngine(engineCfg, provider, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	logger.Info().
		Str("version", engineCfg.Version).
		Interface("weights", engineCfg.Weights.ToMap()).
		Int("candidate_pool_size", engineCfg.CandidatePoolSize).
		Int("concurrency", engineCfg.Concurrency).
		Float64("neutral_audience_quality", engineCfg.NeutralAudienceQuality).
		Msg("Recommendation engine initialized")

	return engine, nil
}

// buildEngineConfig maps the koanf recommend section onto the engine config.
// Load fills every key from the defaults layer, so values are taken as-is and
// an explicit zero survives. Only an entirely unset section (a Config built in
// code) falls back to the engine defaults. The result is validated.
func buildEngineConfig(rc *config.RecommendConfig) (*recommend.Config, error) {
	cfg := recommend.DefaultConfig()
	if *rc == (config.RecommendConfig{}) {
		return cfg, nil
	}

	w := rc.Weights
	cfg.Weights = recommend.Weights{
		Overlap:            w.Overlap,
		EngagementAffinity: w.EngagementAffinity,
		TopicSimilarity:    w.TopicSimilarity,
		AudienceQuality:    w.AudienceQuality,
		Momentum:           w.Momentum,
	}
	th := rc.Thresholds
	cfg.Thresholds = recommend.Thresholds{
		Overlap:            th.Overlap,
		EngagementAffinity: th.EngagementAffinity,
		TopicSimilarity:    th.TopicSimilarity,
		AudienceQuality:    th.AudienceQuality,
		Momentum:           th.Momentum,
	}

	cfg.Version = rc.Version
	cfg.DefaultLimit = rc.DefaultLimit
	cfg.MaxLimit = rc.MaxLimit
	cfg.CandidatePoolSize = rc.CandidatePoolSize
	cfg.MaxScored = rc.MaxScored
	cfg.FollowerSampleSize = rc.FollowerSampleSize
	cfg.PostHistorySize = rc.PostHistorySize
	cfg.Concurrency = rc.Concurrency
	cfg.MomentumLookback = rc.MomentumLookback
	cfg.NeutralAudienceQuality = rc.NeutralAudienceQuality

	sortOrder, err := graph.ParseSortOrder(rc.PoolSort)
	if err != nil {
		return nil, fmt.Errorf("recommend.pool_sort: %w", err)
	}
	cfg.PoolSort = sortOrder

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("recommend config: %w", err)
	}
	return cfg, nil
}
