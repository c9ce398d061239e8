// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package main

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/collabscout/internal/config"
	"github.com/tomtom215/collabscout/internal/graph"
	"github.com/tomtom215/collabscout/internal/recommend"
)

func TestBuildEngineConfig_ZeroKeepsDefaults(t *testing.T) {
	t.Parallel()

	got, err := buildEngineConfig(&config.RecommendConfig{})
	if err != nil {
		t.Fatalf("buildEngineConfig() error = %v", err)
	}
	want := recommend.DefaultConfig()
	if got.Weights != want.Weights || got.Thresholds != want.Thresholds {
		t.Errorf("weights/thresholds = %+v / %+v, want defaults", got.Weights, got.Thresholds)
	}
	if got.Concurrency != want.Concurrency || got.CandidatePoolSize != want.CandidatePoolSize {
		t.Errorf("config = %+v", got)
	}
	if got.PoolSort != graph.SortAlgorithmic {
		t.Errorf("PoolSort = %q", got.PoolSort)
	}
}

func TestBuildEngineConfig_DefaultsMatchEngine(t *testing.T) {
	t.Parallel()

	got, err := buildEngineConfig(&config.DefaultConfig().Recommend)
	if err != nil {
		t.Fatalf("buildEngineConfig() error = %v", err)
	}
	if want := recommend.DefaultConfig(); *got != *want {
		t.Errorf("config = %+v, want %+v", got, want)
	}
}

func TestBuildEngineConfig_Overrides(t *testing.T) {
	t.Parallel()

	rc := config.DefaultConfig().Recommend
	rc.Weights = config.WeightsConfig{
		Overlap:            0.5,
		EngagementAffinity: 0.2,
		TopicSimilarity:    0.1,
		AudienceQuality:    0.1,
		Momentum:           0.1,
	}
	rc.Version = "2.0"
	rc.Concurrency = 4
	rc.CandidatePoolSize = 10
	rc.MomentumLookback = 14 * 24 * time.Hour
	rc.NeutralAudienceQuality = 0.6
	rc.PoolSort = "recent"

	got, err := buildEngineConfig(&rc)
	if err != nil {
		t.Fatalf("buildEngineConfig() error = %v", err)
	}
	if got.Weights.Overlap != 0.5 || got.Version != "2.0" || got.Concurrency != 4 || got.CandidatePoolSize != 10 {
		t.Errorf("config = %+v", got)
	}
	if got.MomentumLookback != 14*24*time.Hour || got.NeutralAudienceQuality != 0.6 || got.PoolSort != graph.SortRecent {
		t.Errorf("config = %+v", got)
	}
}

func TestBuildEngineConfig_ExplicitZeros(t *testing.T) {
	t.Parallel()

	rc := config.DefaultConfig().Recommend
	rc.NeutralAudienceQuality = 0
	rc.Thresholds.Overlap = 0
	rc.Weights = config.WeightsConfig{Overlap: 0.6, EngagementAffinity: 0.4}

	got, err := buildEngineConfig(&rc)
	if err != nil {
		t.Fatalf("buildEngineConfig() error = %v", err)
	}
	if got.NeutralAudienceQuality != 0 {
		t.Errorf("NeutralAudienceQuality = %v, want 0", got.NeutralAudienceQuality)
	}
	if got.Thresholds.Overlap != 0 {
		t.Errorf("Thresholds.Overlap = %v, want 0", got.Thresholds.Overlap)
	}
	if got.Weights.Momentum != 0 || got.Weights.AudienceQuality != 0 || got.Weights.Overlap != 0.6 {
		t.Errorf("Weights = %+v", got.Weights)
	}
	if got.Thresholds.Momentum != recommend.DefaultConfig().Thresholds.Momentum {
		t.Errorf("untouched threshold changed: %+v", got.Thresholds)
	}
}

func TestBuildEngineConfig_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.RecommendConfig)
	}{
		{"weights do not sum to one", func(rc *config.RecommendConfig) {
			rc.Weights = config.WeightsConfig{Overlap: 0.9, Momentum: 0.9}
		}},
		{"unknown pool sort", func(rc *config.RecommendConfig) { rc.PoolSort = "popular" }},
		{"concurrency above cap", func(rc *config.RecommendConfig) { rc.Concurrency = 64 }},
		{"zero concurrency", func(rc *config.RecommendConfig) { rc.Concurrency = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rc := config.DefaultConfig().Recommend
			tt.mutate(&rc)
			if _, err := buildEngineConfig(&rc); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestInitRecommend(t *testing.T) {
	t.Parallel()

	cfg := testConfig(config.SourceFixture)
	engine, err := initRecommend(cfg, graph.NewMisconfiguredProvider(nil), zerolog.Nop())
	if err != nil {
		t.Fatalf("initRecommend() error = %v", err)
	}
	if engine.Algorithm().Version == "" {
		t.Error("engine has no algorithm version")
	}
}
