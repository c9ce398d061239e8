// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/collabscout/internal/config"
	"github.com/tomtom215/collabscout/internal/graph"
)

func testConfig(source string) *config.Config {
	return &config.Config{
		Provider: config.ProviderConfig{Source: source},
		Neynar: config.NeynarConfig{
			BaseURL: "https://api.neynar.com",
			Timeout: time.Second,
		},
		Breaker: config.BreakerConfig{
			Enabled:      true,
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      time.Second,
			FailureRatio: 0.5,
			MinRequests:  5,
		},
	}
}

func TestInitProvider_Fixture(t *testing.T) {
	t.Parallel()

	pc, err := initProvider(testConfig(config.SourceFixture), time.Now(), zerolog.Nop())
	if err != nil {
		t.Fatalf("initProvider() error = %v", err)
	}
	if pc.Name != graph.ProviderFixture || pc.Misconfigured {
		t.Errorf("components = %+v", pc)
	}
	if _, ok := pc.Provider.(*graph.FixtureProvider); !ok {
		t.Errorf("provider = %T, want *graph.FixtureProvider", pc.Provider)
	}
}

func TestInitProvider_FixtureMissingFile(t *testing.T) {
	t.Parallel()

	cfg := testConfig(config.SourceFixture)
	cfg.Provider.FixturePath = t.TempDir() + "/missing.json"
	if _, err := initProvider(cfg, time.Now(), zerolog.Nop()); err == nil {
		t.Error("expected error for missing fixture file")
	}
}

func TestInitProvider_LiveMissingCredential(t *testing.T) {
	t.Parallel()

	pc, err := initProvider(testConfig(config.SourceLive), time.Now(), zerolog.Nop())
	if err != nil {
		t.Fatalf("initProvider() error = %v", err)
	}
	if !pc.Misconfigured || pc.Name != graph.ProviderNeynar {
		t.Errorf("components = %+v", pc)
	}
	if _, err := pc.Provider.Posts(context.Background(), 1, 10); !errors.Is(err, graph.ErrMissingCredential) {
		t.Errorf("Posts() error = %v, want ErrMissingCredential", err)
	}
}

func TestInitProvider_LiveWrapping(t *testing.T) {
	t.Parallel()

	cfg := testConfig(config.SourceLive)
	cfg.Neynar.APIKey = "key"

	pc, err := initProvider(cfg, time.Now(), zerolog.Nop())
	if err != nil {
		t.Fatalf("initProvider() error = %v", err)
	}
	if _, ok := pc.Provider.(*graph.BreakerProvider); !ok {
		t.Errorf("provider = %T, want *graph.BreakerProvider", pc.Provider)
	}

	cfg.Breaker.Enabled = false
	pc, err = initProvider(cfg, time.Now(), zerolog.Nop())
	if err != nil {
		t.Fatalf("initProvider() error = %v", err)
	}
	if _, ok := pc.Provider.(*graph.NeynarClient); !ok {
		t.Errorf("provider = %T, want *graph.NeynarClient", pc.Provider)
	}
}

func TestInitProvider_UnknownSource(t *testing.T) {
	t.Parallel()

	if _, err := initProvider(testConfig("carrier-pigeon"), time.Now(), zerolog.Nop()); err == nil {
		t.Error("expected error for unknown source")
	}
}
