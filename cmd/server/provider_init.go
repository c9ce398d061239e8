// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/collabscout/internal/config"
	"github.com/tomtom215/collabscout/internal/graph"
)

// ProviderComponents is the graph provider selected at startup.
type ProviderComponents struct {
	Provider graph.Provider

	// Name labels metrics and health output ("neynar" or "fixture").
	Name string

	// Misconfigured is true when the live provider could not be built
	// because the credential is missing.
	Misconfigured bool
}

// initProvider builds the configured graph provider.
//
// A missing Neynar API key does not stop the process: health and metrics keep
// serving while every graph read fails with graph.ErrMissingCredential.
// Any other construction failure is returned.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func initProvider(cfg *config.Config, now time.Time, logger zerolog.Logger) (*ProviderComponents, error) {
	switch cfg.Provider.Source {
	case config.SourceFixture:
		fixture, err := graph.LoadFixture(cfg.Provider.FixturePath, now)
		if err != nil {
			return nil, fmt.Errorf("load fixture provider: %w", err)
		}
		path := cfg.Provider.FixturePath
		if path == "" {
			path = "(embedded demo)"
		}
		logger.Info().Str("fixture", path).Msg("Using fixture graph provider")
		return &ProviderComponents{Provider: fixture, Name: graph.ProviderFixture}, nil

	case config.SourceLive:
		client, err := graph.NewNeynarClient(&cfg.Neynar, logger)
		if errors.Is(err, graph.ErrMissingCredential) {
			logger.Error().Msg("NEYNAR_API_KEY is not set: recommendation endpoints will answer SERVER_MISCONFIGURED")
			return &ProviderComponents{
				Provider:      graph.NewMisconfiguredProvider(err),
				Name:          graph.ProviderNeynar,
				Misconfigured: true,
			}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("create neynar client: %w", err)
		}

		var provider graph.Provider = client
		if cfg.Breaker.Enabled {
			provider = graph.NewBreakerProvider(client, graph.ProviderNeynar, &cfg.Breaker, logger)
		}
		logger.Info().
			Str("base_url", cfg.Neynar.BaseURL).
			Bool("circuit_breaker", cfg.Breaker.Enabled).
			Float64("requests_per_second", cfg.Neynar.RequestsPerSecond).
			Msg("Using live Neynar graph provider")
		return &ProviderComponents{Provider: provider, Name: graph.ProviderNeynar}, nil

	default:
		return nil, fmt.Errorf("unknown provider source %q", cfg.Provider.Source)
	}
}
