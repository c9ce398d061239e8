// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/collabscout/internal/graph"
	"github.com/tomtom215/collabscout/internal/metrics"
)

const (
	defaultProbeInterval = time.Minute
	defaultProbeTimeout  = 10 * time.Second
)

// ProfileReader is the part of graph.Provider the probe needs.
type ProfileReader interface {
	Creator(ctx context.Context, fid int64) (*graph.Creator, error)
}

// ProbeConfig configures the upstream probe.
type ProbeConfig struct {
	// Provider labels the upstream_up gauge ("neynar", "fixture").
	Provider string

	// FID is the creator looked up on every probe.
	FID int64

	// Interval between probes. Default: 1m
	Interval time.Duration

	// Timeout bounds a single probe. Default: 10s
	Timeout time.Duration
}

// ProbeService periodically looks up one known creator to decide whether the
// graph provider is usable. An unknown creator still proves the provider
// answered, so only transport failures, error statuses and a missing
// credential mark it down.
//
// It implements the readiness check used by /health/ready.
type ProbeService struct {
	reader ProfileReader
	config ProbeConfig
	logger zerolog.Logger
	name   string

	mu      sync.RWMutex
	probed  bool
	up      bool
	lastErr error
	lastAt  time.Time
}

// NewProbeService creates a probe. The provider is not contacted until Serve.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewProbeService(reader ProfileReader, cfg ProbeConfig, logger zerolog.Logger) *ProbeService {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultProbeInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultProbeTimeout
	}
	if cfg.FID <= 0 {
		cfg.FID = 1
	}
	return &ProbeService{
		reader: reader,
		config: cfg,
		logger: logger.With().Str("service", "upstream-probe").Str("provider", cfg.Provider).Logger(),
		name:   "upstream-probe",
	}
}

// Serve implements suture.Service. It probes once immediately, then on every tick.
func (s *ProbeService) Serve(ctx context.Context) error {
	s.logger.Info().
		Int64("probe_fid", s.config.FID).
		Dur("interval", s.config.Interval).
		Msg("Upstream probe starting")

	_ = s.Probe(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Upstream probe shutting down")
			return ctx.Err()
		case <-ticker.C:
			_ = s.Probe(ctx)
		}
	}
}

// Probe runs one check and records the result. It returns the probe error.
func (s *ProbeService) Probe(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	_, err := s.reader.Creator(probeCtx, s.config.FID)
	if errors.Is(err, graph.ErrNotFound) {
		err = nil
	}
	if err != nil && ctx.Err() != nil {
		// Shutdown interrupted the probe; keep the previous verdict.
		return err
	}

	s.mu.Lock()
	wasUp, wasProbed := s.up, s.probed
	s.probed = true
	s.up = err == nil
	s.lastErr = err
	s.lastAt = time.Now()
	s.mu.Unlock()

	metrics.SetUpstreamUp(s.config.Provider, err == nil)

	switch {
	case err != nil && (wasUp || !wasProbed):
		s.logger.Warn().Err(err).Msg("Graph provider probe failed")
	case err == nil && !wasUp:
		s.logger.Info().Msg("Graph provider reachable")
	case err != nil:
		s.logger.Debug().Err(err).Msg("Graph provider still unavailable")
	}
	return err
}

// Ready reports the verdict of the last probe.
func (s *ProbeService) Ready() (bool, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case !s.probed:
		return false, "upstream probe pending"
	case s.up:
		return true, fmt.Sprintf("last probe ok at %s", s.lastAt.UTC().Format(time.RFC3339))
	case errors.Is(s.lastErr, graph.ErrMissingCredential):
		return false, "graph provider credential is not configured"
	default:
		return false, fmt.Sprintf("last probe failed at %s", s.lastAt.UTC().Format(time.RFC3339))
	}
}

// String names the service in supervisor events.
func (s *ProbeService) String() string {
	return s.name
}
