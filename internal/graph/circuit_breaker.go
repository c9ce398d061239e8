// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/collabscout/internal/config"
	"github.com/tomtom215/collabscout/internal/metrics"
)

// BreakerProvider wraps a Provider with the circuit breaker pattern so a
// failing upstream is not hammered by every candidate of every request.
//
// DETERMINISM NOTE: gobreaker uses real time for its interval and timeout.
// Tests exercise the trip and reject paths, not the recovery timing.
type BreakerProvider struct {
	inner  Provider
	cb     *gobreaker.CircuitBreaker[any]
	name   string
	logger zerolog.Logger
}

// NewBreakerProvider wraps inner with a breaker configured from cfg.
// The breaker opens when the failure ratio reaches cfg.FailureRatio after at
// least cfg.MinRequests calls in one interval.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBreakerProvider(inner Provider, name string, cfg *config.BreakerConfig, logger zerolog.Logger) *BreakerProvider {
	logger = logger.With().Str("component", "circuit_breaker").Str("breaker", name).Logger()

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logger.Info().Str("from", fromStr).Str("to", toStr).Msg("Circuit breaker state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		// Unknown creators and caller cancellations say nothing about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, context.Canceled)
		},
	})

	return &BreakerProvider{
		inner:  inner,
		cb:     cb,
		name:   name,
		logger: logger,
	}
}

// State returns the current breaker state as "closed", "half-open" or "open".
func (b *BreakerProvider) State() string {
	return stateToString(b.cb.State())
}

// Relations lists a relation with circuit breaker protection.
func (b *BreakerProvider) Relations(ctx context.Context, fid int64, rel Relation, opts ListOptions) ([]Creator, error) {
	return castResult[[]Creator](b.execute(func() (any, error) {
		return b.inner.Relations(ctx, fid, rel, opts)
	}))
}

// Posts fetches post history with circuit breaker protection.
func (b *BreakerProvider) Posts(ctx context.Context, fid int64, limit int) ([]Post, error) {
	return castResult[[]Post](b.execute(func() (any, error) {
		return b.inner.Posts(ctx, fid, limit)
	}))
}

// Creator looks up a profile with circuit breaker protection.
func (b *BreakerProvider) Creator(ctx context.Context, fid int64) (*Creator, error) {
	return castResult[*Creator](b.execute(func() (any, error) {
		return b.inner.Creator(ctx, fid)
	}))
}

// execute runs fn through the breaker and records the outcome.
// Rejections are reported as ErrUpstreamUnavailable.
func (b *BreakerProvider) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			b.logger.Debug().Err(err).Msg("Request rejected by circuit breaker")
			return nil, &UpstreamError{Endpoint: b.name, Message: "circuit breaker rejected call", Cause: err}
		}

		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		counts := b.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, nil
}

// castResult type-asserts a breaker result, passing errors through.
func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
