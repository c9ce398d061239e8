// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package graph

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/collabscout/internal/config"
	"github.com/tomtom215/collabscout/internal/metrics"
)

// stubProvider returns err from every call and counts invocations.
type stubProvider struct {
	err   error
	calls atomic.Int32
}

func (s *stubProvider) Relations(context.Context, int64, Relation, ListOptions) ([]Creator, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return []Creator{{FID: 2}}, nil
}

func (s *stubProvider) Posts(context.Context, int64, int) ([]Post, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return []Post{{Hash: "0x1"}}, nil
}

func (s *stubProvider) Creator(_ context.Context, fid int64) (*Creator, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &Creator{FID: fid}, nil
}

func testBreakerConfig() *config.BreakerConfig {
	return &config.BreakerConfig{
		Enabled:      true,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Hour,
		FailureRatio: 0.6,
		MinRequests:  3,
	}
}

func TestBreakerProvider_PassThrough(t *testing.T) {
	t.Parallel()

	inner := &stubProvider{}
	b := NewBreakerProvider(inner, "test-pass", testBreakerConfig(), zerolog.Nop())
	ctx := context.Background()

	rel, err := b.Relations(ctx, 1, RelationFollowers, ListOptions{})
	if err != nil || len(rel) != 1 {
		t.Errorf("Relations() = %v, %v", rel, err)
	}
	posts, err := b.Posts(ctx, 1, 10)
	if err != nil || len(posts) != 1 {
		t.Errorf("Posts() = %v, %v", posts, err)
	}
	c, err := b.Creator(ctx, 9)
	if err != nil || c.FID != 9 {
		t.Errorf("Creator() = %v, %v", c, err)
	}
	if b.State() != "closed" {
		t.Errorf("State() = %s, want closed", b.State())
	}
}

func TestBreakerProvider_TripsAndRejects(t *testing.T) {
	t.Parallel()

	inner := &stubProvider{err: &UpstreamError{Endpoint: "x", StatusCode: 503}}
	b := NewBreakerProvider(inner, "test-trip", testBreakerConfig(), zerolog.Nop())
	ctx := context.Background()

	rejected := metrics.CircuitBreakerRequests.WithLabelValues("test-trip", "rejected")
	before := testutil.ToFloat64(rejected)

	for i := 0; i < 3; i++ {
		if _, err := b.Posts(ctx, 1, 10); !errors.Is(err, ErrUpstreamUnavailable) {
			t.Fatalf("call %d error = %v", i, err)
		}
	}
	if b.State() != "open" {
		t.Fatalf("State() = %s, want open", b.State())
	}

	_, err := b.Posts(ctx, 1, 10)
	if !errors.Is(err, ErrUpstreamUnavailable) || !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("rejected call error = %v", err)
	}
	if inner.calls.Load() != 3 {
		t.Errorf("inner calls = %d, want 3", inner.calls.Load())
	}
	if got := testutil.ToFloat64(rejected) - before; got != 1 {
		t.Errorf("rejected counter delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-trip")); got != 2 {
		t.Errorf("state gauge = %v, want 2", got)
	}
}

func TestBreakerProvider_NotFoundDoesNotTrip(t *testing.T) {
	t.Parallel()

	inner := &stubProvider{err: ErrNotFound}
	b := NewBreakerProvider(inner, "test-notfound", testBreakerConfig(), zerolog.Nop())

	for i := 0; i < 5; i++ {
		if _, err := b.Creator(context.Background(), 1); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Creator() error = %v", err)
		}
	}
	if b.State() != "closed" {
		t.Errorf("State() = %s, want closed", b.State())
	}
}

func TestCastResult(t *testing.T) {
	t.Parallel()

	if _, err := castResult[[]Post]("wrong", nil); err == nil {
		t.Error("expected type error")
	}
	got, err := castResult[[]Post]([]Post(nil), nil)
	if err != nil || got != nil {
		t.Errorf("castResult(nil slice) = %v, %v", got, err)
	}
}
