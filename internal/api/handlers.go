// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package api

import (
	"context"
	"time"

	"github.com/tomtom215/collabscout/internal/graph"
	"github.com/tomtom215/collabscout/internal/recommend"
)

// defaultRequestTimeout bounds one engine call when no server timeout is configured.
const defaultRequestTimeout = 30 * time.Second

// Recommender is the engine surface used by the handlers.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	Compare(ctx context.Context, fid, target int64) (*recommend.Comparison, error)
}

// ReadinessChecker reports whether the graph provider is usable.
type ReadinessChecker interface {
	// Ready returns the readiness verdict and a short human-readable detail.
	Ready() (bool, string)
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_collab.go: recommendations and pairwise overlap
//   - handlers_creators.go: profile and relation listings
//   - handlers_health.go: liveness and readiness
type Handler struct {
	engine         Recommender
	provider       graph.Provider
	readiness      ReadinessChecker
	providerName   string
	requestTimeout time.Duration
	startTime      time.Time
}

// HandlerOptions configures NewHandler.
type HandlerOptions struct {
	// ProviderName labels the data source in health responses.
	ProviderName string

	// RequestTimeout bounds each engine or provider call made by a handler.
	RequestTimeout time.Duration

	// Readiness is optional; without it readiness mirrors liveness.
	Readiness ReadinessChecker
}

// NewHandler creates the API handler.
func NewHandler(engine Recommender, provider graph.Provider, opts HandlerOptions) *Handler {
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Handler{
		engine:         engine,
		provider:       provider,
		readiness:      opts.Readiness,
		providerName:   opts.ProviderName,
		requestTimeout: timeout,
		startTime:      time.Now(),
	}
}

func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.requestTimeout)
}
