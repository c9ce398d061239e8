// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/collabscout/internal/graph"
)

// Engine error taxonomy. Callers map these with errors.Is.
var (
	// ErrBadRequest marks malformed or missing input. Never retried.
	ErrBadRequest = errors.New("bad request")

	// ErrUpstreamUnavailable marks a required graph read that failed.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrServerMisconfigured marks a missing service credential.
	ErrServerMisconfigured = errors.New("server misconfigured")
)

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}

// classifyProviderError maps a failed required read onto the engine taxonomy.
// Caller cancellation is returned as the context error.
func classifyProviderError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}
	if errors.Is(err, graph.ErrMissingCredential) {
		return fmt.Errorf("%s: %w: %w", op, ErrServerMisconfigured, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUpstreamUnavailable, err)
}

// outcomeLabel returns the metrics outcome for an engine result.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrBadRequest):
		return "bad_request"
	case errors.Is(err, ErrServerMisconfigured):
		return "misconfigured"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "upstream_unavailable"
	}
}
