// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package graph

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUpstreamUnavailable covers non-success responses, transport failures,
	// timeouts, and calls rejected by an open circuit.
	ErrUpstreamUnavailable = errors.New("graph provider unavailable")

	// ErrMissingCredential is returned when the live provider has no API key.
	ErrMissingCredential = errors.New("graph provider credential not configured")

	// ErrNotFound is returned for an unknown creator. It also matches
	// ErrUpstreamUnavailable.
	ErrNotFound = fmt.Errorf("creator not found: %w", ErrUpstreamUnavailable)
)

// UpstreamError describes one failed call to the graph provider.
//
// It matches ErrUpstreamUnavailable (ErrNotFound for a 404) and the
// underlying cause, so errors.Is(err, context.DeadlineExceeded) still works
// for timeouts.
type UpstreamError struct {
	Endpoint   string
	StatusCode int // 0 when no response was received
	Message    string
	Cause      error
}

func (e *UpstreamError) Error() string {
	msg := e.Endpoint
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() []error {
	sentinel := ErrUpstreamUnavailable
	if e.StatusCode == http.StatusNotFound {
		sentinel = ErrNotFound
	}
	if e.Cause == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Cause}
}
