// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/collabscout/internal/graph"
)

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status   string  `json:"status"`
	Provider string  `json:"provider,omitempty"`
	Detail   string  `json:"detail,omitempty"`
	Uptime   float64 `json:"uptime_seconds"`
}

// HealthLive handles GET /health/live. The process answering is enough.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, HealthStatus{
		Status:   "ok",
		Provider: h.providerName,
		Uptime:   time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /health/ready.
// Ready requires a configured provider and, when a probe is wired, a passing last probe.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:   "ready",
		Provider: h.providerName,
		Uptime:   time.Since(h.startTime).Seconds(),
	}

	ready, detail := h.ready()
	if !ready {
		status.Status = "not_ready"
		status.Detail = detail
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Service not ready", status)
		return
	}

	status.Detail = detail
	WriteSuccess(w, r, status)
}

func (h *Handler) ready() (bool, string) {
	if p, ok := h.provider.(*graph.MisconfiguredProvider); ok {
		if errors.Is(p.Err, graph.ErrMissingCredential) {
			return false, "graph provider credential is not configured"
		}
		return false, "graph provider is misconfigured"
	}
	if h.readiness == nil {
		return true, ""
	}
	return h.readiness.Ready()
}
