// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Upstream graph provider calls
// - Circuit breaker state
// - Recommendation pipeline outcomes

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Upstream Graph Provider Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of graph provider calls",
		},
		[]string{"provider", "endpoint", "outcome"}, // outcome: "success", "http_error", "timeout", "transport_error", "rate_limited", "canceled"
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Graph provider call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		},
		[]string{"provider", "endpoint"},
	)

	UpstreamUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "upstream_up",
			Help: "Whether the last upstream probe succeeded (1) or failed (0)",
		},
		[]string{"provider"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Recommendation Pipeline Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation computations",
		},
		[]string{"operation", "outcome"}, // outcome: "success", "bad_request", "upstream_unavailable", "misconfigured", "canceled"
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "End-to-end recommendation computation time in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
		},
		[]string{"operation"},
	)

	RecommendCandidatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_candidates_total",
			Help: "Total number of candidates examined, by outcome and failing stage",
		},
		[]string{"outcome", "stage"}, // outcome: "scored", "skipped"; stage: "", "followers", "posts"
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamCall records one outbound graph provider call.
func RecordUpstreamCall(provider, endpoint, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(provider, endpoint, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(provider, endpoint).Observe(duration.Seconds())
}

// SetUpstreamUp records the result of the latest upstream probe.
func SetUpstreamUp(provider string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	UpstreamUp.WithLabelValues(provider).Set(v)
}

// RecordRecommendation records the outcome and duration of one engine operation
// ("recommend" or "compare").
func RecordRecommendation(operation, outcome string, duration time.Duration) {
	RecommendRequestsTotal.WithLabelValues(operation, outcome).Inc()
	RecommendDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCandidateScored records a successfully scored candidate.
func RecordCandidateScored() {
	RecommendCandidatesTotal.WithLabelValues("scored", "").Inc()
}

// RecordCandidateSkipped records a candidate dropped because a fetch failed at stage.
func RecordCandidateSkipped(stage string) {
	RecommendCandidatesTotal.WithLabelValues("skipped", stage).Inc()
}
