// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

/*
Package metrics provides Prometheus metrics for Collabscout.

Collectors are registered on the default registry via promauto and exposed at
/metrics by the API router.

# Available Metrics

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

Graph provider:
  - upstream_requests_total{provider, endpoint, outcome}
  - upstream_request_duration_seconds{provider, endpoint}
  - upstream_up{provider}

Circuit breaker:
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

Recommendation pipeline:
  - recommend_requests_total{operation, outcome}
  - recommend_duration_seconds{operation}
  - recommend_candidates_total{outcome, stage}

Record* helpers are the only write path used by other packages.
*/
package metrics
