// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - RequestID: reuses or generates X-Request-ID and seeds the logging context
  - AccessLog: one structured zerolog line per completed request
  - PrometheusMetrics: request count, latency, and in-flight gauge per route

All middleware use the standard func(http.Handler) http.Handler shape so they
compose directly with chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

Metrics are labelled with the chi route pattern rather than the raw URL path,
so /api/v1/creators/3 and /api/v1/creators/5 share one series
(/api/v1/creators/{fid}). Requests that match no route are labelled
"unmatched".

Thread Safety:

All middleware are stateless and safe for concurrent use.
*/
package middleware
