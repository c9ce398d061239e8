// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

/*
Package api provides the HTTP surface of the collaboration service.

Routes:

	GET /api/v1/collab/recommendations?fid=&limit=
	GET /api/v1/collab/overlap?fid=&target=
	GET /api/v1/creators/{fid}
	GET /api/v1/creators/{fid}/follows?type=&limit=&sort_type=
	GET /health/live
	GET /health/ready
	GET /metrics

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 12}}
	{"success": false, "error": {"code": "BAD_REQUEST", "message": "...", "request_id": "..."}, "meta": {...}}

The requesting creator is the fid query parameter when present, otherwise the
fid of a valid session token resolved by internal/auth. Engine errors map to
status codes in respondEngineError.

Middleware order: request ID, access log, RealIP, Recoverer, security
headers, CORS, session resolution; /api/v1 adds per-IP rate limiting, and
route groups record Prometheus metrics.
*/
package api
