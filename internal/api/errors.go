// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/collabscout/internal/graph"
	"github.com/tomtom215/collabscout/internal/logging"
	"github.com/tomtom215/collabscout/internal/recommend"
)

// upstreamService names the graph provider in 502 responses.
const upstreamService = "graph provider"

// respondEngineError maps recommendation and graph errors onto HTTP responses.
//
//	ErrBadRequest            -> 400 BAD_REQUEST
//	ErrServerMisconfigured   -> 500 SERVER_MISCONFIGURED
//	graph.ErrMissingCredential
//	client canceled          -> 503 SERVICE_UNAVAILABLE
//	ErrUpstreamUnavailable   -> 502 EXTERNAL_SERVICE_FAILED
//	graph.ErrUpstreamUnavailable
//	deadline exceeded        -> 502 EXTERNAL_SERVICE_FAILED
//	anything else            -> 500 INTERNAL_ERROR
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)

	switch {
	case errors.Is(err, recommend.ErrBadRequest):
		rw.BadRequest(strings.TrimPrefix(err.Error(), recommend.ErrBadRequest.Error()+": "))
	case errors.Is(err, recommend.ErrServerMisconfigured), errors.Is(err, graph.ErrMissingCredential):
		logging.CtxError(r.Context()).Err(err).Str("path", r.URL.Path).Msg("Graph provider is not configured")
		rw.ServerMisconfigured(err)
	case errors.Is(err, context.Canceled):
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Request canceled")
		rw.ServiceUnavailable("Request canceled")
	case errors.Is(err, recommend.ErrUpstreamUnavailable),
		errors.Is(err, graph.ErrUpstreamUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		logging.CtxWarn(r.Context()).Err(err).Str("path", r.URL.Path).Msg("Upstream read failed")
		rw.ExternalServiceError(upstreamService, err)
	default:
		logging.CtxError(r.Context()).Err(err).Msg("Unhandled API error")
		rw.InternalError("An internal error occurred")
	}
}
