// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package api

import (
	"net/http"

	"github.com/tomtom215/collabscout/internal/logging"
	"github.com/tomtom215/collabscout/internal/recommend"
	"github.com/tomtom215/collabscout/internal/validation"
)

// Recommendations handles GET /api/v1/collab/recommendations.
//
// Query parameters:
//   - fid: requesting creator (falls back to the session fid)
//   - limit: maximum recommendations (engine default when omitted, clamped by the engine)
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	fid, err := requesterFID(r)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	limit, err := parseInt("limit", r.URL.Query().Get("limit"))
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}

	req := validation.RecommendationsRequest{FID: fid, Limit: limit}
	if !validate(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	resp, err := h.engine.Recommend(ctx, recommend.Request{FID: req.FID, Limit: req.Limit})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Int64("fid", req.FID).
		Int("recommendations", len(resp.Recommendations)).
		Int("skipped", resp.Skipped).
		Msg("Recommendations served")

	WriteSuccess(w, r, resp)
}

// Overlap handles GET /api/v1/collab/overlap.
//
// Query parameters:
//   - fid: requesting creator (falls back to the session fid)
//   - target: creator to compare against, must differ from fid
func (h *Handler) Overlap(w http.ResponseWriter, r *http.Request) {
	fid, err := requesterFID(r)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	target, err := parseInt64("target", r.URL.Query().Get("target"))
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}

	req := validation.OverlapRequest{FID: fid, Target: target}
	if !validate(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	cmp, err := h.engine.Compare(ctx, req.FID, req.Target)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	WriteSuccess(w, r, cmp)
}
