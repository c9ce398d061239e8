// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/collabscout/internal/graph"
	"github.com/tomtom215/collabscout/internal/logging"
	"github.com/tomtom215/collabscout/internal/validation"
)

// FollowsResponse is the payload of the relation listing endpoint.
type FollowsResponse struct {
	FID   int64           `json:"fid"`
	Type  graph.Relation  `json:"type"`
	Sort  graph.SortOrder `json:"sortType"`
	Count int             `json:"count"`
	Users []graph.Creator `json:"users"`
}

// Creator handles GET /api/v1/creators/{fid}.
func (h *Handler) Creator(w http.ResponseWriter, r *http.Request) {
	fid, err := parseInt64("fid", chi.URLParam(r, "fid"))
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	req := validation.CreatorRequest{FID: fid}
	if !validate(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	creator, err := h.provider.Creator(ctx, req.FID)
	if err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			NewResponseWriter(w, r).NotFound("Creator not found")
			return
		}
		respondEngineError(w, r, err)
		return
	}

	WriteSuccess(w, r, creator)
}

// Follows handles GET /api/v1/creators/{fid}/follows.
//
// Query parameters:
//   - type: followers or following (required)
//   - limit: 1..1000, default 100
//   - sort_type: algorithmic (default) or recent
func (h *Handler) Follows(w http.ResponseWriter, r *http.Request) {
	fid, err := parseInt64("fid", chi.URLParam(r, "fid"))
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	q := r.URL.Query()
	limit, err := parseInt("limit", q.Get("limit"))
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}

	req := validation.FollowsRequest{
		FID:   fid,
		Type:  q.Get("type"),
		Limit: limit,
		Sort:  q.Get("sort_type"),
	}
	if !validate(w, r, &req) {
		return
	}

	// Both values were checked against the same enumerations above.
	rel, err := graph.ParseRelation(req.Type)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	sortOrder, err := graph.ParseSortOrder(req.Sort)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	if req.Limit == 0 {
		req.Limit = graph.DefaultListLimit
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	users, err := h.provider.Relations(ctx, req.FID, rel, graph.ListOptions{Limit: req.Limit, Sort: sortOrder})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	if users == nil {
		users = []graph.Creator{}
	}

	logging.Ctx(r.Context()).Debug().
		Int64("fid", req.FID).
		Str("type", sanitizeLogValue(req.Type)).
		Int("count", len(users)).
		Msg("Relations listed")

	WriteSuccess(w, r, FollowsResponse{
		FID:   req.FID,
		Type:  rel,
		Sort:  sortOrder,
		Count: len(users),
		Users: users,
	})
}
