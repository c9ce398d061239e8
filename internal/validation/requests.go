// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package validation

// MaxFollowsLimit caps a relation listing request.
const MaxFollowsLimit = 1000

// RecommendationsRequest is GET /api/v1/collab/recommendations.
// A zero Limit selects the engine default; larger limits are clamped by the engine.
type RecommendationsRequest struct {
	FID   int64 `query:"fid" validate:"required,gt=0"`
	Limit int   `query:"limit" validate:"omitempty,min=1"`
}

// OverlapRequest is GET /api/v1/collab/overlap.
type OverlapRequest struct {
	FID    int64 `query:"fid" validate:"required,gt=0"`
	Target int64 `query:"target" validate:"required,gt=0,nefield=FID"`
}

// CreatorRequest is GET /api/v1/creators/{fid}.
type CreatorRequest struct {
	FID int64 `query:"fid" validate:"required,gt=0"`
}

// FollowsRequest is GET /api/v1/creators/{fid}/follows.
type FollowsRequest struct {
	FID   int64  `query:"fid" validate:"required,gt=0"`
	Type  string `query:"type" validate:"required,oneof=followers following"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=1000"`
	Sort  string `query:"sort_type" validate:"omitempty,oneof=algorithmic recent"`
}
