// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package graph

import (
	"fmt"
	"time"
)

// Creator is a snapshot of one account in the social graph.
type Creator struct {
	FID            int64  `json:"fid"`
	Username       string `json:"username"`
	DisplayName    string `json:"displayName"`
	AvatarURL      string `json:"avatar"`
	Bio            string `json:"bio,omitempty"`
	FollowerCount  int    `json:"followers"`
	FollowingCount int    `json:"following"`
	Verified       bool   `json:"verified"`

	// Score is the upstream account quality score in [0,1]; nil when the
	// provider does not report one.
	Score *float64 `json:"score"`
}

// Reactions holds per-post engagement counts.
type Reactions struct {
	Likes   int `json:"likes"`
	Recasts int `json:"recasts"`
	Replies int `json:"replies"`
}

// Post is one published post with its engagement counts.
type Post struct {
	Hash      string    `json:"hash"`
	AuthorFID int64     `json:"authorFid"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Reactions Reactions `json:"reactions"`
}

// Relation selects one side of the follow graph.
type Relation string

const (
	RelationFollowers Relation = "followers"
	RelationFollowing Relation = "following"
)

// ParseRelation converts a query value into a Relation.
func ParseRelation(s string) (Relation, error) {
	switch Relation(s) {
	case RelationFollowers, RelationFollowing:
		return Relation(s), nil
	default:
		return "", fmt.Errorf("unknown relation %q (expected followers or following)", s)
	}
}

// SortOrder is the upstream ranking applied to a relation listing.
type SortOrder string

const (
	SortAlgorithmic SortOrder = "algorithmic"
	SortRecent      SortOrder = "recent"
)

// ParseSortOrder converts a query or config value into a SortOrder.
// An empty string yields SortAlgorithmic.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "":
		return SortAlgorithmic, nil
	case SortAlgorithmic, SortRecent:
		return SortOrder(s), nil
	default:
		return "", fmt.Errorf("unknown sort order %q (expected algorithmic or recent)", s)
	}
}

// ListOptions bounds a relation listing.
type ListOptions struct {
	// Limit is the maximum number of creators returned. Zero or negative means DefaultListLimit.
	Limit int
	Sort  SortOrder
}

// DefaultListLimit is used when ListOptions.Limit is not positive.
const DefaultListLimit = 100

func (o ListOptions) limit() int {
	if o.Limit <= 0 {
		return DefaultListLimit
	}
	return o.Limit
}

func (o ListOptions) sort() SortOrder {
	if o.Sort == "" {
		return SortAlgorithmic
	}
	return o.Sort
}

// FIDs returns the identifiers of creators in order.
func FIDs(creators []Creator) []int64 {
	out := make([]int64, len(creators))
	for i := range creators {
		out[i] = creators[i].FID
	}
	return out
}
