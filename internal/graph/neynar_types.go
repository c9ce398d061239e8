// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package graph

import (
	"time"
)

// Wire types for the subset of the Neynar v2 API the client reads.

type neynarUser struct {
	FID            int64  `json:"fid"`
	Username       string `json:"username"`
	DisplayName    string `json:"display_name"`
	PfpURL         string `json:"pfp_url"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
	Profile        struct {
		Bio struct {
			Text string `json:"text"`
		} `json:"bio"`
	} `json:"profile"`
	Verifications []string `json:"verifications"`
	Score         *float64 `json:"score"`
	Experimental  *struct {
		NeynarUserScore *float64 `json:"neynar_user_score"`
	} `json:"experimental"`
}

func (u *neynarUser) toCreator() Creator {
	score := u.Score
	if score == nil && u.Experimental != nil {
		score = u.Experimental.NeynarUserScore
	}
	return Creator{
		FID:            u.FID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		AvatarURL:      u.PfpURL,
		Bio:            u.Profile.Bio.Text,
		FollowerCount:  u.FollowerCount,
		FollowingCount: u.FollowingCount,
		Verified:       len(u.Verifications) > 0,
		Score:          score,
	}
}

type neynarNext struct {
	Cursor *string `json:"cursor"`
}

func (n neynarNext) cursor() string {
	if n.Cursor == nil {
		return ""
	}
	return *n.Cursor
}

// neynarFollowPage is returned by /user/followers and /user/following.
type neynarFollowPage struct {
	Users []struct {
		User neynarUser `json:"user"`
	} `json:"users"`
	Next neynarNext `json:"next"`
}

// neynarBulkUsers is returned by /user/bulk.
type neynarBulkUsers struct {
	Users []neynarUser `json:"users"`
}

type neynarCast struct {
	Hash   string `json:"hash"`
	Author struct {
		FID int64 `json:"fid"`
	} `json:"author"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Reactions struct {
		LikesCount   int `json:"likes_count"`
		RecastsCount int `json:"recasts_count"`
	} `json:"reactions"`
	Replies struct {
		Count int `json:"count"`
	} `json:"replies"`
}

func (c *neynarCast) toPost() Post {
	return Post{
		Hash:      c.Hash,
		AuthorFID: c.Author.FID,
		Text:      c.Text,
		Timestamp: c.Timestamp.UTC(),
		Reactions: Reactions{
			Likes:   c.Reactions.LikesCount,
			Recasts: c.Reactions.RecastsCount,
			Replies: c.Replies.Count,
		},
	}
}

// neynarCastPage is returned by /feed/user/casts.
type neynarCastPage struct {
	Casts []neynarCast `json:"casts"`
	Next  neynarNext   `json:"next"`
}

// neynarErrorBody is the JSON error shape; Message is used when present.
type neynarErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
