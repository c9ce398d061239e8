// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package recommend

import (
	"time"

	"github.com/tomtom215/collabscout/internal/graph"
)

const (
	hoursPerWeek = 7 * 24

	// VectorSize is the number of hour-of-week buckets.
	VectorSize = hoursPerWeek

	// silentPostWeight keeps a post with no reactions distinguishable from no post.
	silentPostWeight = 0.5
)

// EngagementVector is a time-of-week histogram of weighted activity.
// Index = day*24 + hour in UTC, with Monday as day 0.
type EngagementVector [VectorSize]float64

// EngagementWeight returns 5*replies + 2*recasts + likes, or 0.5 when all
// three counts are zero. Negative counts are treated as zero.
func EngagementWeight(r graph.Reactions) float64 {
	replies := max(r.Replies, 0)
	recasts := max(r.Recasts, 0)
	likes := max(r.Likes, 0)
	if replies == 0 && recasts == 0 && likes == 0 {
		return silentPostWeight
	}
	return float64(5*replies + 2*recasts + likes)
}

// BucketIndex maps t to its hour-of-week bucket.
func BucketIndex(t time.Time) int {
	u := t.UTC()
	day := (int(u.Weekday()) + 6) % 7 // time.Sunday == 0
	return day*24 + u.Hour()
}

// BuildEngagementVector accumulates the weight of every post into its bucket.
// The result does not depend on post order.
func BuildEngagementVector(posts []graph.Post) EngagementVector {
	var v EngagementVector
	for i := range posts {
		v[BucketIndex(posts[i].Timestamp)] += EngagementWeight(posts[i].Reactions)
	}
	return v
}

// IsZero reports whether every bucket is zero.
func (v *EngagementVector) IsZero() bool {
	for _, w := range v {
		if w != 0 {
			return false
		}
	}
	return true
}
