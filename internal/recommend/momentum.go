// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package recommend

import (
	"time"

	"github.com/tomtom215/collabscout/internal/graph"
)

// WindowSums splits posts younger than lookback into a recent half
// (age < lookback/2) and a prior half, summing EngagementWeight over each.
// Posts dated after now count as recent; posts older than lookback are ignored.
func WindowSums(posts []graph.Post, now time.Time, lookback time.Duration) (recent, prior float64) {
	half := lookback / 2
	for i := range posts {
		age := now.Sub(posts[i].Timestamp)
		if age < 0 {
			age = 0
		}
		switch {
		case age < half:
			recent += EngagementWeight(posts[i].Reactions)
		case age < lookback:
			prior += EngagementWeight(posts[i].Reactions)
		}
	}
	return recent, prior
}

// GrowthMomentum maps the growth of recent over prior engagement into [0, 1].
// With no prior engagement it is 1 if there is recent engagement, else 0.
// Otherwise it is ((recent-prior)/prior + 1) / 2, clamped, so 0.5 means flat.
func GrowthMomentum(recent, prior float64) float64 {
	if prior == 0 {
		if recent > 0 {
			return 1
		}
		return 0
	}
	growth := (recent - prior) / prior
	return clamp01((growth + 1) / 2)
}

// Momentum computes the engagement momentum of posts as of now.
func Momentum(posts []graph.Post, now time.Time, lookback time.Duration) float64 {
	return GrowthMomentum(WindowSums(posts, now, lookback))
}
