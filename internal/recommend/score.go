// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package recommend

import (
	"fmt"
	"math"
)

// Reason strings emitted by Aggregate, in evaluation order.
const (
	reasonSharedFollowersFormat = "%d%% shared followers"
	ReasonEngagementPatterns    = "High overlap in engagement patterns"
	ReasonSimilarTopics         = "Similar content topics"
	ReasonAudienceQuality       = "High-quality shared audience"
	ReasonMomentum              = "Growing engagement momentum"
)

// Aggregator combines signals into a score and reasons. It is a pure value
// and safe to copy and share.
type Aggregator struct {
	Weights                Weights
	Thresholds             Thresholds
	NeutralAudienceQuality float64
}

// NewAggregator returns an Aggregator using the scoring fields of cfg.
func NewAggregator(cfg *Config) Aggregator {
	return Aggregator{
		Weights:                cfg.Weights,
		Thresholds:             cfg.Thresholds,
		NeutralAudienceQuality: cfg.NeutralAudienceQuality,
	}
}

// AudienceQuality returns the known quality or the neutral substitute.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (a Aggregator) AudienceQuality(s *Signals) float64 {
	if s.AudienceQuality == nil {
		return a.NeutralAudienceQuality
	}
	return clamp01(*s.AudienceQuality)
}

// Score returns round(100 * Σ weight*signal), within [0, 100].
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (a Aggregator) Score(s *Signals) int {
	w := a.Weights
	sum := w.Overlap*clamp01(s.Overlap) +
		w.EngagementAffinity*clamp01(s.EngagementAffinity) +
		w.TopicSimilarity*clamp01(s.TopicSimilarity) +
		w.AudienceQuality*a.AudienceQuality(s) +
		w.Momentum*clamp01(s.Momentum)

	score := int(math.Round(100 * sum))
	return min(max(score, 0), 100)
}

// Reasons lists every signal that cleared its threshold. The list is
// independent of the numeric score and may be empty.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (a Aggregator) Reasons(s *Signals) []string {
	t := a.Thresholds
	reasons := make([]string, 0, 5)

	if s.Overlap >= t.Overlap {
		reasons = append(reasons, fmt.Sprintf(reasonSharedFollowersFormat, int(math.Round(s.Overlap*100))))
	}
	if s.EngagementAffinity >= t.EngagementAffinity {
		reasons = append(reasons, ReasonEngagementPatterns)
	}
	if s.TopicSimilarity >= t.TopicSimilarity {
		reasons = append(reasons, ReasonSimilarTopics)
	}
	if a.AudienceQuality(s) >= t.AudienceQuality {
		reasons = append(reasons, ReasonAudienceQuality)
	}
	if s.Momentum >= t.Momentum {
		reasons = append(reasons, ReasonMomentum)
	}
	return reasons
}

// Aggregate returns the score and reasons for s.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (a Aggregator) Aggregate(s *Signals) (int, []string) {
	return a.Score(s), a.Reasons(s)
}
