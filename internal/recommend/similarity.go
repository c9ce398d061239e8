// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package recommend

import (
	"math"

	"github.com/tomtom215/collabscout/internal/graph"
)

// Set is an unordered collection of distinct values.
type Set[T comparable] map[T]struct{}

// NewSet builds a set from values.
func NewSet[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// FIDSet builds the identifier set of creators.
func FIDSet(creators []graph.Creator) Set[int64] {
	s := make(Set[int64], len(creators))
	for i := range creators {
		s[creators[i].FID] = struct{}{}
	}
	return s
}

// Intersection returns |a ∩ b|.
func Intersection[T comparable](a, b Set[T]) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for v := range a {
		if _, ok := b[v]; ok {
			n++
		}
	}
	return n
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when the union is empty.
func Jaccard[T comparable](a, b Set[T]) float64 {
	inter := Intersection(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Cosine returns the cosine similarity of two engagement vectors, or 0 when
// either has zero norm. Engagement weights are non-negative, so the result
// is in [0, 1].
func Cosine(a, b *EngagementVector) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	// sqrt of the product keeps Cosine(v, v) exactly 1.
	return clamp01(dot / math.Sqrt(normA*normB))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
