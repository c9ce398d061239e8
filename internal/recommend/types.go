// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package recommend

// Request asks for collaborator recommendations for one creator.
type Request struct {
	// FID is the requesting creator. Required.
	FID int64

	// Limit caps the number of results. Zero uses the configured default;
	// values above the configured maximum are clamped.
	Limit int
}

// Signals are the five inputs of the aggregate score.
// AudienceQuality is nil when the provider reported no quality score.
type Signals struct {
	Overlap            float64
	EngagementAffinity float64
	TopicSimilarity    float64
	AudienceQuality    *float64
	Momentum           float64
}

// CandidateScore is one ranked collaborator. It is never mutated after construction.
type CandidateScore struct {
	FID         int64  `json:"fid"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatar"`

	Overlap            float64  `json:"overlap"`
	EngagementAffinity float64  `json:"engagementAffinity"`
	TopicSimilarity    float64  `json:"topicSimilarity"`
	AudienceQuality    *float64 `json:"audienceQuality"`
	Momentum           float64  `json:"momentum"`

	// Score is the aggregate in [0, 100].
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Algorithm identifies the weights that produced a response.
type Algorithm struct {
	Weights map[string]float64 `json:"weights"`
	Version string             `json:"version"`
}

// Response is the result of Engine.Recommend.
type Response struct {
	FID             int64            `json:"fid"`
	Recommendations []CandidateScore `json:"recommendations"`
	Algorithm       Algorithm        `json:"algorithm"`

	// Examined is the number of distinct candidates in the pool.
	Examined int `json:"examined"`

	// Skipped is the number of candidates dropped because a fetch failed.
	Skipped int `json:"skipped"`
}

// Comparison is the result of Engine.Compare for one creator pair.
type Comparison struct {
	FID                  int64    `json:"fid"`
	Target               int64    `json:"target"`
	JaccardSimilarity    float64  `json:"jaccardSimilarity"`
	SharedFollowers      int      `json:"sharedFollowers"`
	TotalFollowers       int      `json:"totalFollowers"`
	TotalFollowersTarget int      `json:"totalFollowersTarget"`
	EngagementAffinity   float64  `json:"engagementAffinity"`
	TopicSimilarity      float64  `json:"topicSimilarity"`
	AudienceQuality      *float64 `json:"audienceQuality"`
	Momentum             float64  `json:"momentum"`
	Score                int      `json:"score"`
	Reasons              []string `json:"reasons"`

	Algorithm Algorithm `json:"algorithm"`
}
