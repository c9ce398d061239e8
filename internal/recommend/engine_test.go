// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/collabscout/internal/graph"
	"github.com/tomtom215/collabscout/internal/metrics"
)

const requester int64 = 1

// newScenarioProvider returns a provider where requester follows candidates
// and has followers 100..109.
func newScenarioProvider(candidates ...int64) *fakeProvider {
	p := newFakeProvider()
	p.following[requester] = candidates
	for f := int64(100); f < 110; f++ {
		p.followers[requester] = append(p.followers[requester], f)
	}
	return p
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	if _, err := NewEngine(nil, nil, zerolog.Nop()); err == nil {
		t.Error("NewEngine(nil provider) expected error")
	}

	bad := DefaultConfig()
	bad.Concurrency = 0
	if _, err := NewEngine(bad, newFakeProvider(), zerolog.Nop()); err == nil {
		t.Error("NewEngine(invalid config) expected error")
	}

	e, err := NewEngine(nil, newFakeProvider(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine(nil config) error = %v", err)
	}
	if e.Config().Version != "1.0" {
		t.Errorf("Version = %q, want default", e.Config().Version)
	}
}

func TestEngine_Recommend_RanksByOverlap(t *testing.T) {
	t.Parallel()

	p := newScenarioProvider(2, 3, 4)
	p.followers[2] = []int64{100, 101, 102} // 3/10
	p.followers[3] = []int64{100}           // 1/10
	p.followers[4] = []int64{999}           // 0/11
	for _, fid := range []int64{2, 3, 4} {
		p.scores[fid] = 0.5
	}

	e := newTestEngine(t, p, nil)
	resp, err := e.Recommend(context.Background(), Request{FID: requester})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if got := fmt.Sprint(fidsOf(resp.Recommendations)); got != "[2 3 4]" {
		t.Fatalf("order = %s, want [2 3 4]", got)
	}
	wantOverlap := []float64{0.3, 0.1, 0}
	for i, rec := range resp.Recommendations {
		if !almostEqual(rec.Overlap, wantOverlap[i]) {
			t.Errorf("fid %d overlap = %v, want %v", rec.FID, rec.Overlap, wantOverlap[i])
		}
	}
	if resp.Recommendations[0].Score <= resp.Recommendations[1].Score ||
		resp.Recommendations[1].Score <= resp.Recommendations[2].Score {
		t.Errorf("scores not strictly descending: %v", resp.Recommendations)
	}
	if resp.Recommendations[0].Reasons[0] != "30% shared followers" {
		t.Errorf("reasons = %q", resp.Recommendations[0].Reasons)
	}
	if resp.Examined != 3 || resp.Skipped != 0 {
		t.Errorf("examined/skipped = %d/%d, want 3/0", resp.Examined, resp.Skipped)
	}
	if resp.FID != requester {
		t.Errorf("FID = %d", resp.FID)
	}
	if resp.Algorithm.Version != "1.0" || resp.Algorithm.Weights["overlap"] != 0.35 {
		t.Errorf("algorithm = %+v", resp.Algorithm)
	}
	if rec := resp.Recommendations[0]; rec.Username != "user2" || rec.DisplayName != "User 2" {
		t.Errorf("display fields = %+v", rec)
	}
}

func TestEngine_Recommend_SkipsFailedCandidate(t *testing.T) {
	t.Parallel()

	p := newScenarioProvider(2, 3, 4)
	p.fail["followers:3"] = &graph.UpstreamError{Endpoint: "followers", StatusCode: 500}
	p.fail["posts:4"] = &graph.UpstreamError{Endpoint: "posts", StatusCode: 502}

	followersSkipped := metrics.RecommendCandidatesTotal.WithLabelValues("skipped", "followers")
	postsSkipped := metrics.RecommendCandidatesTotal.WithLabelValues("skipped", "posts")
	beforeFollowers := testutil.ToFloat64(followersSkipped)
	beforePosts := testutil.ToFloat64(postsSkipped)

	e := newTestEngine(t, p, nil)
	resp, err := e.Recommend(context.Background(), Request{FID: requester})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if got := fmt.Sprint(fidsOf(resp.Recommendations)); got != "[2]" {
		t.Errorf("recommendations = %s, want [2]", got)
	}
	if resp.Skipped != 2 || resp.Examined != 3 {
		t.Errorf("examined/skipped = %d/%d, want 3/2", resp.Examined, resp.Skipped)
	}
	// Other tests run in parallel, so only assert the lower bound.
	if testutil.ToFloat64(followersSkipped)-beforeFollowers < 1 {
		t.Error("followers skip not counted")
	}
	if testutil.ToFloat64(postsSkipped)-beforePosts < 1 {
		t.Error("posts skip not counted")
	}
}

func TestEngine_Recommend_EmptyRequesterFollowers(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.following[requester] = []int64{2, 3}
	p.followers[2] = []int64{5, 6}
	p.followers[3] = []int64{7}

	e := newTestEngine(t, p, nil)
	resp, err := e.Recommend(context.Background(), Request{FID: requester})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recommendations) != 2 {
		t.Fatalf("len = %d, want 2", len(resp.Recommendations))
	}
	for _, rec := range resp.Recommendations {
		if rec.Overlap != 0 {
			t.Errorf("fid %d overlap = %v, want 0", rec.FID, rec.Overlap)
		}
	}
}

func TestEngine_Recommend_BaselineFailuresDegrade(t *testing.T) {
	t.Parallel()

	p := newScenarioProvider(2)
	p.followers[2] = []int64{100, 101}
	p.posts[2] = []graph.Post{post(2, 1, "gm", 1, 0, 0)}
	p.fail["followers:1"] = errors.New("boom")
	p.fail["posts:1"] = errors.New("boom")

	e := newTestEngine(t, p, nil)
	resp, err := e.Recommend(context.Background(), Request{FID: requester})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recommendations) != 1 {
		t.Fatalf("len = %d, want 1", len(resp.Recommendations))
	}
	rec := resp.Recommendations[0]
	if rec.Overlap != 0 || rec.EngagementAffinity != 0 || rec.TopicSimilarity != 0 {
		t.Errorf("expected requester-relative signals to degrade to 0, got %+v", rec)
	}
	if rec.Momentum != 1 {
		t.Errorf("momentum = %v, want 1 (candidate-only signal)", rec.Momentum)
	}
}

func TestEngine_Recommend_IdenticalActivity(t *testing.T) {
	t.Parallel()

	history := func(fid int64) []graph.Post {
		return []graph.Post{
			post(fid, 3, "shipping #frames on /base", 10, 2, 1),
			post(fid, 27, "gm", 0, 0, 0),
			post(fid, 200, "long thread about onchain art", 4, 4, 4),
		}
	}

	p := newScenarioProvider(2)
	p.posts[requester] = history(requester)
	p.posts[2] = history(2)

	e := newTestEngine(t, p, nil)
	resp, err := e.Recommend(context.Background(), Request{FID: requester})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	rec := resp.Recommendations[0]
	if rec.EngagementAffinity != 1 {
		t.Errorf("engagementAffinity = %v, want exactly 1", rec.EngagementAffinity)
	}
	if rec.TopicSimilarity != 1 {
		t.Errorf("topicSimilarity = %v, want 1", rec.TopicSimilarity)
	}
	if rec.AudienceQuality != nil {
		t.Errorf("audienceQuality = %v, want nil when unknown", *rec.AudienceQuality)
	}
}

func TestEngine_Recommend_Momentum(t *testing.T) {
	t.Parallel()

	p := newScenarioProvider(2, 3)
	p.posts[2] = []graph.Post{post(2, 5, "new", 3, 0, 0)}
	p.posts[3] = nil

	e := newTestEngine(t, p, nil)
	resp, err := e.Recommend(context.Background(), Request{FID: requester})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	byFID := make(map[int64]CandidateScore)
	for _, rec := range resp.Recommendations {
		byFID[rec.FID] = rec
	}
	if byFID[2].Momentum != 1 {
		t.Errorf("momentum(recent only) = %v, want 1", byFID[2].Momentum)
	}
	if byFID[3].Momentum != 0 {
		t.Errorf("momentum(no activity) = %v, want 0", byFID[3].Momentum)
	}
}

func TestEngine_Recommend_TiesKeepDiscoveryOrder(t *testing.T) {
	t.Parallel()

	pool := []int64{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	p := newScenarioProvider(pool...)
	// Later candidates finish first.
	p.delay = func(fid int64) time.Duration {
		if fid >= 11 && fid <= 20 {
			return time.Duration(21-fid) * time.Millisecond
		}
		return 0
	}

	e := newTestEngine(t, p, nil)
	for run := 0; run < 3; run++ {
		resp, err := e.Recommend(context.Background(), Request{FID: requester, Limit: 50})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if got, want := fmt.Sprint(fidsOf(resp.Recommendations)), fmt.Sprint(pool); got != want {
			t.Fatalf("run %d: order = %s, want %s", run, got, want)
		}
	}
}

func TestEngine_Recommend_ConcurrencyBound(t *testing.T) {
	t.Parallel()

	pool := make([]int64, 0, 20)
	for fid := int64(2); fid < 22; fid++ {
		pool = append(pool, fid)
	}
	p := newScenarioProvider(pool...)
	p.delay = func(int64) time.Duration { return 2 * time.Millisecond }

	e := newTestEngine(t, p, func(c *Config) { c.Concurrency = 3 })
	if _, err := e.Recommend(context.Background(), Request{FID: requester}); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.maxInFlight > 3 {
		t.Errorf("max in-flight calls = %d, want <= 3", p.maxInFlight)
	}
}

func TestEngine_Recommend_Limits(t *testing.T) {
	t.Parallel()

	pool := make([]int64, 0, 15)
	for fid := int64(2); fid < 17; fid++ {
		pool = append(pool, fid)
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, 10},
		{"smaller", 3, 3},
		{"larger than pool", 40, 15},
		{"above cap", 500, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newTestEngine(t, newScenarioProvider(pool...), nil)
			resp, err := e.Recommend(context.Background(), Request{FID: requester, Limit: tt.limit})
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if len(resp.Recommendations) != tt.want {
				t.Errorf("len = %d, want %d", len(resp.Recommendations), tt.want)
			}
		})
	}
}

func TestEngine_Recommend_MaxScored(t *testing.T) {
	t.Parallel()

	p := newScenarioProvider(2, 3, 4, 5, 6)
	e := newTestEngine(t, p, func(c *Config) { c.MaxScored = 2 })

	resp, err := e.Recommend(context.Background(), Request{FID: requester})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := fmt.Sprint(fidsOf(resp.Recommendations)); got != "[2 3]" {
		t.Errorf("recommendations = %s, want first two scored [2 3]", got)
	}
}

func TestEngine_Recommend_MaxScoredStopsReads(t *testing.T) {
	t.Parallel()

	p := newScenarioProvider(2, 3, 4, 5, 6)
	p.fail["followers:3"] = &graph.UpstreamError{Endpoint: "followers", StatusCode: 500}
	e := newTestEngine(t, p, func(c *Config) {
		c.MaxScored = 2
		c.Concurrency = 1
	})

	resp, err := e.Recommend(context.Background(), Request{FID: requester})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := fmt.Sprint(fidsOf(resp.Recommendations)); got != "[2 4]" {
		t.Errorf("recommendations = %s, want [2 4]", got)
	}
	if resp.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", resp.Skipped)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, call := range p.calls {
		if call == "followers:5" || call == "followers:6" || call == "posts:5" || call == "posts:6" {
			t.Errorf("read %s after %d candidates already scored; calls = %v", call, 2, p.calls)
		}
	}
}

func TestEngine_Recommend_PoolIsDeduplicated(t *testing.T) {
	t.Parallel()

	p := newScenarioProvider(2, 3, 2, requester, 3, 4)
	e := newTestEngine(t, p, nil)

	resp, err := e.Recommend(context.Background(), Request{FID: requester})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Examined != 3 {
		t.Errorf("examined = %d, want 3", resp.Examined)
	}
	if got := fmt.Sprint(fidsOf(resp.Recommendations)); got != "[2 3 4]" {
		t.Errorf("recommendations = %s, want [2 3 4]", got)
	}
}

func TestEngine_Recommend_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider graph.Provider
		req      Request
		want     error
	}{
		{
			name:     "missing fid",
			provider: newScenarioProvider(2),
			req:      Request{},
			want:     ErrBadRequest,
		},
		{
			name:     "negative fid",
			provider: newScenarioProvider(2),
			req:      Request{FID: -4},
			want:     ErrBadRequest,
		},
		{
			name:     "negative limit",
			provider: newScenarioProvider(2),
			req:      Request{FID: requester, Limit: -1},
			want:     ErrBadRequest,
		},
		{
			name: "pool read fails",
			provider: func() graph.Provider {
				p := newScenarioProvider(2)
				p.fail["following:1"] = &graph.UpstreamError{Endpoint: "following", StatusCode: 503}
				return p
			}(),
			req:  Request{FID: requester},
			want: ErrUpstreamUnavailable,
		},
		{
			name:     "missing credential",
			provider: graph.NewMisconfiguredProvider(nil),
			req:      Request{FID: requester},
			want:     ErrServerMisconfigured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newTestEngine(t, tt.provider, nil)
			resp, err := e.Recommend(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Recommend() error = %v, want %v", err, tt.want)
			}
			if resp != nil {
				t.Errorf("Recommend() response = %+v, want nil", resp)
			}
		})
	}
}

func TestEngine_Recommend_Canceled(t *testing.T) {
	t.Parallel()

	p := newScenarioProvider(2, 3, 4)
	ctx, cancel := context.WithCancel(context.Background())
	p.delay = func(fid int64) time.Duration {
		if fid == 2 {
			cancel()
		}
		return 0
	}

	e := newTestEngine(t, p, nil)
	_, err := e.Recommend(ctx, Request{FID: requester})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Recommend() error = %v, want context.Canceled", err)
	}
}

func TestEngine_Recommend_EmptyPool(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, newFakeProvider(), nil)
	resp, err := e.Recommend(context.Background(), Request{FID: requester})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Recommendations == nil || len(resp.Recommendations) != 0 {
		t.Errorf("recommendations = %#v, want empty non-nil slice", resp.Recommendations)
	}
}

func TestEngine_Recommend_QualityClamped(t *testing.T) {
	t.Parallel()

	p := newScenarioProvider(2)
	p.scores[2] = 1.7

	e := newTestEngine(t, p, nil)
	resp, err := e.Recommend(context.Background(), Request{FID: requester})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if q := resp.Recommendations[0].AudienceQuality; q == nil || *q != 1 {
		t.Errorf("audienceQuality = %v, want 1", q)
	}
}

func TestEngine_Recommend_Fixture(t *testing.T) {
	t.Parallel()

	p, err := graph.LoadFixture("", testNow)
	if err != nil {
		t.Fatalf("LoadFixture() error = %v", err)
	}
	e := newTestEngine(t, p, nil)

	resp, err := e.Recommend(context.Background(), Request{FID: 1})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Examined != 6 {
		t.Errorf("examined = %d, want 6 distinct non-self candidates", resp.Examined)
	}
	if resp.Skipped != 1 {
		t.Errorf("skipped = %d, want 1 (fixture fails posts for fid 7)", resp.Skipped)
	}
	for i := 1; i < len(resp.Recommendations); i++ {
		if resp.Recommendations[i-1].Score < resp.Recommendations[i].Score {
			t.Fatalf("not sorted: %v", resp.Recommendations)
		}
	}
	for _, rec := range resp.Recommendations {
		if rec.FID == 7 || rec.FID == 1 {
			t.Errorf("unexpected fid %d in results", rec.FID)
		}
		if rec.Score < 0 || rec.Score > 100 {
			t.Errorf("score %d out of range", rec.Score)
		}
	}
}
