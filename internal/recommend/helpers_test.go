// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package recommend

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/collabscout/internal/graph"
)

// testNow is a Monday noon, so hour-of-week buckets are easy to reason about.
var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

// fakeProvider is an in-memory graph.Provider with per-call failure injection.
type fakeProvider struct {
	followers map[int64][]int64
	following map[int64][]int64
	posts     map[int64][]graph.Post
	scores    map[int64]float64

	// fail maps "stage:fid" (for example "posts:3") to the error returned.
	fail map[string]error

	// delay, when set, is slept inside every call for fid.
	delay func(fid int64) time.Duration

	mu          sync.Mutex
	inFlight    int
	maxInFlight int
	calls       []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		followers: make(map[int64][]int64),
		following: make(map[int64][]int64),
		posts:     make(map[int64][]graph.Post),
		scores:    make(map[int64]float64),
		fail:      make(map[string]error),
	}
}

func (p *fakeProvider) enter(ctx context.Context, stage string, fid int64) error {
	p.mu.Lock()
	p.inFlight++
	p.maxInFlight = max(p.maxInFlight, p.inFlight)
	p.calls = append(p.calls, fmt.Sprintf("%s:%d", stage, fid))
	p.mu.Unlock()

	if p.delay != nil {
		select {
		case <-time.After(p.delay(fid)):
		case <-ctx.Done():
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := p.fail[fmt.Sprintf("%s:%d", stage, fid)]; ok {
		return err
	}
	return nil
}

func (p *fakeProvider) leave() {
	p.mu.Lock()
	p.inFlight--
	p.mu.Unlock()
}

func (p *fakeProvider) creator(fid int64) graph.Creator {
	c := graph.Creator{FID: fid, Username: fmt.Sprintf("user%d", fid), DisplayName: fmt.Sprintf("User %d", fid)}
	if s, ok := p.scores[fid]; ok {
		c.Score = &s
	}
	return c
}

func (p *fakeProvider) Relations(ctx context.Context, fid int64, rel graph.Relation, opts graph.ListOptions) ([]graph.Creator, error) {
	defer p.leave()
	if err := p.enter(ctx, string(rel), fid); err != nil {
		return nil, err
	}
	src := p.followers
	if rel == graph.RelationFollowing {
		src = p.following
	}
	fids := src[fid]
	if opts.Limit > 0 && len(fids) > opts.Limit {
		fids = fids[:opts.Limit]
	}
	out := make([]graph.Creator, 0, len(fids))
	for _, f := range fids {
		out = append(out, p.creator(f))
	}
	return out, nil
}

func (p *fakeProvider) Posts(ctx context.Context, fid int64, limit int) ([]graph.Post, error) {
	defer p.leave()
	if err := p.enter(ctx, "posts", fid); err != nil {
		return nil, err
	}
	posts := p.posts[fid]
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (p *fakeProvider) Creator(ctx context.Context, fid int64) (*graph.Creator, error) {
	defer p.leave()
	if err := p.enter(ctx, "creator", fid); err != nil {
		return nil, err
	}
	c := p.creator(fid)
	return &c, nil
}

// post builds a post aged ageHours before testNow.
func post(fid int64, ageHours float64, text string, likes, recasts, replies int) graph.Post {
	return graph.Post{
		AuthorFID: fid,
		Text:      text,
		Timestamp: testNow.Add(-time.Duration(ageHours * float64(time.Hour))),
		Reactions: graph.Reactions{Likes: likes, Recasts: recasts, Replies: replies},
	}
}

func newTestEngine(t *testing.T, p graph.Provider, mutate func(*Config)) *Engine {
	t.Helper()

	cfg := DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	e, err := NewEngine(cfg, p, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	e.SetClock(func() time.Time { return testNow })
	return e
}

func fidsOf(recs []CandidateScore) []int64 {
	out := make([]int64, len(recs))
	for i := range recs {
		out[i] = recs[i].FID
	}
	return out
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func ptr[T any](v T) *T {
	return &v
}
