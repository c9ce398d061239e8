// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/collabscout/internal/graph"
	"github.com/tomtom215/collabscout/internal/logging"
	"github.com/tomtom215/collabscout/internal/metrics"
)

// Candidate fetch stages reported for skipped candidates.
const (
	stageFollowers = "followers"
	stagePosts     = "posts"
)

// Engine ranks potential collaborators for a creator.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	config   *Config
	provider graph.Provider
	scorer   Aggregator
	logger   zerolog.Logger
	now      func() time.Time
}

// creatorProfile is everything derived from one creator's graph reads.
type creatorProfile struct {
	followers Set[int64]
	tokens    Set[string]
	vector    EngagementVector
	momentum  float64
}

// candidateResult is the outcome of one worker. Exactly one of score and err is set.
type candidateResult struct {
	score *CandidateScore
	stage string
	err   error
}

// rankedCandidate pairs a score with its position in the candidate pool.
type rankedCandidate struct {
	index int
	score CandidateScore
}

// NewEngine creates an engine reading from provider.
// A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, provider graph.Provider, logger zerolog.Logger) (*Engine, error) {
	if provider == nil {
		return nil, errors.New("graph provider is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config:   cfg,
		provider: provider,
		scorer:   NewAggregator(cfg),
		logger:   logger.With().Str("component", "recommend").Logger(),
		now:      time.Now,
	}, nil
}

// SetClock replaces the clock used for momentum windows. Not safe to call
// concurrently with Recommend or Compare.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Config returns the engine configuration. Callers must not modify it.
func (e *Engine) Config() *Config {
	return e.config
}

// Algorithm returns the weight map and version tag attached to every result.
func (e *Engine) Algorithm() Algorithm {
	return Algorithm{
		Weights: e.config.Weights.ToMap(),
		Version: e.config.Version,
	}
}

// Recommend ranks the accounts req.FID follows as potential collaborators.
//
// Only a failed candidate pool read fails the request. A failed baseline read
// degrades to empty data and a failed candidate read drops that candidate.
func (e *Engine) Recommend(ctx context.Context, req Request) (resp *Response, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordRecommendation("recommend", outcomeLabel(err), time.Since(start))
	}()

	if req.FID <= 0 {
		return nil, badRequest("fid must be a positive integer, got %d", req.FID)
	}
	limit, err := e.config.resolveLimit(req.Limit)
	if err != nil {
		return nil, err
	}

	logger := logging.WithContext(ctx, e.logger).With().Int64("fid", req.FID).Logger()

	pool, err := e.candidatePool(ctx, req.FID)
	if err != nil {
		return nil, err
	}

	baseline, err := e.requesterProfile(ctx, req.FID, logger)
	if err != nil {
		return nil, err
	}

	results := e.scoreCandidates(ctx, pool, baseline)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("score candidates: %w", ctxErr)
	}

	ranked := make([]rankedCandidate, 0, len(results))
	skipped := 0
	for i := range results {
		r := &results[i]
		if r.score == nil && r.err == nil {
			break // not dispatched
		}
		if r.err != nil {
			skipped++
			metrics.RecordCandidateSkipped(r.stage)
			logger.Debug().
				Err(r.err).
				Int64("candidate_fid", pool[i].FID).
				Int("discovery_index", i).
				Str("stage", r.stage).
				Msg("Skipped candidate")
			continue
		}
		metrics.RecordCandidateScored()
		ranked = append(ranked, rankedCandidate{index: i, score: *r.score})
		if len(ranked) == e.config.MaxScored {
			break
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].score.Score != ranked[b].score.Score {
			return ranked[a].score.Score > ranked[b].score.Score
		}
		return ranked[a].index < ranked[b].index
	})

	n := min(limit, len(ranked))
	recs := make([]CandidateScore, n)
	for i := range recs {
		recs[i] = ranked[i].score
	}

	logger.Info().
		Int("examined", len(pool)).
		Int("scored", len(ranked)).
		Int("skipped", skipped).
		Int("returned", n).
		Dur("duration", time.Since(start)).
		Msg("Recommendations computed")

	return &Response{
		FID:             req.FID,
		Recommendations: recs,
		Algorithm:       e.Algorithm(),
		Examined:        len(pool),
		Skipped:         skipped,
	}, nil
}

// candidatePool reads the accounts fid follows, dropping fid itself and
// duplicates, in upstream order.
func (e *Engine) candidatePool(ctx context.Context, fid int64) ([]graph.Creator, error) {
	following, err := e.provider.Relations(ctx, fid, graph.RelationFollowing, graph.ListOptions{
		Limit: e.config.CandidatePoolSize,
		Sort:  e.config.PoolSort,
	})
	if err != nil {
		return nil, classifyProviderError(ctx, "candidate pool", err)
	}

	seen := make(Set[int64], len(following))
	pool := make([]graph.Creator, 0, min(len(following), MaxPoolSize))
	for i := range following {
		c := following[i]
		if c.FID <= 0 || c.FID == fid {
			continue
		}
		if _, dup := seen[c.FID]; dup {
			continue
		}
		seen[c.FID] = struct{}{}
		pool = append(pool, c)
		if len(pool) == MaxPoolSize {
			break
		}
	}
	return pool, nil
}

// requesterProfile reads the requester's followers and posts concurrently.
// Either read may fail; the profile then carries an empty set or history.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) requesterProfile(ctx context.Context, fid int64, logger zerolog.Logger) (*creatorProfile, error) {
	var (
		g         errgroup.Group
		followers []graph.Creator
		posts     []graph.Post
	)

	g.Go(func() error {
		var err error
		followers, err = e.provider.Relations(ctx, fid, graph.RelationFollowers, graph.ListOptions{Limit: e.config.FollowerSampleSize})
		if err != nil && ctx.Err() == nil {
			logger.Warn().Err(err).Msg("Requester follower set unavailable, overlap degrades to zero")
			followers = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		posts, err = e.provider.Posts(ctx, fid, e.config.PostHistorySize)
		if err != nil && ctx.Err() == nil {
			logger.Warn().Err(err).Msg("Requester post history unavailable, using empty history")
			posts = nil
		}
		return nil
	})
	_ = g.Wait() // workers never return errors

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("requester baseline: %w", err)
	}
	return e.buildProfile(followers, posts), nil
}

// scoreCandidates fetches and scores candidates in discovery order with at
// most Concurrency reads in flight. results[i] always belongs to pool[i].
//
// Dispatch stops once the completed prefix of the pool holds MaxScored
// successes: later candidates could never make the cut, so they are not read.
// Undispatched slots stay zero.
func (e *Engine) scoreCandidates(ctx context.Context, pool []graph.Creator, baseline *creatorProfile) []candidateResult {
	results := make([]candidateResult, len(pool))

	var (
		mu        sync.Mutex
		completed = make([]bool, len(pool))
		settled   int // length of the completed prefix
		prefixOK  int // successes inside the completed prefix
	)
	enough := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return prefixOK >= e.config.MaxScored
	}

	var g errgroup.Group
	slots := make(chan struct{}, e.config.Concurrency)

dispatch:
	for i := range pool {
		select {
		case slots <- struct{}{}:
		case <-ctx.Done():
			break dispatch
		}
		if enough() {
			<-slots
			break
		}

		g.Go(func() error {
			defer func() { <-slots }()
			r := e.scoreCandidate(ctx, &pool[i], baseline)

			mu.Lock()
			defer mu.Unlock()
			results[i] = r
			completed[i] = true
			for settled < len(pool) && completed[settled] {
				if results[settled].err == nil {
					prefixOK++
				}
				settled++
			}
			return nil
		})
	}
	_ = g.Wait() // failures are carried per candidate

	return results
}

// scoreCandidate reads one candidate's followers and posts and scores it.
func (e *Engine) scoreCandidate(ctx context.Context, candidate *graph.Creator, baseline *creatorProfile) candidateResult {
	if err := ctx.Err(); err != nil {
		return candidateResult{stage: stageFollowers, err: err}
	}

	followers, err := e.provider.Relations(ctx, candidate.FID, graph.RelationFollowers, graph.ListOptions{Limit: e.config.FollowerSampleSize})
	if err != nil {
		return candidateResult{stage: stageFollowers, err: err}
	}
	posts, err := e.provider.Posts(ctx, candidate.FID, e.config.PostHistorySize)
	if err != nil {
		return candidateResult{stage: stagePosts, err: err}
	}

	profile := e.buildProfile(followers, posts)
	signals := e.signals(baseline, profile, candidate.Score)
	score, reasons := e.scorer.Aggregate(&signals)

	return candidateResult{score: &CandidateScore{
		FID:                candidate.FID,
		Username:           candidate.Username,
		DisplayName:        candidate.DisplayName,
		AvatarURL:          candidate.AvatarURL,
		Overlap:            signals.Overlap,
		EngagementAffinity: signals.EngagementAffinity,
		TopicSimilarity:    signals.TopicSimilarity,
		AudienceQuality:    signals.AudienceQuality,
		Momentum:           signals.Momentum,
		Score:              score,
		Reasons:            reasons,
	}}
}

// buildProfile derives sets, vector and momentum from raw reads.
func (e *Engine) buildProfile(followers []graph.Creator, posts []graph.Post) *creatorProfile {
	return &creatorProfile{
		followers: FIDSet(followers),
		tokens:    TopicTokens(posts),
		vector:    BuildEngagementVector(posts),
		momentum:  Momentum(posts, e.now(), e.config.MomentumLookback),
	}
}

// signals compares a candidate profile against the requester baseline.
// Momentum and audience quality describe the candidate alone.
func (e *Engine) signals(baseline, candidate *creatorProfile, quality *float64) Signals {
	s := Signals{
		Overlap:            Jaccard(baseline.followers, candidate.followers),
		EngagementAffinity: Cosine(&baseline.vector, &candidate.vector),
		TopicSimilarity:    Jaccard(baseline.tokens, candidate.tokens),
		Momentum:           candidate.momentum,
	}
	if quality != nil {
		q := clamp01(*quality)
		s.AudienceQuality = &q
	}
	return s
}
