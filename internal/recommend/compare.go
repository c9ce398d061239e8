// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package recommend

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/collabscout/internal/graph"
	"github.com/tomtom215/collabscout/internal/logging"
	"github.com/tomtom215/collabscout/internal/metrics"
)

// Compare scores target as a collaborator for fid.
//
// Unlike Recommend, every follower and post read is required here. Only the
// target profile lookup may fail, leaving audience quality unknown.
func (e *Engine) Compare(ctx context.Context, fid, target int64) (cmp *Comparison, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordRecommendation("compare", outcomeLabel(err), time.Since(start))
	}()

	switch {
	case fid <= 0:
		return nil, badRequest("fid must be a positive integer, got %d", fid)
	case target <= 0:
		return nil, badRequest("target must be a positive integer, got %d", target)
	case fid == target:
		return nil, badRequest("fid and target must differ")
	}

	logger := logging.WithContext(ctx, e.logger).With().Int64("fid", fid).Int64("target", target).Logger()

	var (
		followersA, followersB []graph.Creator
		postsA, postsB         []graph.Post
		targetProfile          *graph.Creator
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Concurrency)
	followerOpts := graph.ListOptions{Limit: e.config.FollowerSampleSize}

	g.Go(func() (err error) {
		followersA, err = e.provider.Relations(gctx, fid, graph.RelationFollowers, followerOpts)
		return err
	})
	g.Go(func() (err error) {
		followersB, err = e.provider.Relations(gctx, target, graph.RelationFollowers, followerOpts)
		return err
	})
	g.Go(func() (err error) {
		postsA, err = e.provider.Posts(gctx, fid, e.config.PostHistorySize)
		return err
	})
	g.Go(func() (err error) {
		postsB, err = e.provider.Posts(gctx, target, e.config.PostHistorySize)
		return err
	})
	g.Go(func() error {
		c, lookupErr := e.provider.Creator(gctx, target)
		if lookupErr != nil {
			logger.Debug().Err(lookupErr).Msg("Target profile unavailable, audience quality unknown")
			return nil
		}
		targetProfile = c
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, classifyProviderError(ctx, "compare", err)
	}

	a := e.buildProfile(followersA, postsA)
	b := e.buildProfile(followersB, postsB)

	var quality *float64
	if targetProfile != nil {
		quality = targetProfile.Score
	}
	signals := e.signals(a, b, quality)
	score, reasons := e.scorer.Aggregate(&signals)

	return &Comparison{
		FID:                  fid,
		Target:               target,
		JaccardSimilarity:    signals.Overlap,
		SharedFollowers:      Intersection(a.followers, b.followers),
		TotalFollowers:       len(a.followers),
		TotalFollowersTarget: len(b.followers),
		EngagementAffinity:   signals.EngagementAffinity,
		TopicSimilarity:      signals.TopicSimilarity,
		AudienceQuality:      signals.AudienceQuality,
		Momentum:             signals.Momentum,
		Score:                score,
		Reasons:              reasons,
		Algorithm:            e.Algorithm(),
	}, nil
}
