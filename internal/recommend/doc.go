// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

/*
Package recommend ranks potential collaborators for a creator.

# Pipeline

For one request the Engine:

 1. reads the accounts the requester follows as the candidate pool
 2. reads the requester's followers and recent posts (the baseline)
 3. reads every candidate's followers and posts through a bounded worker pool
 4. computes five signals per candidate and combines them into a score
 5. sorts by score, breaking ties by pool position, and truncates

Only a failed pool read fails the request. Baseline reads degrade to empty
data; a failed candidate read drops that candidate and is logged at debug
level with its fetch stage.

# Signals

  - Overlap: Jaccard similarity of follower sets
  - Engagement affinity: cosine similarity of 168-bucket hour-of-week
    engagement vectors (Monday 00:00 UTC is bucket 0)
  - Topic similarity: Jaccard similarity of post token sets
  - Audience quality: the upstream quality score, or a configurable neutral
    value when the provider has none
  - Momentum: recent versus prior half of a lookback window

The score is round(100 * Σ weight*signal) with weights summing to 1.0.
Reasons are emitted per signal from fixed thresholds, independent of the score.

# Usage

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), provider, logger)
	if err != nil {
	    return err
	}
	resp, err := engine.Recommend(ctx, recommend.Request{FID: 3, Limit: 10})
	switch {
	case errors.Is(err, recommend.ErrBadRequest):
	    // 400
	case errors.Is(err, recommend.ErrServerMisconfigured):
	    // 500
	case errors.Is(err, recommend.ErrUpstreamUnavailable):
	    // 502
	}

# Thread Safety

Engine is safe for concurrent use. SetClock must be called before serving.
*/
package recommend
