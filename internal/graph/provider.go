// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package graph

import (
	"context"
)

// Provider is the read-only social graph data source.
//
// Every call is a fresh read; nothing is cached. Failures wrap
// ErrUpstreamUnavailable, or ErrMissingCredential when the provider cannot
// authenticate at all.
//
// Implementations:
//   - NeynarClient: live Neynar v2 API
//   - FixtureProvider: local JSON document
//   - BreakerProvider: circuit breaker decorator around another Provider
//   - MisconfiguredProvider: stand-in used when the live credential is missing
type Provider interface {
	// Relations lists followers or followed accounts of fid, up to opts.Limit.
	Relations(ctx context.Context, fid int64, rel Relation, opts ListOptions) ([]Creator, error)

	// Posts returns up to limit recent posts authored by fid.
	Posts(ctx context.Context, fid int64, limit int) ([]Post, error)

	// Creator looks up one profile. Unknown creators yield ErrNotFound.
	Creator(ctx context.Context, fid int64) (*Creator, error)
}

// MisconfiguredProvider fails every call with its configured error.
// It keeps the process serving health and metrics when the live provider
// could not be built.
type MisconfiguredProvider struct {
	Err error
}

// NewMisconfiguredProvider returns a provider failing with err, or
// ErrMissingCredential when err is nil.
func NewMisconfiguredProvider(err error) *MisconfiguredProvider {
	if err == nil {
		err = ErrMissingCredential
	}
	return &MisconfiguredProvider{Err: err}
}

func (p *MisconfiguredProvider) Relations(context.Context, int64, Relation, ListOptions) ([]Creator, error) {
	return nil, p.Err
}

func (p *MisconfiguredProvider) Posts(context.Context, int64, int) ([]Post, error) {
	return nil, p.Err
}

func (p *MisconfiguredProvider) Creator(context.Context, int64) (*Creator, error) {
	return nil, p.Err
}
