// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package graph

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// ProviderFixture labels metrics and logs for the fixture provider.
const ProviderFixture = "fixture"

//go:embed fixtures/demo.json
var fixtureFS embed.FS

const demoFixturePath = "fixtures/demo.json"

// Fixture stages that can be forced to fail through the document's "fail" map.
const (
	StageFollowers = "followers"
	StageFollowing = "following"
	StagePosts     = "posts"
	StageCreator   = "creator"
)

// FixtureDocument is the on-disk fixture format. Map keys are fids.
//
//	{
//	  "creators":  [{"fid": 1, "username": "alice", ...}],
//	  "followers": {"1": [2, 3]},
//	  "following": {"1": [4, 5]},
//	  "posts":     {"1": [{"text": "gm", "age_hours": 3, "likes": 4}]},
//	  "fail":      {"5": ["posts"]}
//	}
type FixtureDocument struct {
	Creators  []fixtureCreator         `json:"creators"`
	Followers map[string][]int64       `json:"followers"`
	Following map[string][]int64       `json:"following"`
	Posts     map[string][]fixturePost `json:"posts"`
	Fail      map[string][]string      `json:"fail"`
}

type fixtureCreator struct {
	FID            int64    `json:"fid"`
	Username       string   `json:"username"`
	DisplayName    string   `json:"display_name"`
	AvatarURL      string   `json:"avatar_url"`
	Bio            string   `json:"bio"`
	FollowerCount  int      `json:"follower_count"`
	FollowingCount int      `json:"following_count"`
	Verified       bool     `json:"verified"`
	Score          *float64 `json:"score"`
}

// fixturePost carries either an absolute timestamp or an age relative to load time.
type fixturePost struct {
	Hash      string     `json:"hash"`
	Text      string     `json:"text"`
	Timestamp *time.Time `json:"timestamp"`
	AgeHours  float64    `json:"age_hours"`
	Likes     int        `json:"likes"`
	Recasts   int        `json:"recasts"`
	Replies   int        `json:"replies"`
}

// FixtureProvider serves the social graph from an in-memory fixture document.
// It is immutable after construction and safe for concurrent use.
type FixtureProvider struct {
	creators  map[int64]Creator
	followers map[int64][]int64
	following map[int64][]int64
	posts     map[int64][]Post
	fail      map[int64]map[string]bool
}

// LoadFixture reads a fixture document from path, or the embedded demo
// fixture when path is empty. Relative post ages resolve against now.
func LoadFixture(path string, now time.Time) (*FixtureProvider, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = fixtureFS.ReadFile(demoFixturePath)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var doc FixtureDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return NewFixtureProvider(&doc, now)
}

// NewFixtureProvider indexes doc for lookup.
func NewFixtureProvider(doc *FixtureDocument, now time.Time) (*FixtureProvider, error) {
	p := &FixtureProvider{
		creators:  make(map[int64]Creator, len(doc.Creators)),
		followers: make(map[int64][]int64, len(doc.Followers)),
		following: make(map[int64][]int64, len(doc.Following)),
		posts:     make(map[int64][]Post, len(doc.Posts)),
		fail:      make(map[int64]map[string]bool, len(doc.Fail)),
	}

	for _, c := range doc.Creators {
		if c.FID <= 0 {
			return nil, fmt.Errorf("fixture creator has invalid fid %d", c.FID)
		}
		p.creators[c.FID] = Creator{
			FID:            c.FID,
			Username:       c.Username,
			DisplayName:    c.DisplayName,
			AvatarURL:      c.AvatarURL,
			Bio:            c.Bio,
			FollowerCount:  c.FollowerCount,
			FollowingCount: c.FollowingCount,
			Verified:       c.Verified,
			Score:          c.Score,
		}
	}

	if err := indexFIDLists(doc.Followers, p.followers); err != nil {
		return nil, fmt.Errorf("fixture followers: %w", err)
	}
	if err := indexFIDLists(doc.Following, p.following); err != nil {
		return nil, fmt.Errorf("fixture following: %w", err)
	}

	for key, posts := range doc.Posts {
		fid, err := parseFixtureFID(key)
		if err != nil {
			return nil, fmt.Errorf("fixture posts: %w", err)
		}
		out := make([]Post, 0, len(posts))
		for i, fp := range posts {
			ts := now.Add(-time.Duration(fp.AgeHours * float64(time.Hour)))
			if fp.Timestamp != nil {
				ts = *fp.Timestamp
			}
			hash := fp.Hash
			if hash == "" {
				hash = fmt.Sprintf("0xfixture-%d-%d", fid, i)
			}
			out = append(out, Post{
				Hash:      hash,
				AuthorFID: fid,
				Text:      fp.Text,
				Timestamp: ts.UTC(),
				Reactions: Reactions{Likes: fp.Likes, Recasts: fp.Recasts, Replies: fp.Replies},
			})
		}
		p.posts[fid] = out
	}

	for key, stages := range doc.Fail {
		fid, err := parseFixtureFID(key)
		if err != nil {
			return nil, fmt.Errorf("fixture fail: %w", err)
		}
		set := make(map[string]bool, len(stages))
		for _, s := range stages {
			switch s {
			case StageFollowers, StageFollowing, StagePosts, StageCreator:
				set[s] = true
			default:
				return nil, fmt.Errorf("fixture fail: unknown stage %q for fid %d", s, fid)
			}
		}
		p.fail[fid] = set
	}

	return p, nil
}

// Relations lists fids from the fixture in declared order ("recent" reverses it).
func (p *FixtureProvider) Relations(ctx context.Context, fid int64, rel Relation, opts ListOptions) ([]Creator, error) {
	if err := ctx.Err(); err != nil {
		return nil, &UpstreamError{Endpoint: ProviderFixture + "/" + string(rel), Cause: err}
	}

	var source map[int64][]int64
	switch rel {
	case RelationFollowers:
		source = p.followers
	case RelationFollowing:
		source = p.following
	default:
		return nil, fmt.Errorf("unknown relation %q", rel)
	}
	if err := p.injected(fid, string(rel)); err != nil {
		return nil, err
	}

	fids := source[fid]
	limit := min(opts.limit(), len(fids))
	out := make([]Creator, 0, limit)
	for i := 0; i < limit; i++ {
		idx := i
		if opts.sort() == SortRecent {
			idx = len(fids) - 1 - i
		}
		out = append(out, p.lookup(fids[idx]))
	}
	return out, nil
}

// Posts returns up to limit fixture posts for fid in declared order.
func (p *FixtureProvider) Posts(ctx context.Context, fid int64, limit int) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, &UpstreamError{Endpoint: ProviderFixture + "/" + StagePosts, Cause: err}
	}
	if err := p.injected(fid, StagePosts); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	posts := p.posts[fid]
	n := min(limit, len(posts))
	out := make([]Post, n)
	copy(out, posts[:n])
	return out, nil
}

// Creator looks up a fixture profile.
func (p *FixtureProvider) Creator(ctx context.Context, fid int64) (*Creator, error) {
	if err := ctx.Err(); err != nil {
		return nil, &UpstreamError{Endpoint: ProviderFixture + "/" + StageCreator, Cause: err}
	}
	if err := p.injected(fid, StageCreator); err != nil {
		return nil, err
	}
	c, ok := p.creators[fid]
	if !ok {
		return nil, fmt.Errorf("fid %d: %w", fid, ErrNotFound)
	}
	return &c, nil
}

// lookup returns the fixture profile for fid or a bare record.
func (p *FixtureProvider) lookup(fid int64) Creator {
	if c, ok := p.creators[fid]; ok {
		return c
	}
	return Creator{FID: fid, Username: "fid" + strconv.FormatInt(fid, 10)}
}

// injected returns a forced failure for fid at stage, if the fixture declares one.
func (p *FixtureProvider) injected(fid int64, stage string) error {
	if p.fail[fid][stage] {
		return &UpstreamError{
			Endpoint:   ProviderFixture + "/" + stage,
			StatusCode: http.StatusServiceUnavailable,
			Message:    "injected failure",
		}
	}
	return nil
}

func indexFIDLists(src map[string][]int64, dst map[int64][]int64) error {
	for key, fids := range src {
		fid, err := parseFixtureFID(key)
		if err != nil {
			return err
		}
		dst[fid] = append([]int64(nil), fids...)
	}
	return nil
}

func parseFixtureFID(key string) (int64, error) {
	fid, err := strconv.ParseInt(key, 10, 64)
	if err != nil || fid <= 0 {
		return 0, fmt.Errorf("invalid fid key %q", key)
	}
	return fid, nil
}
