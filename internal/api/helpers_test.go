// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/collabscout/internal/auth"
	"github.com/tomtom215/collabscout/internal/graph"
	"github.com/tomtom215/collabscout/internal/recommend"
)

var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

// fakeRecommender records calls and returns canned results.
type fakeRecommender struct {
	mu       sync.Mutex
	requests []recommend.Request
	compares [][2]int64

	resp   *recommend.Response
	cmp    *recommend.Comparison
	err    error
	hasCtx func(ctx context.Context)
}

func (f *fakeRecommender) Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.hasCtx != nil {
		f.hasCtx(ctx)
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &recommend.Response{FID: req.FID, Recommendations: []recommend.CandidateScore{}}, nil
}

func (f *fakeRecommender) Compare(_ context.Context, fid, target int64) (*recommend.Comparison, error) {
	f.mu.Lock()
	f.compares = append(f.compares, [2]int64{fid, target})
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.cmp != nil {
		return f.cmp, nil
	}
	return &recommend.Comparison{FID: fid, Target: target, Reasons: []string{}}, nil
}

func (f *fakeRecommender) lastRequest(t *testing.T) recommend.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatal("Recommend was not called")
	}
	return f.requests[len(f.requests)-1]
}

type staticReadiness struct {
	ready  bool
	detail string
}

func (s staticReadiness) Ready() (bool, string) { return s.ready, s.detail }

// testEnvelope mirrors APIResponse with a raw payload for per-test decoding.
type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func fixtureProvider(t *testing.T) *graph.FixtureProvider {
	t.Helper()
	p, err := graph.LoadFixture("", testNow)
	if err != nil {
		t.Fatalf("LoadFixture() error = %v", err)
	}
	return p
}

type testServer struct {
	handler http.Handler
	engine  *fakeRecommender
}

type serverOptions struct {
	provider  graph.Provider
	engine    Recommender
	readiness ReadinessChecker
	sessions  *auth.SessionManager
	mw        *ChiMiddlewareConfig
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()

	fake := &fakeRecommender{}
	engine := opts.engine
	if engine == nil {
		engine = fake
	}
	provider := opts.provider
	if provider == nil {
		provider = fixtureProvider(t)
	}
	mwCfg := opts.mw
	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
		mwCfg.RateLimitDisabled = true
	}

	h := NewHandler(engine, provider, HandlerOptions{
		ProviderName:   graph.ProviderFixture,
		RequestTimeout: 5 * time.Second,
		Readiness:      opts.readiness,
	})
	router := NewRouter(h, NewChiMiddleware(mwCfg), opts.sessions, "session")
	return &testServer{handler: router.SetupChi(), engine: fake}
}

func (s *testServer) get(t *testing.T, target string, mutate func(*http.Request)) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	var env testEnvelope
	if ct := w.Header().Get("Content-Type"); ct == "application/json; charset=utf-8" {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s: %v\nbody: %s", target, err, w.Body.String())
		}
	}
	return w, env
}

func decodeData(t *testing.T, env testEnvelope, out any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v\ndata: %s", err, env.Data)
	}
}
