// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/collabscout/internal/graph"
)

func TestCreator(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverOptions{})

	w, env := srv.get(t, "/api/v1/creators/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var c graph.Creator
	decodeData(t, env, &c)
	if c.FID != 1 || c.Username != "alice" {
		t.Errorf("creator = %+v", c)
	}

	w, env = srv.get(t, "/api/v1/creators/999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown fid status = %d, want 404", w.Code)
	}
	if env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("error = %+v", env.Error)
	}

	if w, _ := srv.get(t, "/api/v1/creators/abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("non-numeric fid status = %d, want 400", w.Code)
	}
}

func TestCreator_UpstreamFailure(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverOptions{provider: graph.NewMisconfiguredProvider(nil)})
	w, env := srv.get(t, "/api/v1/creators/1", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if env.Error == nil || env.Error.Code != ErrCodeServerMisconfigured {
		t.Errorf("error = %+v", env.Error)
	}
}

func TestFollows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		wantFIDs []int64
		wantSort graph.SortOrder
	}{
		{"followers default", "/api/v1/creators/3/follows?type=followers", nil, graph.SortAlgorithmic},
		{"following limited", "/api/v1/creators/2/follows?type=following&limit=2", []int64{1, 3}, graph.SortAlgorithmic},
		{"following recent", "/api/v1/creators/2/follows?type=following&sort_type=recent", []int64{7, 3, 1}, graph.SortRecent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newTestServer(t, serverOptions{})
			w, env := srv.get(t, tt.target, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}

			var resp FollowsResponse
			decodeData(t, env, &resp)
			if resp.Sort != tt.wantSort {
				t.Errorf("sort = %q, want %q", resp.Sort, tt.wantSort)
			}
			if resp.Users == nil || resp.Count != len(resp.Users) {
				t.Errorf("count = %d, users = %v", resp.Count, resp.Users)
			}
			if tt.wantFIDs != nil {
				got := graph.FIDs(resp.Users)
				if len(got) != len(tt.wantFIDs) {
					t.Fatalf("fids = %v, want %v", got, tt.wantFIDs)
				}
				for i := range got {
					if got[i] != tt.wantFIDs[i] {
						t.Errorf("fids = %v, want %v", got, tt.wantFIDs)
						break
					}
				}
			}
		})
	}
}

func TestFollows_BadInput(t *testing.T) {
	t.Parallel()

	targets := []string{
		"/api/v1/creators/1/follows",
		"/api/v1/creators/1/follows?type=friends",
		"/api/v1/creators/1/follows?type=followers&limit=1001",
		"/api/v1/creators/1/follows?type=followers&limit=0x10",
		"/api/v1/creators/1/follows?type=followers&sort_type=random",
		"/api/v1/creators/0/follows?type=followers",
	}

	srv := newTestServer(t, serverOptions{})
	for _, target := range targets {
		if w, _ := srv.get(t, target, nil); w.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", target, w.Code)
		}
	}
}
