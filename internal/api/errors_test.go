// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/collabscout/internal/graph"
	"github.com/tomtom215/collabscout/internal/logging"
	"github.com/tomtom215/collabscout/internal/recommend"
)

func TestRespondEngineError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "bad request keeps detail",
			err:         fmt.Errorf("%w: fid must be positive", recommend.ErrBadRequest),
			wantStatus:  http.StatusBadRequest,
			wantCode:    ErrCodeBadRequest,
			wantMessage: "fid must be positive",
		},
		{
			name:       "misconfigured",
			err:        fmt.Errorf("recommend: %w: %w", recommend.ErrServerMisconfigured, graph.ErrMissingCredential),
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeServerMisconfigured,
		},
		{
			name:       "raw missing credential",
			err:        graph.ErrMissingCredential,
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeServerMisconfigured,
		},
		{
			name:       "engine upstream",
			err:        fmt.Errorf("recommend: %w", recommend.ErrUpstreamUnavailable),
			wantStatus: http.StatusBadGateway,
			wantCode:   ErrCodeExternalServiceFail,
		},
		{
			name:       "graph upstream",
			err:        &graph.UpstreamError{Endpoint: "/x", StatusCode: http.StatusBadGateway},
			wantStatus: http.StatusBadGateway,
			wantCode:   ErrCodeExternalServiceFail,
		},
		{
			name:       "deadline",
			err:        fmt.Errorf("recommend: %w", context.DeadlineExceeded),
			wantStatus: http.StatusBadGateway,
			wantCode:   ErrCodeExternalServiceFail,
		},
		{
			name:       "canceled",
			err:        fmt.Errorf("recommend: %w", context.Canceled),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   ErrCodeServiceUnavailable,
		},
		{
			name:       "canceled upstream read",
			err:        &graph.UpstreamError{Endpoint: "/x", Cause: context.Canceled},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   ErrCodeServiceUnavailable,
		},
		{
			name:       "unknown",
			err:        errors.New("surprise"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			respondEngineError(w, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var env testEnvelope
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Fatalf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
			if tt.wantMessage != "" && env.Error.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", env.Error.Message, tt.wantMessage)
			}
		})
	}
}

func TestRespondEngineError_LogsWithRequestContext(t *testing.T) {
	var buf bytes.Buffer
	original := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(original) })

	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantMsg   string
	}{
		{"upstream failure", fmt.Errorf("recommend: %w", recommend.ErrUpstreamUnavailable), "warn", "Upstream read failed"},
		{"misconfigured", graph.ErrMissingCredential, "error", "Graph provider is not configured"},
		{"unknown", errors.New("surprise"), "error", "Unhandled API error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			req := httptest.NewRequest(http.MethodGet, "/api/v1/collab/recommendations", nil)
			req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-err-1"))
			respondEngineError(httptest.NewRecorder(), req, tt.err)

			out := buf.String()
			for _, want := range []string{`"level":"` + tt.wantLevel + `"`, tt.wantMsg, `"request_id":"req-err-1"`} {
				if !strings.Contains(out, want) {
					t.Errorf("log output missing %s: %s", want, out)
				}
			}
		})
	}
}
