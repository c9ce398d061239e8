// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/tomtom215/collabscout/internal/logging"
)

type contextKey string

const fidContextKey contextKey = "session_fid"

// ContextWithFID returns ctx carrying the authenticated creator fid.
func ContextWithFID(ctx context.Context, fid int64) context.Context {
	return context.WithValue(ctx, fidContextKey, fid)
}

// FIDFromContext returns the session fid, if the request carried a valid token.
func FIDFromContext(ctx context.Context) (int64, bool) {
	fid, ok := ctx.Value(fidContextKey).(int64)
	return fid, ok && fid > 0
}

// Resolve is middleware that attaches the session fid to the request context.
//
// It never rejects a request: a missing, malformed or expired token leaves the
// request anonymous, and handlers decide whether an fid is required. A nil
// manager disables resolution.
func Resolve(m *SessionManager, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r, cookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := m.ValidateToken(token)
			if err != nil {
				logging.Ctx(r.Context()).Debug().Err(err).Msg("Ignoring invalid session token")
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithFID(r.Context(), claims.FID)))
		})
	}
}

// extractToken reads a bearer token, falling back to the session cookie.
func extractToken(r *http.Request, cookieName string) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookieName == "" {
		return ""
	}
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
