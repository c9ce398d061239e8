// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

/*
Package auth resolves an authenticated request to a creator fid.

Sessions are stateless HS256 tokens carrying an fid claim. They are read from
an "Authorization: Bearer" header or the session cookie by Resolve, which
stores the fid in the request context:

	sessions, err := auth.NewSessionManager(&cfg.Security)
	r.Use(auth.Resolve(sessions, cfg.Security.SessionCookie))

	fid, ok := auth.FIDFromContext(r.Context())

The fid is trusted as-is by the recommendation handlers. Resolve never rejects
a request; invalid tokens are logged at debug level and ignored.
*/
package auth
