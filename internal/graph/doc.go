// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

/*
Package graph provides read-only access to the social graph: follower and
following sets, recent posts with reaction counts, and creator profiles.

Data Sources:

The Provider interface has two real implementations selected once at startup
by provider.source:

  - NeynarClient ("live"): Neynar v2 HTTP API, authenticated with an API key
  - FixtureProvider ("fixture"): a JSON document, the embedded demo by default

NeynarClient is normally wrapped by BreakerProvider (sony/gobreaker) so a
failing upstream trips open instead of absorbing every candidate fetch. When
the live credential is missing, startup wires MisconfiguredProvider so the
process still serves health and metrics.

Error Model:

	ErrUpstreamUnavailable  non-2xx, transport error, timeout, open circuit
	ErrNotFound             unknown creator (also matches ErrUpstreamUnavailable)
	ErrMissingCredential    no API key; reported as a server misconfiguration

*UpstreamError carries the endpoint and status code and unwraps to both the
sentinel and the underlying cause.

Fixture Format:

Posts may give an absolute "timestamp" or an "age_hours" offset resolved when
the fixture is loaded, which keeps momentum meaningful for a static document.
A "fail" map forces ErrUpstreamUnavailable for a fid at a stage (followers,
following, posts, creator).

Thread Safety:

All providers are safe for concurrent use.
*/
package graph
