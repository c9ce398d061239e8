// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

/*
Package main is the entry point for the collabscout server.

collabscout recommends creators to collaborate with on Farcaster. For a
requesting creator it examines the accounts they follow and ranks them by
audience overlap, posting-time affinity, topic similarity, audience quality
and momentum.

# Startup

 1. Configuration: defaults, optional config.yaml, environment (koanf v2)
 2. Logging: global zerolog logger
 3. Graph provider: live Neynar client behind a circuit breaker, or a fixture
 4. Recommendation engine
 5. Session resolution (optional, SESSION_SECRET)
 6. Supervisor tree: upstream probe and HTTP server

# Configuration

Common environment variables:

	NEYNAR_API_KEY        live provider credential
	GRAPH_SOURCE          live | fixture
	GRAPH_FIXTURE_PATH    fixture document (embedded demo when empty)
	SESSION_SECRET        HS256 secret for session tokens
	HTTP_PORT             listen port (default 8080)
	LOG_LEVEL, LOG_FORMAT

A missing NEYNAR_API_KEY with the live source does not stop the server:
/health/ready reports not ready and recommendation endpoints answer
500 SERVER_MISCONFIGURED.

# Example Usage

Offline demo:

	GRAPH_SOURCE=fixture LOG_FORMAT=console ./collabscout
	curl 'localhost:8080/api/v1/collab/recommendations?fid=1&limit=5'

Live:

	NEYNAR_API_KEY=... ./collabscout

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree; the HTTP server drains
in-flight requests for up to server.shutdown_timeout.
*/
package main
