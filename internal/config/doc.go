// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

/*
Package config provides centralized configuration management for Collabscout.

Configuration is loaded with Koanf v2 from three layers, later layers winning:

  - Built-in defaults (defaultConfig)
  - An optional YAML file: CONFIG_PATH, ./config.yaml, or /etc/collabscout/config.yaml
  - Environment variables listed in envMappings

# Environment Variables

Graph data source:
  - GRAPH_SOURCE: live or fixture (default: live)
  - GRAPH_FIXTURE_PATH: fixture document path (default: embedded demo fixture)
  - NEYNAR_API_KEY: service credential for the live provider
  - NEYNAR_BASE_URL: API base URL (default: https://api.neynar.com)
  - NEYNAR_TIMEOUT: per-call timeout, 1s..30s (default: 8s)
  - NEYNAR_RPS / NEYNAR_BURST: outbound pacing (default: 20 / 10)

Scoring:
  - RECOMMEND_CONCURRENCY: candidate worker pool size, 1..8 (default: 8)
  - RECOMMEND_NEUTRAL_AUDIENCE_QUALITY: substitute for unknown quality (default: 0.5)
  - RECOMMEND_WEIGHT_*: scoring weights, must sum to 1

Serving:
  - HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT
  - SESSION_SECRET: HS256 secret for session tokens (optional, 32+ chars)
  - CORS_ORIGINS: comma-separated origins
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Example

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
