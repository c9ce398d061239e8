// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

// Package logging provides centralized zerolog-based structured logging for Collabscout.
//
// The global logger is configured once from main():
//
//	logging.Init(logging.Config{
//	    Level:  cfg.Logging.Level,
//	    Format: cfg.Logging.Format,
//	    Caller: cfg.Logging.Caller,
//	})
//
// Request-scoped logging picks up the request_id set by the HTTP middleware:
//
//	logging.Ctx(ctx).Info().Int64("fid", fid).Msg("Scoring candidates")
//
// Components that own a zerolog.Logger decorate it with WithContext so that
// their component field and the request fields appear together.
//
// NewSlogLogger adapts the global logger for slog-only libraries such as
// sutureslog, which reports supervisor events.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event is dropped.
package logging
