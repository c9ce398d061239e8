// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

/*
Package supervisor runs the long-lived services of collabscout under suture v4.

	collabscout
	├── upstream-layer
	│   └── ProbeService (graph provider readiness)
	└── api-layer
	    └── HTTPServerService

Crashed services restart with suture's backoff; each layer counts failures
independently. Supervisor events are logged through sutureslog, which takes a
*slog.Logger; main wires it to zerolog with logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddUpstreamService(probe)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)
*/
package supervisor
