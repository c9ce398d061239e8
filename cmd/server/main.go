// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/collabscout/internal/api"
	"github.com/tomtom215/collabscout/internal/auth"
	"github.com/tomtom215/collabscout/internal/config"
	"github.com/tomtom215/collabscout/internal/logging"
	"github.com/tomtom215/collabscout/internal/supervisor"
	"github.com/tomtom215/collabscout/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := run(cfg); err != nil {
		logging.Error().Err(err).Msg("Server stopped with error")
		os.Exit(1)
	}
	logging.Info().Msg("Server stopped")
}

// run wires the provider, engine, HTTP surface and supervisor tree, then
// blocks until SIGINT or SIGTERM.
func run(cfg *config.Config) error {
	logger := logging.With().Str("environment", cfg.Server.Environment).Logger()
	startup := logging.WithComponent("server")

	startup.Info().
		Str("source", cfg.Provider.Source).
		Str("environment", cfg.Server.Environment).
		Int("port", cfg.Server.Port).
		Msg("Starting collabscout")

	providers, err := initProvider(cfg, time.Now(), logger)
	if err != nil {
		return err
	}

	engine, err := initRecommend(cfg, providers.Provider, logger)
	if err != nil {
		return err
	}

	sessions, err := auth.NewSessionManager(&cfg.Security)
	switch {
	case errors.Is(err, auth.ErrSessionDisabled):
		startup.Info().Msg("Session resolution disabled (SESSION_SECRET not set): fid query parameter required")
	case err != nil:
		return fmt.Errorf("create session manager: %w", err)
	}

	probe := services.NewProbeService(providers.Provider, services.ProbeConfig{
		Provider: providers.Name,
		FID:      cfg.Provider.ProbeFID,
		Interval: cfg.Provider.ProbeInterval,
		Timeout:  cfg.Neynar.Timeout,
	}, logger)

	handler := api.NewHandler(engine, providers.Provider, api.HandlerOptions{
		ProviderName:   providers.Name,
		RequestTimeout: cfg.Server.Timeout,
		Readiness:      probe,
	})
	router := api.NewRouter(
		handler,
		api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)),
		sessions,
		cfg.Security.SessionCookie,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Leave headroom over the per-request engine timeout for encoding.
		WriteTimeout: cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logging.Debug().
		Dur("request_timeout", cfg.Server.Timeout).
		Dur("write_timeout", server.WriteTimeout).
		Bool("rate_limit_disabled", cfg.Security.RateLimitDisabled).
		Msg("HTTP server configured")

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	tree.AddUpstreamService(probe)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startup.Info().Str("addr", server.Addr).Msg("HTTP server listening")

	err = tree.Serve(ctx)
	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		startup.Warn().Int("count", len(report)).Msg("Services did not stop within the shutdown timeout")
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
