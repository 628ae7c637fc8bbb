// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/mattailor/internal/app"
	"github.com/tomtom215/mattailor/internal/config"
	"github.com/tomtom215/mattailor/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "mattailor",
	})

	logging.Info().
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting MatTailor AI backend")

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS is configured with a wildcard origin (CORS_ORIGINS=*); set explicit origins outside development")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	components, err := app.Build(ctx, cfg, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize engine")
	}

	serveErr := components.Serve(ctx)
	if err := components.Close(); err != nil {
		logging.Error().Err(err).Msg("Error releasing resources")
	}
	if serveErr != nil {
		logging.Error().Err(serveErr).Msg("Server exited with error")
		os.Exit(1)
	}
	logging.Info().Msg("Application stopped gracefully")
}
