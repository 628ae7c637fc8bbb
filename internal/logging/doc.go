// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

/*
Package logging provides centralized zerolog-based logging for MatTailor.

A single global logger is configured once from main and shared by every
component. Libraries that bring their own logging interface are bridged
onto it: suture via an slog.Handler and watermill via a LoggerAdapter.

# Quick Start

	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})

	logging.Info().Int("materials", n).Msg("Catalog loaded")
	logging.Err(err).Msg("Recommendation failed")

	// Request-scoped, with request_id and correlation_id attached
	logging.Ctx(ctx).Debug().Str("material_id", id).Msg("Material served")

# Components

Long-lived components hold a child logger tagged with their name:

	logger := logging.WithComponent("recommend")

# Configuration

Config.Level accepts trace, debug, info, warn, error, fatal and disabled.
Config.Format accepts json (default) or console. Both are populated from
LOG_LEVEL and LOG_FORMAT by the config package.

# Best Practices

Always terminate log chains with .Msg() or .Send():

	logging.Info().Str("key", "value").Msg("message")  // Correct
	logging.Info().Str("key", "value")                 // WRONG - log not emitted
*/
package logging
