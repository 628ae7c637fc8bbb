// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

/*
Package supervisor runs the long-lived parts of the server under a suture v4
supervision tree.

# Layout

	mattailor (root)
	├── cache-layer   cache expiry sweeper
	├── event-layer   domain event router and its consumers
	└── api-layer     HTTP server

Each layer is its own supervisor, so failures in one layer back off and
restart without touching the others. Supervisor events are logged through
sutureslog into the zerolog-backed slog logger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddCacheService(services.NewCacheSweeperService(memCache, cfg.Cache.SweepInterval, logger))
	tree.AddEventService(services.NewEventRouterService(eventRouter))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
