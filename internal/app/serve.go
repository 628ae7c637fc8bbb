// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/mattailor/internal/api"
	"github.com/tomtom215/mattailor/internal/logging"
	"github.com/tomtom215/mattailor/internal/supervisor"
	"github.com/tomtom215/mattailor/internal/supervisor/services"
)

// NewHTTPServer builds the HTTP server for the components.
func (c *Components) NewHTTPServer() (*http.Server, error) {
	handler, err := c.Handler()
	if err != nil {
		return nil, err
	}
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFrom(c.Config))

	srv := c.Config.Server
	return &http.Server{
		Addr:              srv.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       srv.RequestTimeout,
		WriteTimeout:      srv.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}, nil
}

// Serve runs the HTTP server, the cache sweeper and the event router under
// a supervisor tree until ctx is canceled.
func (c *Components) Serve(ctx context.Context) error {
	server, err := c.NewHTTPServer()
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = c.Config.Server.ShutdownTimeout
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)
	if err != nil {
		return fmt.Errorf("failed to create supervisor tree: %w", err)
	}

	if c.Sweeper != nil {
		tree.AddCacheService(services.NewCacheSweeperService(c.Sweeper, c.Config.Cache.SweepInterval, c.logger))
	}
	if c.Router != nil {
		tree.AddEventService(services.NewEventRouterService(c.Router))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, c.Config.Server.ShutdownTimeout))

	c.logger.Info().
		Str("addr", server.Addr).
		Str("environment", c.Config.App.Environment).
		Msg("Starting supervisor tree")

	err = tree.Serve(ctx)

	if unstopped, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			c.logger.Warn().Str("service", svc.Name).Msg("Service did not stop within timeout")
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("supervisor tree stopped: %w", err)
	}
	c.logger.Info().Msg("Server stopped")
	return nil
}
