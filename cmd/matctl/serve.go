// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package main

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/mattailor/internal/app"
	"github.com/tomtom215/mattailor/internal/logging"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var (
		host string
		port int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logging.Init(logging.Config{
				Level:     cfg.Logging.Level,
				Format:    cfg.Logging.Format,
				Caller:    cfg.Logging.Caller,
				Timestamp: true,
				Output:    cmd.ErrOrStderr(),
			})

			c, err := app.Build(cmd.Context(), cfg, logging.Logger())
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			return c.Serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides HOST)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides PORT)")
	return cmd
}
