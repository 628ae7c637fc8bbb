// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

// Command matctl runs the MatTailor engine from the terminal: ask for
// recommendations, compare materials, simulate compositions, or start the
// HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/mattailor/internal/app"
	"github.com/tomtom215/mattailor/internal/config"
	"github.com/tomtom215/mattailor/internal/logging"
)

var version = "dev"

type rootOptions struct {
	configPath string
	jsonOut    bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "matctl",
		Short: "Material recommendation and trade-off analysis",
		Long: `matctl queries the MatTailor engine directly, without a running server.

Requirements are passed as key=value pairs using the API field names:

  matctl recommend --require max_density=3 --require min_tensile_strength=250
  matctl tradeoff aluminum_6061 titanium_grade5 --criteria density,cost_per_kg`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: config.yaml or $CONFIG_PATH)")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print raw JSON instead of tables")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")

	root.AddCommand(
		recommendCmd(opts),
		parseCmd(opts),
		searchCmd(opts),
		suggestCmd(opts),
		materialCmd(opts),
		alternativesCmd(opts),
		suppliersCmd(opts),
		categoriesCmd(opts),
		tradeoffCmd(opts),
		simulateCmd(opts),
		planCmd(opts),
		serveCmd(opts),
	)
	return root
}

// loadConfig reads configuration the same way the server does.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		if err := os.Setenv(config.ConfigPathEnvVar, o.configPath); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", config.ConfigPathEnvVar, err)
		}
	}
	return config.Load()
}

// engine builds the components for a one-shot command. Events are off:
// nothing consumes them outside the server.
func (o *rootOptions) engine(cmd *cobra.Command) (*app.Components, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	cfg.Events.Enabled = false

	logging.Init(logging.Config{
		Level:  o.logLevel,
		Format: "console",
		Output: cmd.ErrOrStderr(),
	})
	return app.Build(cmd.Context(), cfg, logging.Logger())
}

// withEngine runs fn against freshly built components and releases them.
func (o *rootOptions) withEngine(cmd *cobra.Command, fn func(*app.Components) error) error {
	c, err := o.engine(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()
	return fn(c)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}
