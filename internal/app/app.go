// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

// Package app wires the engine components from configuration. Both the
// HTTP server and the matctl CLI build on it.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mattailor/internal/api"
	"github.com/tomtom215/mattailor/internal/cache"
	"github.com/tomtom215/mattailor/internal/catalog"
	"github.com/tomtom215/mattailor/internal/config"
	"github.com/tomtom215/mattailor/internal/events"
	"github.com/tomtom215/mattailor/internal/nlp"
	"github.com/tomtom215/mattailor/internal/planner"
	"github.com/tomtom215/mattailor/internal/recommend"
	"github.com/tomtom215/mattailor/internal/scoring"
	"github.com/tomtom215/mattailor/internal/simulation"
	"github.com/tomtom215/mattailor/internal/tradeoff"
)

// Components holds every engine component built from one Config.
// Optional components are nil when their feature is disabled.
type Components struct {
	Config      *config.Config
	Catalog     *catalog.Catalog
	Recommender *recommend.Recommender
	Analyzer    *tradeoff.Analyzer
	NLP         *nlp.Processor
	Simulator   *simulation.Simulator
	Planner     *planner.Planner

	// Cache is nil when caching is disabled. Sweeper expires its
	// in-memory tier.
	Cache   cache.ResultCache
	Sweeper cache.Sweeper

	// Bus, Router and Audit are nil when events are disabled.
	Bus    *events.Bus
	Router *events.Router
	Audit  *events.AuditLog

	logger  zerolog.Logger
	closers []io.Closer
}

// auditCapacity bounds the in-memory event audit trail.
const auditCapacity = 1000

// Build creates the components. The context bounds start-up I/O such as
// the Redis ping.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Build(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Components, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	c := &Components{Config: cfg, logger: logger}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	c.Catalog = cat
	stats := cat.Stats()
	logger.Info().
		Int("materials", stats.Materials).
		Int("suppliers", stats.Suppliers).
		Str("seed", seedName(cfg)).
		Msg("Material catalog loaded")

	if cfg.Features.EnableCaching {
		c.buildCache(ctx)
	} else {
		logger.Info().Msg("Result caching disabled (ENABLE_CACHING=false)")
	}

	c.Recommender, err = recommend.New(cfg.RecommenderConfig(), cat, scoring.NewScorer(), c.Cache, logger)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to create recommender: %w", err)
	}

	if cfg.Features.EnableNLPProcessing {
		c.NLP = nlp.NewProcessor(logger)
		c.Recommender.SetEnhancer(c.NLP)
	}

	if cfg.Features.EnableMLPrediction || cfg.Features.EnableSimulation {
		c.Simulator, err = simulation.New(cfg.SimulatorConfig(), cat, logger)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to create simulator: %w", err)
		}
		if cfg.Features.EnableSimulation {
			c.Recommender.SetSimulator(c.Simulator)
		}
	}

	c.Analyzer = tradeoff.NewAnalyzer(cat, logger)
	if cfg.Features.EnableRLPlanning {
		c.Planner = planner.New(cfg.Planner.MaxSessions, logger)
	}

	if cfg.Events.Enabled {
		if err := c.buildEvents(); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	logger.Info().
		Bool("caching", c.Cache != nil).
		Bool("nlp", c.NLP != nil).
		Bool("simulation", c.Simulator != nil).
		Bool("planning", c.Planner != nil).
		Bool("events", c.Bus != nil).
		Msg("Engine components initialized")
	return c, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.SeedPath != "" {
		cat, err := catalog.LoadFile(cfg.Catalog.SeedPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog %s: %w", cfg.Catalog.SeedPath, err)
		}
		return cat, nil
	}
	cat, err := catalog.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded catalog: %w", err)
	}
	return cat, nil
}

func seedName(cfg *config.Config) string {
	if cfg.Catalog.SeedPath == "" {
		return "embedded"
	}
	return cfg.Catalog.SeedPath
}

// buildCache creates the memory tier and, when REDIS_URL is set, a shared
// Redis tier behind it. An unreachable Redis degrades to memory only.
func (c *Components) buildCache(ctx context.Context) {
	cfg := c.Config.Cache
	local := cache.NewMemoryCache(cfg.Capacity, cfg.TTL)
	c.Cache, c.Sweeper = local, local

	if cfg.RedisURL == "" {
		return
	}
	shared, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.TTL)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Redis cache unavailable, using in-memory cache only")
		return
	}
	c.closers = append(c.closers, shared)
	tiered := cache.NewTiered(local, shared)
	c.Cache, c.Sweeper = tiered, tiered
	c.logger.Info().Msg("Redis cache tier enabled")
}

func (c *Components) buildEvents() error {
	bus, err := events.NewBus(events.Config{
		BufferSize:   c.Config.Events.BufferSize,
		CloseTimeout: c.Config.Events.CloseTimeout,
	}, c.logger)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	router, err := events.NewRouter(bus)
	if err != nil {
		_ = bus.Close()
		return fmt.Errorf("failed to create event router: %w", err)
	}
	c.Bus, c.Router = bus, router
	c.Audit = events.NewAuditLog(auditCapacity, c.logger)
	router.AddAudit(c.Audit)
	c.closers = append(c.closers, router, bus)
	return nil
}

// Publisher returns the event bus, or a no-op publisher when events are
// disabled.
func (c *Components) Publisher() events.Publisher {
	if c.Bus == nil {
		return events.NopPublisher{}
	}
	return c.Bus
}

// Handler builds the HTTP handler over the components.
func (c *Components) Handler() (*api.Handler, error) {
	return api.NewHandler(c.Config, api.Dependencies{
		Catalog:     c.Catalog,
		Recommender: c.Recommender,
		Analyzer:    c.Analyzer,
		NLP:         c.NLP,
		Simulator:   c.Simulator,
		Planner:     c.Planner,
		Publisher:   c.Publisher(),
		Audit:       c.Audit,
	}, c.logger)
}

// Close releases the event bus and the Redis connection. It is safe to
// call more than once.
func (c *Components) Close() error {
	var errs []error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
