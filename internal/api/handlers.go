// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package api

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mattailor/internal/catalog"
	"github.com/tomtom215/mattailor/internal/config"
	"github.com/tomtom215/mattailor/internal/events"
	"github.com/tomtom215/mattailor/internal/middleware"
	"github.com/tomtom215/mattailor/internal/nlp"
	"github.com/tomtom215/mattailor/internal/planner"
	"github.com/tomtom215/mattailor/internal/recommend"
	"github.com/tomtom215/mattailor/internal/simulation"
	"github.com/tomtom215/mattailor/internal/tradeoff"
)

// Dependencies are the services behind the HTTP handlers. Catalog,
// Recommender and Analyzer are required; the rest may be nil when the
// matching feature is disabled.
type Dependencies struct {
	Catalog     *catalog.Catalog
	Recommender *recommend.Recommender
	Analyzer    *tradeoff.Analyzer
	NLP         *nlp.Processor
	Simulator   *simulation.Simulator
	Planner     *planner.Planner

	// Publisher defaults to events.NopPublisher.
	Publisher events.Publisher

	// Audit backs the events endpoint; nil answers FEATURE_DISABLED.
	Audit *events.AuditLog

	// Performance defaults to a monitor keeping the last 1000 requests.
	Performance *middleware.PerformanceMonitor
}

// Handler holds the HTTP handlers for every endpoint.
type Handler struct {
	cfg         *config.Config
	catalog     *catalog.Catalog
	recommender *recommend.Recommender
	analyzer    *tradeoff.Analyzer
	nlp         *nlp.Processor
	simulator   *simulation.Simulator
	planner     *planner.Planner
	publisher   events.Publisher
	audit       *events.AuditLog
	perfMon     *middleware.PerformanceMonitor
	startTime   time.Time
	logger      zerolog.Logger
}

// NewHandler wires the handlers.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(cfg *config.Config, deps Dependencies, logger zerolog.Logger) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if deps.Catalog == nil || deps.Recommender == nil || deps.Analyzer == nil {
		return nil, errors.New("catalog, recommender and analyzer are required")
	}

	logger = logger.With().Str("component", "api").Logger()
	if deps.Publisher == nil {
		deps.Publisher = events.NopPublisher{}
	}
	if deps.Performance == nil {
		deps.Performance = middleware.NewPerformanceMonitor(1000, middleware.DefaultSlowThreshold, logger)
	}

	return &Handler{
		cfg:         cfg,
		catalog:     deps.Catalog,
		recommender: deps.Recommender,
		analyzer:    deps.Analyzer,
		nlp:         deps.NLP,
		simulator:   deps.Simulator,
		planner:     deps.Planner,
		publisher:   deps.Publisher,
		audit:       deps.Audit,
		perfMon:     deps.Performance,
		startTime:   time.Now(),
		logger:      logger,
	}, nil
}

// publish sends an event without letting a failure reach the client. The
// bus logs and counts failures itself.
func (h *Handler) publish(ctx context.Context, topic string, payload any) {
	if err := h.publisher.Publish(ctx, topic, payload); err != nil {
		h.logger.Debug().Err(err).Str("topic", topic).Msg("Event not published")
	}
}
