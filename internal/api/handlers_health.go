// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/mattailor/internal/cache"
	"github.com/tomtom215/mattailor/internal/catalog"
	"github.com/tomtom215/mattailor/internal/middleware"
	"github.com/tomtom215/mattailor/internal/models"
	"github.com/tomtom215/mattailor/internal/recommend"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "mattailor-ai-backend"

// Health reports liveness and catalog size.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	stats := h.catalog.Stats()
	status := "healthy"
	if stats.Materials == 0 {
		status = "degraded"
	}
	respondSuccess(w, r, models.HealthStatus{
		Status:    status,
		Service:   ServiceName,
		Version:   h.cfg.App.Version,
		Materials: stats.Materials,
		Suppliers: stats.Suppliers,
		Uptime:    time.Since(h.startTime).Seconds(),
		Timestamp: time.Now().UTC(),
	})
}

// RootInfo is returned by GET /.
type RootInfo struct {
	Message     string `json:"message"`
	Version     string `json:"version"`
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

// Root identifies the service.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, RootInfo{
		Message:     "MatTailor AI API",
		Version:     h.cfg.App.Version,
		Status:      "running",
		Environment: h.cfg.App.Environment,
	})
}

// Categories lists every material category with its catalog count.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	byCategory := h.catalog.Stats().ByCategory
	out := make([]CategoryInfo, len(models.AllCategories))
	for i, c := range models.AllCategories {
		out[i] = CategoryInfo{Name: c, Count: byCategory[c]}
	}
	respondSuccess(w, r, out)
}

// PerformanceResponse is returned by GET /api/v1/performance.
type PerformanceResponse struct {
	Endpoints []middleware.EndpointStats `json:"endpoints"`
	Recent    []middleware.RequestSample `json:"recent"`
}

// Performance reports per-route latency percentiles.
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, PerformanceResponse{
		Endpoints: h.perfMon.Stats(),
		Recent:    h.perfMon.Recent(getIntParam(r, "recent", 20)),
	})
}

// Events returns the newest audited domain events.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		respondFeatureDisabled(w, r, "events")
		return
	}
	limit := getIntParam(r, "limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}
	respondSuccess(w, r, h.audit.Recent(limit))
}

// StatsResponse is returned by GET /api/v1/stats.
type StatsResponse struct {
	Recommender recommend.Metrics `json:"recommender"`
	Cache       cache.Stats       `json:"cache"`
	Catalog     catalog.Stats     `json:"catalog"`
	Events      map[string]int64  `json:"events,omitempty"`
}

// Stats reports engine counters.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{
		Recommender: h.recommender.Metrics(),
		Cache:       h.recommender.CacheStats(),
		Catalog:     h.catalog.Stats(),
	}
	if h.audit != nil {
		resp.Events = h.audit.Counts()
	}
	respondSuccess(w, r, resp)
}

// ClearCache empties the recommendation cache.
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.recommender.ClearCache(r.Context()); err != nil {
		respondInternal(w, r, "Failed to clear cache", err)
		return
	}
	h.logger.Info().Msg("Recommendation cache cleared")
	respondSuccess(w, r, map[string]bool{"cleared": true})
}
