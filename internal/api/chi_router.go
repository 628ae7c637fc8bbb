// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/mattailor/internal/middleware"
)

// Router binds the handlers to URL paths.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router. A nil middleware config uses the defaults.
func NewRouter(handler *Handler, mwCfg *ChiMiddlewareConfig) *Router {
	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
	}
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwCfg),
	}
}

// SetupChi builds the HTTP handler with every route.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// Global stack, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(chimiddleware.Compress(5, "application/json"))
	r.Use(middleware.PrometheusMetrics)
	r.Use(h.perfMon.Middleware)
	r.Use(APISecurityHeaders())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondNotFound(w, r, "Route not found", map[string]interface{}{"path": sanitizeLogValue(r.URL.Path)})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed,
			"Method not allowed", map[string]interface{}{"method": r.Method}, nil)
	})

	// Unversioned aliases for probes and scrapers.
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Handle("/metrics", promhttp.Handler())

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(router.chiMiddleware.MaxBodySize())

			r.Get("/", h.Root)
			r.Get("/categories", h.Categories)
			r.Get("/stats", h.Stats)
			r.Get("/performance", h.Performance)
			r.Get("/events", h.Events)
			r.Delete("/cache", h.ClearCache)

			r.Post("/recommend", h.Recommend)
			r.Post("/parse", h.Parse)

			r.Route("/materials", func(r chi.Router) {
				r.Get("/", h.ListMaterials)
				r.Get("/search", h.SearchMaterials)
				r.Get("/suggest", h.SuggestMaterials)
				r.Get("/{id}", h.GetMaterial)
				r.Post("/{id}/alternatives", h.Alternatives)
				r.Get("/{id}/suppliers", h.Suppliers)
			})

			r.Post("/tradeoff", h.Tradeoff)
			r.Post("/tradeoff/sensitivity", h.Sensitivity)

			r.Post("/simulate", h.SimulateCustom)
			r.Post("/simulate/{id}", h.SimulateMaterial)

			r.Route("/plan", func(r chi.Router) {
				r.Post("/", h.Plan)
				r.Get("/status", h.PlanStatus)
				r.Get("/{session}", h.PlanSession)
				r.Post("/{session}/feedback", h.PlanFeedback)
			})
		})
	})

	return r
}
