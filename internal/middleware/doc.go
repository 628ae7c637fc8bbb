// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - RequestID: accepts or generates X-Request-ID and seeds the logging context
  - PrometheusMetrics: request count, latency histogram and in-flight gauge,
    labelled by chi route pattern
  - PerformanceMonitor: sliding window of recent requests with per-endpoint
    percentiles, served at /api/v1/performance

All middleware uses the standard func(http.Handler) http.Handler shape and is
mounted with chi's Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(monitor.Middleware)

PrometheusMetrics and PerformanceMonitor read the route pattern after the
handler returns, so they must run inside a chi router.
*/
package middleware
