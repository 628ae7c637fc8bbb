// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

/*
Package api provides the HTTP surface of MatTailor using the Chi router.

Every response uses the models.APIResponse envelope:

	{"status": "success", "data": {...}, "metadata": {"timestamp": "...", "request_id": "..."}}
	{"status": "error", "error": {"code": "NOT_FOUND", "message": "...", "details": {...}}}

# Routes

Unversioned aliases:

	GET  /          service banner
	GET  /health    liveness
	GET  /metrics   Prometheus exposition

Under /api/v1:

	GET    /health                          liveness, not rate limited
	GET    /metrics                         Prometheus exposition
	GET    /categories                      categories with catalog counts
	GET    /stats                           recommender, cache, catalog and event counters
	GET    /performance                     per-route latency percentiles
	GET    /events                          newest audited domain events
	DELETE /cache                           clear the recommendation cache
	POST   /recommend                       ranked recommendation for a MaterialQuery
	POST   /parse                           NLP extraction only
	GET    /materials                       paged listing; category, offset, limit, field__op filters
	GET    /materials/search                q, category, limit
	GET    /materials/suggest               name autocomplete; q, limit
	GET    /materials/{id}                  one material
	POST   /materials/{id}/alternatives     similar materials
	GET    /materials/{id}/suppliers        region, max_minimum_order
	POST   /tradeoff                        multi-criteria comparison
	POST   /tradeoff/sensitivity            weight sensitivity of the comparison
	POST   /simulate                        properties of a custom composition
	POST   /simulate/{id}                   predicted properties of a catalog material
	POST   /plan                            selection strategy from objectives
	GET    /plan/status                     planner counters
	GET    /plan/{session}                  stored plan and its feedback
	POST   /plan/{session}/feedback         attach feedback to a plan

# Errors

	400 INVALID_REQUEST      body is not valid JSON or has unknown fields
	400 VALIDATION_ERROR     fields out of range or unknown enum values
	404 NOT_FOUND            unknown material, planning session or route
	405 METHOD_NOT_ALLOWED
	413 REQUEST_TOO_LARGE    body exceeds MAX_REQUEST_SIZE
	422 UNPROCESSABLE        material cannot be simulated
	429 RATE_LIMIT_EXCEEDED
	503 FEATURE_DISABLED     the feature flag for the route is off
	503 SERVICE_UNAVAILABLE  simulation circuit breaker open
	500 INTERNAL_ERROR

# Middleware

Global, in order: request ID, real IP, panic recovery, CORS, gzip, Prometheus
metrics, the performance monitor and security headers. Everything under
/api/v1 except health and metrics also passes the per-IP rate limiter and
the body size cap.

Domain events (recommendation, trade-off, simulation, plan, feedback) are
published after a successful response body is built; publish failures are
logged and never reach the client.
*/
package api
