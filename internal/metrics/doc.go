// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
are exposed at /metrics in Prometheus text format:

	curl http://localhost:8000/metrics

# Available Metrics

API Metrics:
  - mattailor_api_requests_total: labels method, endpoint, status_code
  - mattailor_api_request_duration_seconds: labels method, endpoint
  - mattailor_api_active_requests
  - mattailor_api_rate_limit_hits_total: label endpoint

Engine Metrics:
  - mattailor_recommendations_total: label outcome (computed, cached, error)
  - mattailor_recommendation_duration_seconds
  - mattailor_recommendation_candidates
  - mattailor_scoring_failures_total
  - mattailor_tradeoff_analyses_total: labels method, result
  - mattailor_nlp_queries_total: label result
  - mattailor_simulation_requests_total: label result
  - mattailor_planner_sessions_total

Cache Metrics:
  - mattailor_cache_hits_total, mattailor_cache_misses_total: label cache_type
  - mattailor_cache_entries, mattailor_cache_evictions_total: label cache_type

Circuit Breaker Metrics:
  - mattailor_circuit_breaker_state: 0=closed, 1=half-open, 2=open
  - mattailor_circuit_breaker_requests_total: labels name, result
  - mattailor_circuit_breaker_state_transitions_total

# Usage

Components call the Record* helpers rather than touching collectors directly:

	start := time.Now()
	result, err := engine.Recommend(ctx, query)
	metrics.RecordRecommendation(time.Since(start), candidates, false, err)

# Thread Safety

All helpers are safe for concurrent use.
*/
package metrics
