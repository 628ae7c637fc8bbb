// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values shared across collectors.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"

	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mattailor_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mattailor_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mattailor_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mattailor_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mattailor_recommendations_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // "computed", "cached", "error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mattailor_recommendation_duration_seconds",
			Help:    "Time spent computing uncached recommendations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
		},
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mattailor_recommendation_candidates",
			Help:    "Number of catalog candidates scored per recommendation",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
	)

	ScoringFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mattailor_scoring_failures_total",
			Help: "Total number of materials that fell back to the degraded score",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mattailor_cache_hits_total",
			Help: "Total number of result cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mattailor_cache_misses_total",
			Help: "Total number of result cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mattailor_cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mattailor_cache_evictions_total",
			Help: "Total number of cache evictions (capacity or TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// Trade-off Metrics
	TradeoffAnalyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mattailor_tradeoff_analyses_total",
			Help: "Total number of trade-off analyses",
		},
		[]string{"method", "result"},
	)

	TradeoffDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mattailor_tradeoff_duration_seconds",
			Help:    "Duration of trade-off analyses in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Query Enhancement Metrics
	NLPQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mattailor_nlp_queries_total",
			Help: "Total number of natural-language queries processed",
		},
		[]string{"result"}, // "enhanced", "unchanged", "error"
	)

	// Simulation Metrics
	SimulationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mattailor_simulation_requests_total",
			Help: "Total number of property simulation requests",
		},
		[]string{"result"},
	)

	SimulatedProperties = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mattailor_simulated_properties_total",
			Help: "Total number of property values filled by simulation",
		},
	)

	// Planner Metrics
	PlannerSessions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mattailor_planner_sessions_total",
			Help: "Total number of optimisation plans created",
		},
	)

	PlannerFeedback = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mattailor_planner_feedback_total",
			Help: "Total number of feedback submissions",
		},
		[]string{"result"},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mattailor_events_published_total",
			Help: "Total number of domain events published",
		},
		[]string{"topic", "result"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mattailor_events_consumed_total",
			Help: "Total number of domain events consumed",
		},
		[]string{"topic"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mattailor_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mattailor_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mattailor_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Catalog Metrics
	CatalogMaterials = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mattailor_catalog_materials",
			Help: "Number of materials in the loaded catalog",
		},
	)

	CatalogSuppliers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mattailor_catalog_suppliers",
			Help: "Number of suppliers in the loaded catalog",
		},
	)

	// Application Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mattailor_app_info",
			Help: "Application information",
		},
		[]string{"version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mattailor_app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the rate limiter
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecommendation records one recommendation call. Cached answers do
// not observe duration or candidate count.
func RecordRecommendation(duration time.Duration, candidates int, cached bool, err error) {
	switch {
	case err != nil:
		RecommendationsTotal.WithLabelValues("error").Inc()
	case cached:
		RecommendationsTotal.WithLabelValues("cached").Inc()
	default:
		RecommendationsTotal.WithLabelValues("computed").Inc()
		RecommendationDuration.Observe(duration.Seconds())
		RecommendationCandidates.Observe(float64(candidates))
	}
}

// RecordScoringFailure counts a material scored with the degraded fallback
func RecordScoringFailure() {
	ScoringFailures.Inc()
}

// RecordCacheHit records a result cache hit
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a result cache miss
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// UpdateCacheSize sets the current entry count for a cache
func UpdateCacheSize(cacheType string, entries int) {
	CacheSize.WithLabelValues(cacheType).Set(float64(entries))
}

// RecordCacheEvictions adds n evictions for a cache
func RecordCacheEvictions(cacheType string, n int) {
	if n > 0 {
		CacheEvictions.WithLabelValues(cacheType).Add(float64(n))
	}
}

// RecordTradeoffAnalysis records one trade-off analysis
func RecordTradeoffAnalysis(method string, duration time.Duration, err error) {
	TradeoffDuration.Observe(duration.Seconds())
	TradeoffAnalyses.WithLabelValues(method, resultLabel(err)).Inc()
}

// RecordNLPQuery records the outcome of query enhancement
func RecordNLPQuery(result string) {
	NLPQueries.WithLabelValues(result).Inc()
}

// RecordSimulation records a simulation request and how many properties it filled
func RecordSimulation(filled int, err error) {
	SimulationRequests.WithLabelValues(classifySimulationError(err)).Inc()
	if filled > 0 {
		SimulatedProperties.Add(float64(filled))
	}
}

// RecordPlannerSession records creation of an optimisation plan
func RecordPlannerSession() {
	PlannerSessions.Inc()
}

// RecordPlannerFeedback records a feedback submission
func RecordPlannerFeedback(err error) {
	PlannerFeedback.WithLabelValues(resultLabel(err)).Inc()
}

// RecordEventPublished records a domain event publish attempt
func RecordEventPublished(topic string, err error) {
	EventsPublished.WithLabelValues(topic, resultLabel(err)).Inc()
}

// RecordEventConsumed records a consumed domain event
func RecordEventConsumed(topic string) {
	EventsConsumed.WithLabelValues(topic).Inc()
}

// RecordCircuitBreakerRequest records a request outcome through a breaker
func RecordCircuitBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordCircuitBreakerTransition records a breaker state change. States are
// "closed", "half-open" or "open".
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// UpdateCatalogSize sets the catalog gauges
func UpdateCatalogSize(materials, suppliers int) {
	CatalogMaterials.Set(float64(materials))
	CatalogSuppliers.Set(float64(suppliers))
}

// SetAppInfo publishes the running version
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version).Set(1)
}

// UpdateUptime sets the uptime gauge from the process start time
func UpdateUptime(start time.Time) {
	AppUptime.Set(time.Since(start).Seconds())
}

func resultLabel(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}

func classifySimulationError(err error) string {
	if err == nil {
		return ResultSuccess
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "circuit breaker"):
		return ResultRejected
	case strings.Contains(msg, "rate"):
		return "throttled"
	default:
		return ResultFailure
	}
}
