// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package middleware

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultSlowThreshold marks a request as slow in the log.
const DefaultSlowThreshold = time.Second

// RequestSample is one observed request.
type RequestSample struct {
	Route      string    `json:"route"`
	Method     string    `json:"method"`
	DurationMS int64     `json:"duration_ms"`
	StatusCode int       `json:"status_code"`
	Timestamp  time.Time `json:"timestamp"`
}

// EndpointStats aggregates the samples of one method and route.
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int64   `json:"request_count"`
	ErrorCount   int64   `json:"error_count"`
	AvgDuration  float64 `json:"avg_duration_ms"`
	P50Duration  int64   `json:"p50_duration_ms"`
	P95Duration  int64   `json:"p95_duration_ms"`
	P99Duration  int64   `json:"p99_duration_ms"`
	MinDuration  int64   `json:"min_duration_ms"`
	MaxDuration  int64   `json:"max_duration_ms"`
}

// PerformanceMonitor keeps a sliding window of recent requests and serves
// per-endpoint latency percentiles for the performance endpoint.
type PerformanceMonitor struct {
	mu            sync.RWMutex
	samples       []RequestSample
	maxSamples    int
	slowThreshold time.Duration
	logger        zerolog.Logger
}

// NewPerformanceMonitor keeps at most maxSamples requests.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPerformanceMonitor(maxSamples int, slowThreshold time.Duration, logger zerolog.Logger) *PerformanceMonitor {
	if maxSamples < 1 {
		maxSamples = 1
	}
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowThreshold
	}
	return &PerformanceMonitor{
		samples:       make([]RequestSample, 0, maxSamples),
		maxSamples:    maxSamples,
		slowThreshold: slowThreshold,
		logger:        logger.With().Str("component", "performance").Logger(),
	}
}

// Record adds a sample, dropping the oldest once the window is full.
func (pm *PerformanceMonitor) Record(sample RequestSample) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if len(pm.samples) == pm.maxSamples {
		copy(pm.samples, pm.samples[1:])
		pm.samples = pm.samples[:len(pm.samples)-1]
	}
	pm.samples = append(pm.samples, sample)
}

// Stats returns per-endpoint statistics, busiest endpoint first.
func (pm *PerformanceMonitor) Stats() []EndpointStats {
	pm.mu.RLock()
	durations := make(map[string][]int64)
	errorCounts := make(map[string]int64)
	for _, s := range pm.samples {
		key := s.Method + " " + s.Route
		durations[key] = append(durations[key], s.DurationMS)
		if s.StatusCode >= http.StatusInternalServerError {
			errorCounts[key]++
		}
	}
	pm.mu.RUnlock()

	stats := make([]EndpointStats, 0, len(durations))
	for endpoint, ds := range durations {
		slices.Sort(ds)
		var sum int64
		for _, d := range ds {
			sum += d
		}
		stats = append(stats, EndpointStats{
			Endpoint:     endpoint,
			RequestCount: int64(len(ds)),
			ErrorCount:   errorCounts[endpoint],
			AvgDuration:  float64(sum) / float64(len(ds)),
			P50Duration:  percentile(ds, 0.50),
			P95Duration:  percentile(ds, 0.95),
			P99Duration:  percentile(ds, 0.99),
			MinDuration:  ds[0],
			MaxDuration:  ds[len(ds)-1],
		})
	}

	slices.SortFunc(stats, func(a, b EndpointStats) int {
		if a.RequestCount != b.RequestCount {
			if a.RequestCount > b.RequestCount {
				return -1
			}
			return 1
		}
		if a.Endpoint < b.Endpoint {
			return -1
		}
		if a.Endpoint > b.Endpoint {
			return 1
		}
		return 0
	})
	return stats
}

// Recent returns up to n of the newest samples, oldest first.
func (pm *PerformanceMonitor) Recent(n int) []RequestSample {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	n = min(max(n, 0), len(pm.samples))
	recent := make([]RequestSample, n)
	copy(recent, pm.samples[len(pm.samples)-n:])
	return recent
}

// Middleware records every request and warns about slow ones.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		elapsed := time.Since(start)
		route := routeLabel(r)
		pm.Record(RequestSample{
			Route:      route,
			Method:     r.Method,
			DurationMS: elapsed.Milliseconds(),
			StatusCode: wrapper.statusCode,
			Timestamp:  start,
		})

		if elapsed > pm.slowThreshold {
			pm.logger.Warn().
				Str("method", r.Method).
				Str("route", route).
				Dur("duration", elapsed).
				Dur("threshold", pm.slowThreshold).
				Msg("Slow request detected")
		}
	})
}

// percentile reads the nearest-rank value from a sorted slice.
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}
