// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/mattailor/internal/logging"
)

func TestPerformanceMonitor_Window(t *testing.T) {
	pm := NewPerformanceMonitor(3, 0, logging.NewTestLogger(&bytes.Buffer{}))
	for i := range 5 {
		pm.Record(RequestSample{Route: "/r", Method: http.MethodGet, DurationMS: int64(i)})
	}

	recent := pm.Recent(10)
	if len(recent) != 3 {
		t.Fatalf("len(Recent) = %d, want 3", len(recent))
	}
	for i, want := range []int64{2, 3, 4} {
		if recent[i].DurationMS != want {
			t.Errorf("recent[%d] = %d, want %d", i, recent[i].DurationMS, want)
		}
	}
	if got := pm.Recent(-1); len(got) != 0 {
		t.Errorf("Recent(-1) = %v", got)
	}
}

func TestPerformanceMonitor_Stats(t *testing.T) {
	pm := NewPerformanceMonitor(100, time.Second, logging.NewTestLogger(&bytes.Buffer{}))
	for _, d := range []int64{10, 20, 30, 40, 50} {
		pm.Record(RequestSample{Route: "/api/v1/recommend", Method: http.MethodPost, DurationMS: d, StatusCode: 200})
	}
	pm.Record(RequestSample{Route: "/api/v1/health", Method: http.MethodGet, DurationMS: 1, StatusCode: 503})

	stats := pm.Stats()
	if len(stats) != 2 {
		t.Fatalf("len(Stats) = %d, want 2", len(stats))
	}
	rec := stats[0]
	if rec.Endpoint != "POST /api/v1/recommend" || rec.RequestCount != 5 {
		t.Errorf("busiest = %+v", rec)
	}
	if rec.AvgDuration != 30 || rec.P50Duration != 30 || rec.MinDuration != 10 || rec.MaxDuration != 50 {
		t.Errorf("durations = %+v", rec)
	}
	if rec.P95Duration != 40 {
		t.Errorf("P95 = %d, want 40 (nearest rank below)", rec.P95Duration)
	}
	if stats[1].ErrorCount != 1 {
		t.Errorf("health errors = %d, want 1", stats[1].ErrorCount)
	}
}

func TestPerformanceMonitor_Middleware(t *testing.T) {
	var logs bytes.Buffer
	pm := NewPerformanceMonitor(10, time.Nanosecond, logging.NewTestLogger(&logs))

	r := chi.NewRouter()
	r.Use(pm.Middleware)
	r.Get("/api/v1/materials/{id}", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Millisecond)
		w.WriteHeader(http.StatusAccepted)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/materials/al_6061_t6", nil))

	recent := pm.Recent(1)
	if len(recent) != 1 {
		t.Fatal("request not recorded")
	}
	if recent[0].Route != "/api/v1/materials/{id}" || recent[0].StatusCode != http.StatusAccepted {
		t.Errorf("sample = %+v", recent[0])
	}
	if !strings.Contains(logs.String(), "Slow request detected") {
		t.Errorf("expected slow request warning, logs = %s", logs.String())
	}
}

func TestPercentile(t *testing.T) {
	if percentile(nil, 0.5) != 0 {
		t.Error("empty slice should give 0")
	}
	sorted := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	tests := []struct {
		p    float64
		want int64
	}{
		{0, 1},
		{0.5, 5},
		{0.99, 9},
		{1, 10},
	}
	for _, tt := range tests {
		if got := percentile(sorted, tt.p); got != tt.want {
			t.Errorf("percentile(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}
