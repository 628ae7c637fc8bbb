// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package api

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/mattailor/internal/config"
)

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t, nil)

	status, env := e.do(t, http.MethodGet, "/api/v1/nope", "")
	wantError(t, status, env, http.StatusNotFound, ErrCodeNotFound)

	status, env = e.do(t, http.MethodGet, "/api/v1/recommend", "")
	wantError(t, status, env, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed)
}

func TestRouter_RequestIDAndSecurityHeaders(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t, nil)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, e.server.URL+"/api/v1/categories", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := e.server.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID = %q, want echo of req-123", got)
	}
	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"request_id":"req-123"`) {
		t.Errorf("body %s should carry the request id", body)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t, nil)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodOptions, e.server.URL+"/api/v1/recommend", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := e.server.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t, func(c *config.Config) {
		c.Security.RateLimitDisabled = false
		c.Security.RateLimitPerMinute = 1
	})

	status, _ := e.do(t, http.MethodGet, "/api/v1/categories", "")
	if status != http.StatusOK {
		t.Fatalf("first request status = %d", status)
	}
	status, env := e.do(t, http.MethodGet, "/api/v1/categories", "")
	wantError(t, status, env, http.StatusTooManyRequests, ErrCodeRateLimited)

	// Health is outside the limited group.
	if status, _ := e.do(t, http.MethodGet, "/api/v1/health", ""); status != http.StatusOK {
		t.Errorf("health status = %d, want 200 while limited", status)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t, nil)
	e.do(t, http.MethodGet, "/api/v1/categories", "")

	resp, err := e.server.Client().Get(e.server.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "mattailor_api_requests_total") {
		t.Errorf("metrics status %d, body lacks request counter", resp.StatusCode)
	}
}

func TestRouter_Performance(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t, nil)
	e.do(t, http.MethodGet, "/api/v1/materials/steel_316l", "")

	_, env := e.do(t, http.MethodGet, "/api/v1/performance", "")
	var perf PerformanceResponse
	decodeData(t, env, &perf)
	found := false
	for _, s := range perf.Endpoints {
		if s.Endpoint == "GET /api/v1/materials/{id}" {
			found = true
		}
	}
	if !found {
		t.Errorf("endpoints = %+v, want the material route pattern", perf.Endpoints)
	}
}
