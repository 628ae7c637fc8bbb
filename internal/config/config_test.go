// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

// isolate points every file source at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldPaths, oldDotEnv := DefaultConfigPaths, DotEnvFile
	DefaultConfigPaths = []string{filepath.Join(dir, "config.yaml")}
	DotEnvFile = filepath.Join(dir, ".env")
	t.Cleanup(func() {
		DefaultConfigPaths, DotEnvFile = oldPaths, oldDotEnv
	})
	t.Setenv(ConfigPathEnvVar, "")

	// Clear mapped variables inherited from the host; Setenv restores them.
	for key := range envMappings {
		upper := strings.ToUpper(key)
		if v, ok := os.LookupEnv(upper); ok {
			t.Setenv(upper, v)
			if err := os.Unsetenv(upper); err != nil {
				t.Fatal(err)
			}
		}
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.Name != "MatTailor AI" || cfg.App.Version != "1.0.0" {
		t.Errorf("App = %+v", cfg.App)
	}
	if cfg.Server.Addr() != "0.0.0.0:8000" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
	if cfg.Server.RequestTimeout != 60*time.Second || cfg.Server.MaxRequestSize != 10<<20 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if len(cfg.Security.CORSOrigins) != 4 || cfg.Security.RateLimitPerMinute != 60 {
		t.Errorf("Security = %+v", cfg.Security)
	}
	if cfg.Cache.TTL != time.Hour || cfg.Cache.Capacity != 10000 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Recommend.DefaultMaxResults != 20 || cfg.Recommend.SimilarityThreshold != 0.7 || cfg.Recommend.WorkerThreads != 4 {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	f := cfg.Features
	if !f.EnableMLPrediction || !f.EnableRLPlanning || !f.EnableNLPProcessing || !f.EnableCaching || !f.EnableSimulation {
		t.Errorf("Features = %+v, want all enabled", f)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("ENABLE_SIMULATION", "false")
	t.Setenv("SIMULATION_BREAKER_FAILURES", "7")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
	if !slices.Equal(cfg.Security.CORSOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Errorf("TTL = %v", cfg.Cache.TTL)
	}
	if cfg.Features.EnableSimulation {
		t.Error("EnableSimulation should be false")
	}
	if cfg.Simulation.BreakerFailures != 7 {
		t.Errorf("BreakerFailures = %d", cfg.Simulation.BreakerFailures)
	}
	if cfg.Cache.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("RedisURL = %q", cfg.Cache.RedisURL)
	}
	if rc := cfg.RecommenderConfig(); rc.EnableSimulation {
		t.Error("RecommenderConfig should carry the simulation flag")
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	yaml := "server:\n  port: 7000\nrecommend:\n  worker_threads: 8\nlogging:\n  format: console\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("WORKER_THREADS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Port = %d, want 7000 from file", cfg.Server.Port)
	}
	if cfg.Recommend.WorkerThreads != 2 {
		t.Errorf("WorkerThreads = %d, want env value 2", cfg.Recommend.WorkerThreads)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Format = %q", cfg.Logging.Format)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MAX_ALTERNATIVES=3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv writes into the process environment; restore it afterwards.
	t.Setenv("MAX_ALTERNATIVES", "")
	if err := os.Unsetenv("MAX_ALTERNATIVES"); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Recommend.MaxAlternatives != 3 {
		t.Errorf("MaxAlternatives = %d, want 3 from .env", cfg.Recommend.MaxAlternatives)
	}
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("HTTP_PORT", "70000")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "HTTP_PORT") {
		t.Errorf("Load() error = %v, want HTTP_PORT validation failure", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad environment", func(c *Config) { c.App.Environment = "qa" }, "ENVIRONMENT"},
		{"zero timeout", func(c *Config) { c.Server.RequestTimeout = 0 }, "REQUEST_TIMEOUT"},
		{"wildcard cors in production", func(c *Config) {
			c.App.Environment = "production"
			c.Security.CORSOrigins = []string{"*"}
		}, "CORS_ORIGINS"},
		{"rate limit out of range", func(c *Config) { c.Security.RateLimitPerMinute = 0 }, "RATE_LIMIT_PER_MINUTE"},
		{"rate limit ignored when disabled", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitPerMinute = 0
		}, ""},
		{"zero cache capacity", func(c *Config) { c.Cache.Capacity = 0 }, "CACHE_CAPACITY"},
		{"bad redis url", func(c *Config) { c.Cache.RedisURL = "http://localhost" }, "REDIS_URL"},
		{"max results too large", func(c *Config) { c.Recommend.DefaultMaxResults = 500 }, "DEFAULT_MAX_RESULTS"},
		{"zero workers", func(c *Config) { c.Recommend.WorkerThreads = 0 }, "recommend"},
		{"bad simulation overlap", func(c *Config) { c.Simulation.MinOverlap = 2 }, "simulation"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestConfigMappings(t *testing.T) {
	cfg := defaultConfig()
	cfg.Recommend.WorkerThreads = 6
	cfg.Server.RequestTimeout = 5 * time.Second
	rc := cfg.RecommenderConfig()
	if rc.Workers != 6 || rc.Timeout != 5*time.Second || rc.SearchLimit != 20 {
		t.Errorf("RecommenderConfig() = %+v", rc)
	}
	sc := cfg.SimulatorConfig()
	if sc.Neighbours != 3 || sc.BreakerTimeout != 30*time.Second {
		t.Errorf("SimulatorConfig() = %+v", sc)
	}
	if envTransformFunc("UNRELATED_VAR") != "" {
		t.Error("unmapped variables must be ignored")
	}
	if envTransformFunc("Http_Port") != "server.port" {
		t.Error("env mapping should be case-insensitive")
	}
}
