// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/mattailor/config.yaml",
	"/etc/mattailor/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvFile is loaded into the process environment before anything else.
// Variables already set in the environment win.
var DotEnvFile = ".env"

// Default returns the built-in defaults without reading files or the
// environment.
func Default() *Config {
	return defaultConfig()
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "MatTailor AI",
			Version:     "1.0.0",
			Environment: "development",
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			RequestTimeout:  60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxRequestSize:  10 << 20, // 10MB
		},
		Security: SecurityConfig{
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://localhost:5173",
				"https://mattailor-ai.netlify.app",
				"https://mattailor-ai.vercel.app",
			},
			RateLimitPerMinute: 60,
			RateLimitDisabled:  false,
		},
		Catalog: CatalogConfig{SeedPath: ""},
		Cache: CacheConfig{
			TTL:           time.Hour,
			Capacity:      10000,
			SweepInterval: 5 * time.Minute,
			RedisURL:      "",
		},
		Recommend: RecommendConfig{
			DefaultMaxResults:   20,
			SimilarityThreshold: 0.7,
			WorkerThreads:       4,
			MinScore:            0.1,
			MaxAlternatives:     10,
		},
		Simulation: SimulationConfig{
			Neighbours:        3,
			MinOverlap:        0.5,
			RequestsPerSecond: 100,
			Burst:             200,
			BreakerFailures:   5,
			BreakerTimeout:    30 * time.Second,
		},
		Planner: PlannerConfig{MaxSessions: 1000},
		Events: EventsConfig{
			Enabled:      true,
			BufferSize:   256,
			CloseTimeout: 10 * time.Second,
		},
		Features: FeaturesConfig{
			EnableMLPrediction:  true,
			EnableRLPlanning:    true,
			EnableNLPProcessing: true,
			EnableCaching:       true,
			EnableSimulation:    true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds the configuration from defaults, .env, an optional YAML file
// and environment variables, then validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", DotEnvFile, err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Env values for these keys are comma-separated lists.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
// Variables not listed are ignored.
var envMappings = map[string]string{
	"app_name":    "app.name",
	"app_version": "app.version",
	"environment": "app.environment",

	"host":                  "server.host",
	"http_host":             "server.host",
	"port":                  "server.port",
	"http_port":             "server.port",
	"request_timeout":       "server.request_timeout",
	"shutdown_timeout":      "server.shutdown_timeout",
	"max_request_size":      "server.max_request_size",
	"cors_origins":          "security.cors_origins",
	"rate_limit_per_minute": "security.rate_limit_per_minute",
	"disable_rate_limit":    "security.rate_limit_disabled",

	"catalog_seed_path": "catalog.seed_path",

	"cache_ttl":            "cache.ttl",
	"cache_capacity":       "cache.capacity",
	"cache_sweep_interval": "cache.sweep_interval",
	"redis_url":            "cache.redis_url",

	"default_max_results":  "recommend.default_max_results",
	"similarity_threshold": "recommend.similarity_threshold",
	"worker_threads":       "recommend.worker_threads",
	"min_score":            "recommend.min_score",
	"max_alternatives":     "recommend.max_alternatives",

	"simulation_neighbours":       "simulation.neighbours",
	"simulation_min_overlap":      "simulation.min_overlap",
	"simulation_rate_limit":       "simulation.requests_per_second",
	"simulation_burst":            "simulation.burst",
	"simulation_breaker_failures": "simulation.breaker_failures",
	"simulation_breaker_timeout":  "simulation.breaker_timeout",

	"planner_max_sessions": "planner.max_sessions",

	"events_enabled":       "events.enabled",
	"events_buffer_size":   "events.buffer_size",
	"events_close_timeout": "events.close_timeout",

	"enable_ml_prediction":  "features.enable_ml_prediction",
	"enable_rl_planning":    "features.enable_rl_planning",
	"enable_nlp_processing": "features.enable_nlp_processing",
	"enable_caching":        "features.enable_caching",
	"enable_simulation":     "features.enable_simulation",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
