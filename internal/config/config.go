// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/mattailor/internal/recommend"
	"github.com/tomtom215/mattailor/internal/simulation"
)

// Config holds all application configuration.
//
// Loading order (see Load):
//  1. Defaults from defaultConfig
//  2. A .env file in the working directory, if present, copied into the environment
//  3. Optional YAML file (CONFIG_PATH or config.yaml)
//  4. Environment variables
//
// Config is not modified after Load returns and is safe for concurrent reads.
type Config struct {
	App        AppConfig        `koanf:"app"`
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Cache      CacheConfig      `koanf:"cache"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Simulation SimulationConfig `koanf:"simulation"`
	Planner    PlannerConfig    `koanf:"planner"`
	Events     EventsConfig     `koanf:"events"`
	Features   FeaturesConfig   `koanf:"features"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// AppConfig identifies the running service.
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // development, staging, production
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxRequestSize  int64         `koanf:"max_request_size"` // bytes
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS and HTTP rate limiting.
type SecurityConfig struct {
	CORSOrigins        []string `koanf:"cors_origins"`
	RateLimitPerMinute int      `koanf:"rate_limit_per_minute"`
	RateLimitDisabled  bool     `koanf:"rate_limit_disabled"`
}

// CatalogConfig selects the material catalog source. An empty SeedPath
// uses the embedded seed.
type CatalogConfig struct {
	SeedPath string `koanf:"seed_path"`
}

// CacheConfig holds recommendation result cache settings. When RedisURL is
// set, a Redis tier sits behind the in-memory LRU.
type CacheConfig struct {
	TTL           time.Duration `koanf:"ttl"`
	Capacity      int           `koanf:"capacity"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
	RedisURL      string        `koanf:"redis_url"`
}

// RecommendConfig tunes the recommendation engine.
type RecommendConfig struct {
	DefaultMaxResults   int     `koanf:"default_max_results"`
	SimilarityThreshold float64 `koanf:"similarity_threshold"`
	WorkerThreads       int     `koanf:"worker_threads"`
	MinScore            float64 `koanf:"min_score"`
	MaxAlternatives     int     `koanf:"max_alternatives"`
}

// SimulationConfig tunes the property simulator.
type SimulationConfig struct {
	Neighbours        int           `koanf:"neighbours"`
	MinOverlap        float64       `koanf:"min_overlap"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	BreakerFailures   uint32        `koanf:"breaker_failures"`
	BreakerTimeout    time.Duration `koanf:"breaker_timeout"`
}

// PlannerConfig bounds the planner session history.
type PlannerConfig struct {
	MaxSessions int `koanf:"max_sessions"`
}

// EventsConfig controls the in-process event bus.
type EventsConfig struct {
	Enabled      bool          `koanf:"enabled"`
	BufferSize   int64         `koanf:"buffer_size"`
	CloseTimeout time.Duration `koanf:"close_timeout"`
}

// FeaturesConfig toggles optional subsystems. A disabled feature answers
// 503 FEATURE_DISABLED on its HTTP routes.
type FeaturesConfig struct {
	EnableMLPrediction  bool `koanf:"enable_ml_prediction"`
	EnableRLPlanning    bool `koanf:"enable_rl_planning"`
	EnableNLPProcessing bool `koanf:"enable_nlp_processing"`
	EnableCaching       bool `koanf:"enable_caching"`
	EnableSimulation    bool `koanf:"enable_simulation"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller adds file:line to every entry.
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// RecommenderConfig maps the settings onto recommend.Config.
func (c *Config) RecommenderConfig() *recommend.Config {
	rc := recommend.DefaultConfig()
	rc.Workers = c.Recommend.WorkerThreads
	rc.Timeout = c.Server.RequestTimeout
	rc.MinScore = c.Recommend.MinScore
	rc.SimilarityThreshold = c.Recommend.SimilarityThreshold
	rc.MaxAlternatives = c.Recommend.MaxAlternatives
	rc.SearchLimit = c.Recommend.DefaultMaxResults
	rc.EnableNLP = c.Features.EnableNLPProcessing
	rc.EnableSimulation = c.Features.EnableSimulation
	return rc
}

// SimulatorConfig maps the settings onto simulation.Config.
func (c *Config) SimulatorConfig() simulation.Config {
	return simulation.Config{
		Neighbours:        c.Simulation.Neighbours,
		MinOverlap:        c.Simulation.MinOverlap,
		RequestsPerSecond: c.Simulation.RequestsPerSecond,
		Burst:             c.Simulation.Burst,
		BreakerFailures:   c.Simulation.BreakerFailures,
		BreakerTimeout:    c.Simulation.BreakerTimeout,
	}
}
