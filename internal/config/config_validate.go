// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks ranges and enums.
func (c *Config) Validate() error {
	if err := c.validateApp(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	sc := c.SimulatorConfig()
	if err := sc.Validate(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	if c.Events.Enabled && c.Events.BufferSize < 0 {
		return fmt.Errorf("EVENTS_BUFFER_SIZE must not be negative")
	}
	return c.validateLogging()
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

func (c *Config) validateApp() error {
	if !validEnvironments[c.App.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
)

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.Server.MaxRequestSize <= 0 {
		return fmt.Errorf("MAX_REQUEST_SIZE must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.IsProduction() && c.hasWildcardCORS() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production; " +
			"set specific origins, e.g. CORS_ORIGINS=https://app.example.com")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if r := c.Security.RateLimitPerMinute; r < minRateLimitRequests || r > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS reports a wildcard origin outside production.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS()
}

func (c *Config) validateCache() error {
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.Cache.Capacity < 1 {
		return fmt.Errorf("CACHE_CAPACITY must be at least 1")
	}
	if c.Cache.SweepInterval <= 0 {
		return fmt.Errorf("CACHE_SWEEP_INTERVAL must be positive")
	}
	if c.Cache.RedisURL != "" {
		u, err := url.Parse(c.Cache.RedisURL)
		if err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
			return fmt.Errorf("REDIS_URL must be a redis:// or rediss:// URL")
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.DefaultMaxResults < 1 || r.DefaultMaxResults > 100 {
		return fmt.Errorf("DEFAULT_MAX_RESULTS must be between 1 and 100")
	}
	if r.SimilarityThreshold < 0 || r.SimilarityThreshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be between 0 and 1")
	}
	if r.MinScore < 0 || r.MinScore > 1 {
		return fmt.Errorf("MIN_SCORE must be between 0 and 1")
	}
	rc := c.RecommenderConfig()
	if err := rc.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
