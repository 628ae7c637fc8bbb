// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package simulation

import (
	"fmt"
	"time"
)

// Config controls the neighbour search and the request guards.
type Config struct {
	// Neighbours is the most reference materials blended into one estimate.
	Neighbours int `koanf:"neighbours"`

	// MinOverlap is the smallest composition overlap, in (0,1], for a
	// reference material to count as a neighbour.
	MinOverlap float64 `koanf:"min_overlap"`

	// RequestsPerSecond and Burst configure the token-bucket limiter.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	// BreakerFailures consecutive failures open the circuit breaker for
	// BreakerTimeout.
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Neighbours:        3,
		MinOverlap:        0.5,
		RequestsPerSecond: 100,
		Burst:             200,
		BreakerFailures:   5,
		BreakerTimeout:    30 * time.Second,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Neighbours < 1 {
		return fmt.Errorf("neighbours must be positive, got %d", c.Neighbours)
	}
	if c.MinOverlap <= 0 || c.MinOverlap > 1 {
		return fmt.Errorf("min_overlap must be in (0,1], got %f", c.MinOverlap)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive, got %f", c.RequestsPerSecond)
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be positive, got %d", c.Burst)
	}
	if c.BreakerFailures < 1 {
		return fmt.Errorf("breaker_failures must be positive, got %d", c.BreakerFailures)
	}
	if c.BreakerTimeout <= 0 {
		return fmt.Errorf("breaker_timeout must be positive, got %v", c.BreakerTimeout)
	}
	return nil
}
