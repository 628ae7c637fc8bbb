// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the Recommender.
type Config struct {
	// Workers bounds how many candidates are scored concurrently.
	Workers int `json:"workers"`

	// Timeout bounds the scoring phase of a single Recommend call.
	// Exceeding it fails the request rather than returning a partial ranking.
	Timeout time.Duration `json:"timeout"`

	// MinScore drops candidates whose overall score is below it.
	MinScore float64 `json:"min_score"`

	// SimilarityThreshold and MaxAlternatives shape FindAlternatives.
	SimilarityThreshold float64 `json:"similarity_threshold"`
	MaxAlternatives     int     `json:"max_alternatives"`

	// SearchLimit is used by Search when the caller passes no limit.
	SearchLimit int `json:"search_limit"`

	// EnableNLP runs the query enhancer when a natural language query is present.
	EnableNLP bool `json:"enable_nlp"`

	// EnableSimulation attaches simulated properties to final materials when
	// the query asks for it and a simulator is wired.
	EnableSimulation bool `json:"enable_simulation"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Workers:             4,
		Timeout:             60 * time.Second,
		MinScore:            0.1,
		SimilarityThreshold: 0.7,
		MaxAlternatives:     10,
		SearchLimit:         20,
		EnableNLP:           true,
		EnableSimulation:    true,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MinScore < 0 || c.MinScore > 1 {
		return fmt.Errorf("min_score must be in [0, 1], got %f", c.MinScore)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in [0, 1], got %f", c.SimilarityThreshold)
	}
	if c.MaxAlternatives < 1 {
		return fmt.Errorf("max_alternatives must be positive, got %d", c.MaxAlternatives)
	}
	if c.SearchLimit < 1 {
		return fmt.Errorf("search_limit must be positive, got %d", c.SearchLimit)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}
