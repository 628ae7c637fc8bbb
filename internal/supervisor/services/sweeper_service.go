// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mattailor/internal/cache"
)

// DefaultSweepInterval is used when the configured interval is not positive.
const DefaultSweepInterval = 5 * time.Minute

// CacheSweeperService periodically drops expired recommendation cache
// entries so memory is reclaimed without waiting for a lookup.
type CacheSweeperService struct {
	sweeper  cache.Sweeper
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheSweeperService creates the sweeper.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheSweeperService(sweeper cache.Sweeper, interval time.Duration, logger zerolog.Logger) *CacheSweeperService {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &CacheSweeperService{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger.With().Str("service", "cache-sweeper").Logger(),
		name:     "cache-sweeper",
	}
}

// Serve implements suture.Service.
func (s *CacheSweeperService) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.interval).Msg("Cache sweeper starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep runs one cleanup pass and returns the number of removed entries.
func (s *CacheSweeperService) Sweep() int {
	start := time.Now()
	n := s.sweeper.CleanupExpired()
	if n > 0 {
		s.logger.Debug().
			Int("removed", n).
			Dur("duration", time.Since(start)).
			Msg("Swept expired cache entries")
	}
	return n
}

// String names the service in supervisor logs.
func (s *CacheSweeperService) String() string {
	return s.name
}
