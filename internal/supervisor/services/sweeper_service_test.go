// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package services

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/mattailor/internal/cache"
	"github.com/tomtom215/mattailor/internal/logging"
	"github.com/tomtom215/mattailor/internal/models"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (c *countingSweeper) CleanupExpired() int {
	c.calls.Add(1)
	return 1
}

func TestCacheSweeperService_Ticks(t *testing.T) {
	sw := &countingSweeper{}
	svc := NewCacheSweeperService(sw, 10*time.Millisecond, logging.NewTestLogger(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for sw.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
	if sw.calls.Load() < 2 {
		t.Errorf("CleanupExpired called %d times, want at least 2", sw.calls.Load())
	}
}

func TestCacheSweeperService_SweepsMemoryCache(t *testing.T) {
	mc := cache.NewMemoryCache(10, 20*time.Millisecond)
	mc.Set(context.Background(), "q1", &models.RecommendationResult{})
	mc.Set(context.Background(), "q2", &models.RecommendationResult{})
	time.Sleep(40 * time.Millisecond)

	svc := NewCacheSweeperService(mc, 0, logging.NewTestLogger(io.Discard))
	if svc.interval != DefaultSweepInterval {
		t.Errorf("interval = %v, want default", svc.interval)
	}
	if n := svc.Sweep(); n != 2 {
		t.Errorf("Sweep() = %d, want 2", n)
	}
	if mc.Stats().Size != 0 {
		t.Errorf("size after sweep = %d", mc.Stats().Size)
	}
	if svc.String() != "cache-sweeper" {
		t.Errorf("String() = %q", svc.String())
	}
}
