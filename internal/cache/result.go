// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package cache

import (
	"context"
	"time"

	"github.com/tomtom215/mattailor/internal/metrics"
	"github.com/tomtom215/mattailor/internal/models"
)

// ResultCache memoizes whole recommendation results by query fingerprint.
// Entries are atomic: a hit returns the stored result unchanged.
type ResultCache interface {
	Get(ctx context.Context, key string) (*models.RecommendationResult, bool)
	Set(ctx context.Context, key string, result *models.RecommendationResult)
	Clear(ctx context.Context) error
	Stats() Stats
}

// ExpiringCache is a ResultCache that also reports when an entry expires.
type ExpiringCache interface {
	ResultCache
	GetWithExpiry(ctx context.Context, key string) (*models.RecommendationResult, time.Time, bool)
}

// Sweeper is implemented by caches that hold expired entries until swept.
type Sweeper interface {
	CleanupExpired() int
}

// MemoryCache is the in-process ResultCache backed by a bounded LRU.
type MemoryCache struct {
	lru *LRU[*models.RecommendationResult]
}

// NewMemoryCache creates a MemoryCache.
func NewMemoryCache(capacity int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: NewLRU[*models.RecommendationResult](capacity, ttl)}
}

// Get implements ResultCache.
func (m *MemoryCache) Get(_ context.Context, key string) (*models.RecommendationResult, bool) {
	r, ok := m.lru.Get(key)
	if ok {
		metrics.RecordCacheHit(metrics.CacheTypeMemory)
	} else {
		metrics.RecordCacheMiss(metrics.CacheTypeMemory)
	}
	return r, ok
}

// Set implements ResultCache.
func (m *MemoryCache) Set(_ context.Context, key string, result *models.RecommendationResult) {
	if result == nil {
		return
	}
	evicted := m.lru.Add(key, result)
	metrics.RecordCacheEvictions(metrics.CacheTypeMemory, evicted)
	metrics.UpdateCacheSize(metrics.CacheTypeMemory, m.lru.Len())
}

// SetUntil stores result until expiresAt, capped at the cache TTL.
func (m *MemoryCache) SetUntil(_ context.Context, key string, result *models.RecommendationResult, expiresAt time.Time) {
	if result == nil {
		return
	}
	evicted := m.lru.AddUntil(key, result, expiresAt)
	metrics.RecordCacheEvictions(metrics.CacheTypeMemory, evicted)
	metrics.UpdateCacheSize(metrics.CacheTypeMemory, m.lru.Len())
}

// Clear implements ResultCache.
func (m *MemoryCache) Clear(_ context.Context) error {
	m.lru.Clear()
	metrics.UpdateCacheSize(metrics.CacheTypeMemory, 0)
	return nil
}

// Stats implements ResultCache.
func (m *MemoryCache) Stats() Stats {
	return m.lru.Stats()
}

// CleanupExpired implements Sweeper.
func (m *MemoryCache) CleanupExpired() int {
	n := m.lru.CleanupExpired()
	metrics.RecordCacheEvictions(metrics.CacheTypeMemory, n)
	metrics.UpdateCacheSize(metrics.CacheTypeMemory, m.lru.Len())
	return n
}

// Tiered reads through a fast local cache in front of a shared one. Hits
// in an expiry-reporting shared tier are copied into the local tier for the
// rest of their lifetime; other shared tiers are read on every local miss.
type Tiered struct {
	local  *MemoryCache
	shared ResultCache
}

// NewTiered layers local over shared. A nil shared tier degrades to local only.
func NewTiered(local *MemoryCache, shared ResultCache) *Tiered {
	return &Tiered{local: local, shared: shared}
}

// Get implements ResultCache.
func (t *Tiered) Get(ctx context.Context, key string) (*models.RecommendationResult, bool) {
	if r, ok := t.local.Get(ctx, key); ok {
		return r, true
	}
	if t.shared == nil {
		return nil, false
	}
	exp, ok := t.shared.(ExpiringCache)
	if !ok {
		return t.shared.Get(ctx, key)
	}
	r, expiresAt, ok := exp.GetWithExpiry(ctx, key)
	if ok {
		t.local.SetUntil(ctx, key, r, expiresAt)
	}
	return r, ok
}

// Set implements ResultCache.
func (t *Tiered) Set(ctx context.Context, key string, result *models.RecommendationResult) {
	t.local.Set(ctx, key, result)
	if t.shared != nil {
		t.shared.Set(ctx, key, result)
	}
}

// Clear implements ResultCache.
func (t *Tiered) Clear(ctx context.Context) error {
	_ = t.local.Clear(ctx)
	if t.shared != nil {
		return t.shared.Clear(ctx)
	}
	return nil
}

// Stats reports the local tier.
func (t *Tiered) Stats() Stats {
	return t.local.Stats()
}

// CleanupExpired implements Sweeper for the local tier. The shared tier
// expires entries server-side.
func (t *Tiered) CleanupExpired() int {
	return t.local.CleanupExpired()
}

var (
	_ ResultCache = (*MemoryCache)(nil)
	_ ResultCache = (*Tiered)(nil)
	_ Sweeper     = (*MemoryCache)(nil)
	_ Sweeper     = (*Tiered)(nil)
)
