// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

/*
Package cache memoizes recommendation results.

# Overview

Results are keyed by a fingerprint of the full query and stored whole; there
is no per-field invalidation. Three implementations satisfy ResultCache:

  - MemoryCache: bounded LRU with TTL-on-read, swept periodically by the
    supervisor through the Sweeper interface
  - RedisCache: shared across replicas, guarded by a circuit breaker so
    that an unavailable Redis degrades to cache misses
  - Tiered: MemoryCache in front of RedisCache

PrefixIndex is a small trie the catalog uses for name autocomplete.

# Usage

	local := cache.NewMemoryCache(cfg.Cache.Capacity, cfg.Cache.TTL)
	var results cache.ResultCache = local
	if cfg.Cache.RedisURL != "" {
	    shared, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL)
	    if err == nil {
	        results = cache.NewTiered(local, shared)
	    }
	}

# Thread Safety

All implementations are safe for concurrent use. Concurrent identical
misses may both compute and both write; the last write wins.
*/
package cache
