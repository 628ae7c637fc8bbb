// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/mattailor/internal/logging"
	"github.com/tomtom215/mattailor/internal/metrics"
	"github.com/tomtom215/mattailor/internal/models"
)

// DefaultKeyPrefix namespaces result keys in a shared Redis.
const DefaultKeyPrefix = "mattailor:rec:"

const redisBreakerName = "redis-cache"

// redisClient is the subset of *redis.Client used by RedisCache.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// RedisCache is a ResultCache shared between server replicas. Every call
// goes through a circuit breaker; while it is open the cache behaves as
// permanently empty instead of failing requests.
type RedisCache struct {
	client redisClient
	prefix string
	ttl    time.Duration
	cb     *gobreaker.CircuitBreaker[[]byte]
	logger zerolog.Logger
	now    func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCache connects to the Redis at url (redis://...) and verifies it
// with a PING.
func NewRedisCache(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newRedisCache(client, DefaultKeyPrefix, ttl), nil
}

func newRedisCache(client redisClient, prefix string, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	logger := logging.WithComponent("redis-cache")

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        redisBreakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state change")
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	})

	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		cb:     cb,
		logger: logger,
		now:    time.Now,
	}
}

// redisEntry is the stored payload. ExpiresAt travels with the result so
// readers can honour the original lifetime.
type redisEntry struct {
	ExpiresAt time.Time                    `json:"expires_at"`
	Result    *models.RecommendationResult `json:"result"`
}

// Get implements ResultCache.
func (c *RedisCache) Get(ctx context.Context, key string) (*models.RecommendationResult, bool) {
	r, _, ok := c.GetWithExpiry(ctx, key)
	return r, ok
}

// GetWithExpiry implements ExpiringCache. Entries past their stored expiry
// are misses even if Redis still holds them.
func (c *RedisCache) GetWithExpiry(ctx context.Context, key string) (*models.RecommendationResult, time.Time, bool) {
	raw, err := c.execute(func() ([]byte, error) {
		return c.client.Get(ctx, c.prefix+key).Bytes()
	})
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("key", key).Msg("Redis get failed")
		}
		c.miss()
		return nil, time.Time{}, false
	}

	var entry redisEntry
	if err := json.Unmarshal(raw, &entry); err != nil || entry.Result == nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
		c.miss()
		return nil, time.Time{}, false
	}
	if !c.now().Before(entry.ExpiresAt) {
		c.miss()
		return nil, time.Time{}, false
	}
	c.hits.Add(1)
	metrics.RecordCacheHit(metrics.CacheTypeRedis)
	return entry.Result, entry.ExpiresAt, true
}

// Set implements ResultCache. Failures are logged and otherwise ignored.
func (c *RedisCache) Set(ctx context.Context, key string, result *models.RecommendationResult) {
	if result == nil {
		return
	}
	payload, err := json.Marshal(redisEntry{ExpiresAt: c.now().Add(c.ttl), Result: result})
	if err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("Encode cache entry")
		return
	}
	_, err = c.execute(func() ([]byte, error) {
		return nil, c.client.Set(ctx, c.prefix+key, payload, c.ttl).Err()
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Redis set failed")
	}
}

// Clear deletes every key under the cache prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("scan %s*: %w", c.prefix, err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("delete cache keys: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Stats implements ResultCache. Size and evictions are owned by Redis and
// reported as zero.
func (c *RedisCache) Stats() Stats {
	hits, misses := c.hits.Load(), c.misses.Load()
	s := Stats{Hits: hits, Misses: misses}
	if total := hits + misses; total > 0 {
		s.HitRate = float64(hits) / float64(total)
	}
	return s
}

// Ping checks connectivity, bypassing the breaker.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) miss() {
	c.misses.Add(1)
	metrics.RecordCacheMiss(metrics.CacheTypeRedis)
}

func (c *RedisCache) execute(fn func() ([]byte, error)) ([]byte, error) {
	out, err := c.cb.Execute(fn)
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordCircuitBreakerRequest(redisBreakerName, metrics.ResultRejected)
	case err != nil && !errors.Is(err, redis.Nil):
		metrics.RecordCircuitBreakerRequest(redisBreakerName, metrics.ResultFailure)
	default:
		metrics.RecordCircuitBreakerRequest(redisBreakerName, metrics.ResultSuccess)
	}
	return out, err
}

var _ ExpiringCache = (*RedisCache)(nil)
