package cache

import (
	"context"
	"fmt"
	"time"

	"marketmood/internal/adapters/config"
	redisadapter "marketmood/internal/adapters/redis"
	"marketmood/internal/metrics"
	"marketmood/pkg/errors"
	"marketmood/pkg/logger"
)

// Cache is a read-through serving cache for API responses.
// Misses and Redis failures are equivalent: the caller recomputes.
type Cache struct {
	client  *redisadapter.Client
	ttl     time.Duration
	enabled bool
	log     *logger.Logger
}

// New creates a serving cache. A nil client disables caching.
func New(client *redisadapter.Client, cfg config.CacheConfig, log *logger.Logger) *Cache {
	return &Cache{
		client:  client,
		ttl:     cfg.TTL,
		enabled: cfg.Enabled && client != nil,
		log:     log,
	}
}

// ForecastKey builds the cache key for a single-category forecast
func ForecastKey(category string, daysAhead int, model string) string {
	return fmt.Sprintf("forecast:%s:%d:%s", category, daysAhead, model)
}

// TrendsKey builds the cache key for a trend detection run
func TrendsKey(windowHours int) string {
	return fmt.Sprintf("trends:%d", windowHours)
}

// Get loads a cached value into dest and reports whether it was a hit
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if !c.enabled {
		return false
	}

	err := c.client.Get(ctx, key, dest)
	if err == nil {
		metrics.CacheRequests.WithLabelValues("hit").Inc()
		return true
	}

	if errors.Is(err, errors.ErrNotFound) {
		metrics.CacheRequests.WithLabelValues("miss").Inc()
	} else {
		metrics.CacheRequests.WithLabelValues("error").Inc()
		c.log.Warnw("Cache read failed", "key", key, "error", err)
	}
	return false
}

// Set stores a value under key with the configured TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if !c.enabled {
		return
	}

	if err := c.client.Set(ctx, key, value, c.ttl); err != nil {
		metrics.CacheRequests.WithLabelValues("error").Inc()
		c.log.Warnw("Cache write failed", "key", key, "error", err)
	}
}
