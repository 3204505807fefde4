// ABOUTME: Rate limiting middleware for API endpoints
// ABOUTME: Per-client windowed counting backed by memory or a shared Redis store

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"yt-data-api/core/interfaces"
)

// CounterStore counts requests per client inside a fixed window.
type CounterStore interface {
	// Incr increments the counter for key and returns the new value. A new
	// key starts a window of the given length.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// MemoryCounterStore is a process-local CounterStore.
type MemoryCounterStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	count       int64
	windowStart time.Time
	window      time.Duration
}

// NewMemoryCounterStore creates the store and starts bucket cleanup.
func NewMemoryCounterStore() *MemoryCounterStore {
	s := &MemoryCounterStore{buckets: make(map[string]*bucket)}
	go s.cleanup()
	return s
}

// cleanup removes expired buckets periodically
func (s *MemoryCounterStore) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for key, b := range s.buckets {
			if now.Sub(b.windowStart) > b.window {
				delete(s.buckets, key)
			}
		}
		s.mu.Unlock()
	}
}

// Incr increments the window counter for a key
func (s *MemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	b, exists := s.buckets[key]
	if !exists || now.Sub(b.windowStart) > b.window {
		s.buckets[key] = &bucket{count: 1, windowStart: now, window: window}
		return 1, nil
	}

	b.count++
	return b.count, nil
}

// RedisCounterStore shares rate limit counters across instances.
type RedisCounterStore struct {
	client *redis.Client
}

// NewRedisCounterStore creates a store on an existing Redis client.
func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

// Incr increments the window counter for a key
func (s *RedisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, "ratelimit:"+key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		// First hit in this window owns the expiry.
		if err := s.client.Expire(ctx, "ratelimit:"+key, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// RateLimitMiddleware rejects clients over their per-window request budget.
// A failing counter store lets the request through: upstream protection is
// handled separately and availability wins here.
func RateLimitMiddleware(store CounterStore, limit int, window time.Duration, logger interfaces.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := store.Incr(c.Request.Context(), c.ClientIP(), window)
		if err != nil {
			logger.Warn("rate limit store unavailable", map[string]interface{}{
				"error": err.Error(),
			})
			c.Next()
			return
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
