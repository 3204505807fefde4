// ABOUTME: TTL response cache with per-resource-class lifetimes and hit/miss stats
// ABOUTME: Wraps go-cache; eviction counting happens on the janitor goroutine via atomics

package respcache

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"yt-data-api/core/interfaces"
)

// Class groups operations by how long their responses stay fresh.
type Class string

const (
	// ClassChannel covers channel metadata lookups
	ClassChannel Class = "channel"

	// ClassVideo covers video metadata lookups
	ClassVideo Class = "video"

	// ClassFeed covers RSS/Atom feed fetches
	ClassFeed Class = "feed"

	// ClassDefault covers everything without a more specific lifetime
	ClassDefault Class = "default"
)

// TTLConfig holds the lifetime per resource class.
type TTLConfig struct {
	Channel time.Duration
	Video   time.Duration
	Feed    time.Duration
	Default time.Duration
}

// Cache stores upstream response payloads keyed by request fingerprint.
//
// Counters are atomics so the eviction callback, which runs on the store's
// janitor goroutine, never touches the mutex. The mutex only serializes
// Clear against concurrent writes so the flush and the stat reset are one
// atomic step from the outside.
type Cache struct {
	mu    sync.RWMutex
	store *gocache.Cache
	ttls  TTLConfig

	hits      atomic.Uint64
	misses    atomic.Uint64
	writes    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a response cache with the given per-class lifetimes.
func New(ttls TTLConfig) *Cache {
	c := &Cache{
		store: gocache.New(ttls.Default, 5*time.Minute),
		ttls:  ttls,
	}
	c.store.OnEvicted(func(string, interface{}) {
		c.evictions.Add(1)
	})
	return c
}

// Get returns the cached payload for a fingerprint, or false on a miss.
// Expired entries count as misses.
func (c *Cache) Get(fingerprint string) (json.RawMessage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, found := c.store.Get(fingerprint)
	if !found {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return value.(json.RawMessage), true
}

// Set stores a payload under a fingerprint with the class lifetime.
// A repeated Set for the same fingerprint replaces the entry and restarts
// its TTL.
func (c *Cache) Set(fingerprint string, class Class, payload json.RawMessage) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.store.Set(fingerprint, payload, c.ttl(class))
	c.writes.Add(1)
}

// Invalidate removes a single entry. Removing a missing key is a no-op.
func (c *Cache) Invalidate(fingerprint string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.store.Delete(fingerprint)
}

// Clear flushes all entries and resets the statistics in one step.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.Flush()
	c.hits.Store(0)
	c.misses.Store(0)
	c.writes.Store(0)
	c.evictions.Store(0)
}

// Entries returns the number of live, unexpired entries.
func (c *Cache) Entries() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.store.Items())
}

// Stats returns a snapshot of the cache counters. HitRate is 0 when no
// lookups have happened yet.
func (c *Cache) Stats() interfaces.CacheStats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	stats := interfaces.CacheStats{
		Hits:      hits,
		Misses:    misses,
		Writes:    c.writes.Load(),
		Evictions: c.evictions.Load(),
		Entries:   c.Entries(),
	}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}
	return stats
}

// TTLFor returns the configured lifetime for a class.
func (c *Cache) TTLFor(class Class) time.Duration {
	return c.ttl(class)
}

func (c *Cache) ttl(class Class) time.Duration {
	switch class {
	case ClassChannel:
		return c.ttls.Channel
	case ClassVideo:
		return c.ttls.Video
	case ClassFeed:
		return c.ttls.Feed
	default:
		return c.ttls.Default
	}
}
