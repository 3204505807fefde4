// ABOUTME: Cache statistics types shared between the response cache and its consumers
// ABOUTME: Defines the snapshot returned by the cache stats endpoint

package interfaces

// CacheStats is a point-in-time snapshot of response cache counters.
type CacheStats struct {
	// Hits is the number of reads served from the cache
	Hits uint64 `json:"hits"`

	// Misses is the number of reads that fell through to the upstream
	Misses uint64 `json:"misses"`

	// Writes is the number of entries stored since the last clear
	Writes uint64 `json:"writes"`

	// Evictions is the number of entries dropped after their TTL elapsed
	Evictions uint64 `json:"evictions"`

	// Entries is the current number of live entries
	Entries int `json:"entries"`

	// HitRate is Hits / (Hits + Misses), 0 when no reads have happened
	HitRate float64 `json:"hit_rate"`
}
