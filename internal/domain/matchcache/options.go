// Package matchcache caches computed match results keyed by input versions.
package matchcache

// Option applies a configuration option to the Cache.
type Option func(*Cache)

// WithCapacity sets the maximum number of results to keep in memory.
// If capacity > 0: bounded mode with LRU eviction.
// If capacity <= 0: unbounded mode (no eviction, no size limit).
func WithCapacity(capacity int) Option {
	return func(c *Cache) {
		c.capacity = capacity
	}
}
