package fingerprint

import "sync"

// Cache is a process-local, concurrency-safe store keyed by a
// FingerprintFor value (spec §4.9). It holds whatever a caller chooses to
// key by fingerprint — in this engine, always a []rules.Action — without
// this package needing to import the rules package itself.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[uint64]V
	hits    int
	misses  int
}

// NewCache returns an empty cache.
func NewCache[V any]() *Cache[V] {
	return &Cache[V]{entries: make(map[uint64]V)}
}

// Get reports a cached value for key and records a hit or miss.
func (c *Cache[V]) Get(key uint64) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Put inserts or replaces the value for key.
func (c *Cache[V]) Put(key uint64, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// GetOrCompute returns the cached value for key, computing and storing it
// via compute on a miss.
func (c *Cache[V]) GetOrCompute(key uint64, compute func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := compute()
	c.Put(key, v)
	return v
}

// Invalidate removes a single key, e.g. one seat's fingerprint after a
// successful apply_action (spec §4.9).
func (c *Cache[V]) Invalidate(key uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateAll clears every entry, used when an apply_action's effect on
// a seat's narrower fingerprint is cheaper to assume invalidated outright
// than to recompute per seat (spec §4.9 permits either).
func (c *Cache[V]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]V)
}

// Stats reports the cache's current size, hit/miss counters, and hit
// rate (0 if there have been no lookups yet).
type Stats struct {
	Size    int
	Hits    int
	Misses  int
	HitRate float64
}

func (c *Cache[V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := c.hits + c.misses
	var rate float64
	if total > 0 {
		rate = float64(c.hits) / float64(total)
	}
	return Stats{
		Size:    len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
		HitRate: rate,
	}
}
