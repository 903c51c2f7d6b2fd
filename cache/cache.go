// Package cache provides a generic, thread-safe memoization cache with
// metrics. It is tuned for populate-once workloads: the compute function in
// GetOrCompute runs outside the lock, so concurrent first requests for the
// same key may compute redundantly rather than serialize, and the last write
// wins. That is safe whenever all computations for a key are behaviorally
// interchangeable, which is the contract for compiled hint checkers.
package cache

import (
	"sync"
	"sync/atomic"
)

// Cache is a generic thread-safe memoization cache with built-in metrics.
type Cache[K comparable, V any] struct {
	mu       sync.RWMutex
	items    map[K]V
	capacity int

	// Metrics (lock-free using atomics)
	hits      atomic.Uint64
	misses    atomic.Uint64
	sets      atomic.Uint64
	evicts    atomic.Uint64
	redundant atomic.Uint64
}

// New creates a new Cache holding at most capacity entries.
// When the cache is full, an arbitrary entry is evicted; memoized values are
// reconstructible, so eviction order does not affect correctness.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Cache[K, V]{
		items:    make(map[K]V, capacity),
		capacity: capacity,
	}
}

// Get retrieves a value from the cache.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	v, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	return v, true
}

// Set adds or replaces a value. Replacement is the last-write-wins outcome
// of redundant concurrent computes.
func (c *Cache[K, V]) Set(key K, value V) {
	c.sets.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.capacity {
		c.evictOne()
	}
	c.items[key] = value
}

// evictOne removes an arbitrary entry. Must be called with mu held.
func (c *Cache[K, V]) evictOne() {
	for k := range c.items {
		delete(c.items, k)
		c.evicts.Add(1)
		return
	}
}

// GetOrCompute returns the cached value for key, computing and storing it on
// a miss. The compute function runs without the lock held: concurrent
// callers missing on the same key each compute independently and the last
// store wins. It never blocks one caller on another's compute.
func (c *Cache[K, V]) GetOrCompute(key K, fn func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}

	v := fn()

	c.mu.Lock()
	if _, exists := c.items[key]; exists {
		c.redundant.Add(1)
	} else if len(c.items) >= c.capacity {
		c.evictOne()
	}
	c.items[key] = v
	c.mu.Unlock()

	c.sets.Add(1)
	return v
}

// Delete removes an entry.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Len returns the current number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]V, c.capacity)
}

// Stats holds cache statistics.
type Stats struct {
	Size      int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Sets      uint64
	Evicts    uint64
	Redundant uint64
	HitRate   float64
}

// Stats returns cache statistics. Redundant counts stores that replaced a
// concurrently computed value for the same key.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.RLock()
	size := len(c.items)
	c.mu.RUnlock()

	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Size:      size,
		Capacity:  c.capacity,
		Hits:      hits,
		Misses:    misses,
		Sets:      c.sets.Load(),
		Evicts:    c.evicts.Load(),
		Redundant: c.redundant.Load(),
		HitRate:   hitRate,
	}
}

// Range calls fn for each entry until fn returns false.
func (c *Cache[K, V]) Range(fn func(key K, value V) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for k, v := range c.items {
		if !fn(k, v) {
			break
		}
	}
}
