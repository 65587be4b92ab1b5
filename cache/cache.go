// Package cache provides a small thread-safe LRU cache.
//
// postfx uses it in backend/wgpu to memoize compiled shader modules by
// their full source text, so an engine Reload with unchanged source
// skips WGSL-to-SPIR-V recompilation. The cache is generic and has no
// GPU dependencies of its own.
package cache

import (
	"sync"
	"sync/atomic"
)

// DefaultCapacity is the maximum entry count used when New is called
// with a non-positive capacity.
const DefaultCapacity = 64

// Cache is a thread-safe LRU cache.
//
// Values are stored as-is, not copied; callers must not mutate a value
// after inserting it.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*lruNode[K, V]
	lru      lruList[K, V]
	capacity int

	// Statistics, atomic so Stats never blocks behind the mutex.
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a cache holding at most capacity entries. If capacity
// is not positive, DefaultCapacity is used.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache[K, V]{
		entries:  make(map[K]*lruNode[K, V]),
		capacity: capacity,
	}
}

// Get retrieves a cached value, refreshing its recency.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.lru.moveToFront(node)
	c.hits.Add(1)
	return node.value, true
}

// Set stores a value, evicting the least recently used entries when
// the cache is over capacity.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value)
}

// GetOrCreate returns the cached value for key, calling create to
// produce and store it on a miss. create runs with the cache lock held
// so concurrent callers never compute the same entry twice; keep it
// fast or precompute outside.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.entries[key]; ok {
		c.lru.moveToFront(node)
		c.hits.Add(1)
		return node.value
	}
	c.misses.Add(1)
	value := create()
	c.setLocked(key, value)
	return value
}

func (c *Cache[K, V]) setLocked(key K, value V) {
	if node, ok := c.entries[key]; ok {
		node.value = value
		c.lru.moveToFront(node)
		return
	}
	for len(c.entries) >= c.capacity {
		oldest := c.lru.removeOldest()
		if oldest == nil {
			break
		}
		delete(c.entries, oldest.key)
		c.evictions.Add(1)
	}
	node := &lruNode[K, V]{key: key, value: value}
	c.lru.pushFront(node)
	c.entries[key] = node
}

// Delete removes an entry, reporting whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		return false
	}
	c.lru.remove(node)
	delete(c.entries, key)
	return true
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*lruNode[K, V])
	c.lru = lruList[K, V]{}
}

// Len returns the current entry count.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the maximum entry count.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Stats is a snapshot of cache effectiveness counters.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}

// Stats returns current statistics.
func (c *Cache[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return Stats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
		HitRate:   hitRate,
	}
}

// ResetStats resets all statistics counters to zero.
func (c *Cache[K, V]) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}
