package solver

import (
	"sync"
	"time"
)

// cacheEntry holds one stored result together with its insertion time.
type cacheEntry struct {
	mapping    Mapping
	insertedAt time.Time
}

// Cache is a bounded result cache keyed by an equation's canonical key.
// Entries expire a fixed time after insertion regardless of access pattern;
// expired entries are dropped opportunistically on access, and when the
// cache is over capacity the least recently inserted entries are evicted.
// "No solution" results (empty mappings) are cached like any other.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]cacheEntry
	order    []string // keys in insertion order, oldest first
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// NewCache creates a cache holding up to capacity entries, each expiring
// ttl after insertion.
func NewCache(capacity int, ttl time.Duration) *Cache {
	return &Cache{
		entries:  make(map[string]cacheEntry, capacity),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the cached mapping for key, if present and not expired.
// An expired entry is removed on the spot.
func (c *Cache) Get(key string) (Mapping, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.insertedAt) > c.ttl {
		c.remove(key)
		return nil, false
	}
	return entry.mapping.clone(), true
}

// Put stores a mapping under key. Re-inserting an existing key counts as a
// fresh insertion: the entry moves to the back of the eviction order and
// its expiry restarts.
func (c *Cache) Put(key string, mapping Mapping) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.remove(key)
	}

	// Drop entries that have already expired before considering capacity.
	now := c.now()
	for len(c.order) > 0 {
		oldest := c.order[0]
		if now.Sub(c.entries[oldest].insertedAt) <= c.ttl {
			break
		}
		c.remove(oldest)
	}

	c.entries[key] = cacheEntry{mapping: mapping.clone(), insertedAt: now}
	c.order = append(c.order, key)

	for len(c.order) > c.capacity {
		c.remove(c.order[0])
	}
}

// Len returns the number of entries currently stored, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove deletes key from both the entry map and the insertion order.
// Callers must hold the lock.
func (c *Cache) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
