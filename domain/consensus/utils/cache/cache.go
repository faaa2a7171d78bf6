// Package cache implements the bounded, randomised-eviction hash-keyed
// cache every store layers in front of the KV backend (§5, §9: "Caches:
// LRU or randomised-eviction maps keyed by hash... sized by a
// memory-budget configuration. They are not authoritative -- a miss falls
// through to the KV store."). Eviction picks an arbitrary entry rather than
// tracking recency, since Go map iteration order is itself randomised --
// the cheapest way to get "random eviction" without extra bookkeeping.
package cache

import (
	"sync"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// HashCache is a concurrency-safe, size-bounded cache keyed by DomainHash.
type HashCache struct {
	mu       sync.RWMutex
	capacity int
	entries  map[externalapi.DomainHash]interface{}
}

// New creates a cache bounded to at most capacity entries. capacity <= 0
// means unbounded (used for small, bounded-by-construction stores like the
// virtual state's single cell).
func New(capacity int) *HashCache {
	return &HashCache{capacity: capacity, entries: make(map[externalapi.DomainHash]interface{})}
}

// Get returns the cached value for hash, if present.
func (c *HashCache) Get(hash *externalapi.DomainHash) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[*hash]
	return value, ok
}

// Add inserts or overwrites hash's cached value, evicting an arbitrary
// entry first if the cache is at capacity.
func (c *HashCache) Add(hash *externalapi.DomainHash, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[*hash]; !exists && c.capacity > 0 && len(c.entries) >= c.capacity {
		for evict := range c.entries {
			delete(c.entries, evict)
			break
		}
	}
	c.entries[*hash] = value
}

// Remove evicts hash's cached value, if any.
func (c *HashCache) Remove(hash *externalapi.DomainHash) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, *hash)
}

// Has reports whether hash is currently cached.
func (c *HashCache) Has(hash *externalapi.DomainHash) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[*hash]
	return ok
}
