package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process cache holding at most a fixed number of
// entries. When full, Set evicts the entry that was written first.
type MemoryCache struct {
	mu      sync.Mutex
	max     int
	entries map[string]memoryEntry
	order   []string // keys in write order, oldest first
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache returns a cache holding up to max entries. max <= 0 means
// no bound.
func NewMemoryCache(max int) *MemoryCache {
	return &MemoryCache{max: max, entries: make(map[string]memoryEntry)}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.remove(key)
		return nil, false, nil
	}
	return append([]byte(nil), e.data...), true, nil
}

// Set stores a copy of data under key.
func (c *MemoryCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := memoryEntry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	if _, exists := c.entries[key]; exists {
		c.remove(key)
	}
	for c.max > 0 && len(c.entries) >= c.max {
		c.remove(c.order[0])
	}
	c.entries[key] = e
	c.order = append(c.order, key)
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(key)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close drops all entries.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
	c.order = nil
	return nil
}

// remove deletes key. c.mu must be held.
func (c *MemoryCache) remove(key string) {
	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)
