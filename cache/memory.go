package cache

import (
	"maps"
	"sync"
)

// InMemoryCache keeps entries for the life of the process. Dry runs and
// tests use it where nothing should touch disk.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewInMemoryCache creates an empty in-memory cache.
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{entries: make(map[string]string)}
}

// Get returns the stored value for key.
func (c *InMemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (c *InMemoryCache) Set(key, value string) error {
	c.mu.Lock()
	c.entries[key] = value
	c.mu.Unlock()
	return nil
}

// Len reports the number of stored entries.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Entries returns a snapshot of the cache contents.
func (c *InMemoryCache) Entries() (map[string]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.entries), nil
}

// Close is a no-op.
func (c *InMemoryCache) Close() error { return nil }

var (
	_ Backend    = (*InMemoryCache)(nil)
	_ Enumerable = (*InMemoryCache)(nil)
)
