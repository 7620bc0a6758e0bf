package envmap

import "sync"

// Cache is a concurrency-safe panorama cache keyed by file path.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
}

type cacheEntry struct {
	m   *Map
	err error
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{items: make(map[string]*cacheEntry)}
}

// Get loads and caches the panorama at path. Failures are cached too.
func (c *Cache) Get(path string) (*Map, error) {
	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.m, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	m, err := Load(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.m, entry.err
	}
	c.items[path] = &cacheEntry{m: m, err: err}
	return m, err
}
