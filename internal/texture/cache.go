package texture

import (
	"fmt"
	"sync"
)

// Cache is a concurrency-safe mask cache shared between scenes.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	mask *Mask
	err  error
}

// NewCache creates a new mask cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a mask by name. Load failures are cached too.
func (c *Cache) Resolve(name string) (*Mask, error) {
	path, ok := c.index.ResolvePath(name)
	if !ok {
		return nil, fmt.Errorf("texture: mask %q not found", name)
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.mask, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	mask, err := LoadMask(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.mask, entry.err
	}
	c.items[path] = &cacheEntry{mask: mask, err: err}
	return mask, err
}
