package targets

import "sync"

type cacheKey struct {
	path     string
	gridSize int
}

// Cache provides thread-safe caching of parsed target maps to avoid
// re-reading the same file on every request.
//
// Maps are keyed by the exact path string and the grid size they were
// validated against: the same file read under a different grid size is a
// separate entry, because a point valid on a large grid may be out of bounds
// on a smaller one.
//
// Cached slices are shared between callers and must be treated as read-only.
type Cache struct {
	mu   sync.RWMutex
	maps map[cacheKey][]Point
}

// NewCache creates an empty target cache.
func NewCache() *Cache {
	return &Cache{
		maps: make(map[cacheKey][]Point),
	}
}

// Load returns the cached map for (path, gridSize) or loads it from disk.
// Failed loads are not cached.
func (c *Cache) Load(path string, gridSize int) ([]Point, error) {
	key := cacheKey{path: path, gridSize: gridSize}

	c.mu.RLock()
	if points, ok := c.maps[key]; ok {
		c.mu.RUnlock()
		return points, nil
	}
	c.mu.RUnlock()

	points, err := Load(path, gridSize)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.maps[key] = points
	c.mu.Unlock()

	return points, nil
}

// Evict removes every cached entry for path, whatever grid size it was
// loaded under.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	for key := range c.maps {
		if key.path == path {
			delete(c.maps, key)
		}
	}
	c.mu.Unlock()
}

// Clear removes all cached maps.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.maps = make(map[cacheKey][]Point)
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.maps)
}
