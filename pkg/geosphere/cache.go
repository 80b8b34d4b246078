package geosphere

import (
	"sort"
	"sync"
)

// Cache keeps generated spheres by subdivision level. It is owned by the caller and
// shared by handing it to generators with WithCache. Cached spheres are returned as
// is, so their buffers must be treated as read-only.
type Cache struct {
	mu      sync.RWMutex
	spheres map[int]*Sphere
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{spheres: make(map[int]*Sphere)}
}

// Get returns the sphere cached for level, if any.
func (c *Cache) Get(level int) (*Sphere, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.spheres[level]
	return s, ok
}

// Put stores s under its level, replacing any previous entry.
func (c *Cache) Put(s *Sphere) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spheres[s.Level] = s
}

// Invalidate drops the entry for level.
func (c *Cache) Invalidate(level int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.spheres, level)
}

// Reset drops every entry.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.spheres)
}

// Levels returns the cached levels in ascending order.
func (c *Cache) Levels() []int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	levels := make([]int, 0, len(c.spheres))
	for l := range c.spheres {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	return levels
}
