package gridcache

import (
	"container/list"
	"sync"

	"github.com/katalvlaran/pathforge/vecmath"
)

// Grid is the subset of primitive.Grid's behavior the cache needs to
// hold and forward intersections to. Defined here, rather than imported
// from package primitive, so primitive can depend on gridcache without a
// cycle.
type Grid interface {
	IntersectRay(r *vecmath.Ray, in *vecmath.Intersection) bool
}

// DefaultCapacity is the entry count used when New is called with a
// non-positive capacity.
const DefaultCapacity = 4096

type entry struct {
	key  uint64
	grid Grid
}

// Cache is a bounded, touch-based LRU cache from monotonically assigned
// keys to diced grids. The zero value is not usable; use
// New. A Cache is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	nextKey  uint64
	order    *list.List // front = most recently touched
	index    map[uint64]*list.Element

	evictions int64
}

// New creates a Cache holding at most capacity grids. A non-positive
// capacity is replaced with DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[uint64]*list.Element),
	}
}

// Add inserts grid under a freshly assigned key, evicting the least
// recently touched entry if the cache is at capacity, and returns the
// new key.
func (c *Cache) Add(grid Grid) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextKey++
	key := c.nextKey

	if c.order.Len() >= c.capacity {
		c.evictOldestLocked()
	}

	el := c.order.PushFront(entry{key: key, grid: grid})
	c.index[key] = el
	return key
}

func (c *Cache) evictOldestLocked() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	c.order.Remove(oldest)
	delete(c.index, oldest.Value.(entry).key)
	c.evictions++
}

// Exists reports whether key currently resolves to a live grid, without
// affecting recency order.
func (c *Cache) Exists(key uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.index[key]
	return ok
}

// Touch marks key as most recently used. A no-op if key is not present
// (it may have already been evicted).
func (c *Cache) Touch(key uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.index[key]; ok {
		c.order.MoveToFront(el)
	}
}

// Get retrieves the grid stored under key, reporting whether it is still
// present.
func (c *Cache) Get(key uint64) (Grid, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return el.Value.(entry).grid, true
}

// Len reports the number of grids currently resident.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Evictions reports the number of entries evicted over the cache's
// lifetime, for diagnostics.
func (c *Cache) Evictions() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictions
}
