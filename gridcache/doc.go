// Package gridcache implements the shared, bounded, touch-based LRU cache
// that owns diced Grid primitives. Primitives hold only a
// monotonically assigned key into the cache; the cache owns the grid
// itself, so eviction never has to chase a primitive back down to
// invalidate it — the primitive simply discovers, on its next
// IntersectRay, that its key no longer resolves and re-dices.
package gridcache
