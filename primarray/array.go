package primarray

import (
	"sync"

	"github.com/katalvlaran/pathforge/primitive"
	"github.com/katalvlaran/pathforge/stats"
	"github.com/katalvlaran/pathforge/vecmath"
)

// Array is the flat primitive acceleration structure. The
// zero value is not usable; use New. An Array is safe for concurrent use
// by many traversing rays, including concurrent splits.
type Array struct {
	mu       sync.RWMutex
	children []primitive.Primitive
	stats    *stats.Counters
}

// New creates an empty Array.
func New(st *stats.Counters) *Array {
	return &Array{stats: st}
}

// AddPrimitives appends primitives to the array. Not safe to call
// concurrently with IntersectRay on the same primitives that are still
// being added; call AddPrimitives and Finalize during scene setup,
// before any traversal begins.
func (a *Array) AddPrimitives(prims ...primitive.Primitive) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.children = append(a.children, prims...)
}

// Finalize forces every child's bounding box to be computed once, up
// front, so later concurrent traversal only ever reads already-cached
// bounds (mirroring the original acceleration array's finalize pass,
// which exists for exactly this reason).
func (a *Array) Finalize() {
	a.mu.RLock()
	children := make([]primitive.Primitive, len(a.children))
	copy(children, a.children)
	a.mu.RUnlock()

	for _, c := range children {
		c.Bounds()
	}
}

// Bounds returns the union of every child's bounding box, unioned again
// across time samples into a single box. Nothing in this package
// consults it during traversal; it exists for scene-level diagnostics
// and camera auto-framing.
func (a *Array) Bounds() vecmath.BBox {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var box vecmath.BBox
	first := true
	for _, c := range a.children {
		cb := c.Bounds().Union()
		if first {
			box = cb
			first = false
		} else {
			box = box.Union(cb)
		}
	}
	return box
}

// Len reports the current number of children, including any produced by
// splits.
func (a *Array) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.children)
}

// IntersectRay walks the array in order, splitting any child that is not
// traceable at the ray's local footprint width in place, and testing
// every traceable child against r. It returns whether any hit was
// recorded into in. Shadow rays (r.IsShadowRay) stop at the first hit.
func (a *Array) IntersectRay(r *vecmath.Ray, in *vecmath.Intersection) bool {
	hit := false

	for i := 0; ; i++ {
		child, ok := a.childAt(i)
		if !ok {
			break
		}

		tnear, tfar, boxHit := child.Bounds().IntersectRay(r)
		if !boxHit {
			continue
		}

		if child.IsTraceable(r.MinWidth(tnear, tfar)) {
			if child.IntersectRay(r, in) {
				hit = true
				if r.IsShadowRay {
					break
				}
			}
			continue
		}

		a.splitAt(i, child)
		i-- // re-examine this slot: it now holds the first refined child
	}

	return hit
}

func (a *Array) childAt(i int) (primitive.Primitive, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if i < 0 || i >= len(a.children) {
		return nil, false
	}
	return a.children[i], true
}

// splitAt refines expected and installs the results at slot i, appending
// any overflow. If slot i no longer holds expected (another worker
// refined or otherwise replaced it first), the refine result is
// discarded and the slot is left as-is.
func (a *Array) splitAt(i int, expected primitive.Primitive) {
	parts := expected.Refine()
	if len(parts) == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if i < 0 || i >= len(a.children) || a.children[i] != expected {
		return
	}

	a.children[i] = parts[0]
	a.children = append(a.children, parts[1:]...)
}
