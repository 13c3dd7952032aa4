package primitive

import "github.com/katalvlaran/pathforge/vecmath"

// Primitive is the abstract surface contract every acceleration-array
// child implements.
//
// Bounds must bound the primitive's true surface at every time sample.
// IsTraceable must be monotone in w: if a primitive is traceable at width
// w, it remains traceable for any w' >= w up to its internally
// remembered narrowest accepted width. Refine is only ever called when
// IsTraceable has returned false, and the union of the returned
// children's bounds must cover the parent's bounds. IntersectRay must
// reject any candidate hit farther than an already-recorded
// intersection.
type Primitive interface {
	// Bounds returns the per-time-sample bounding box sequence.
	Bounds() vecmath.BBoxT

	// IsTraceable reports whether this primitive can be intersected
	// directly at the given ray footprint width, or must be refined
	// first.
	IsTraceable(rayWidth float64) bool

	// Refine splits an untraceable primitive into smaller primitives.
	// Called only when IsTraceable has returned false; never called on
	// Sphere or Grid, which are always traceable.
	Refine() []Primitive

	// IntersectRay tests r against this primitive, updating in with the
	// closest hit if one is found at a distance smaller than in.T.
	// Returns whether a hit was recorded.
	IntersectRay(r *vecmath.Ray, in *vecmath.Intersection) bool
}
