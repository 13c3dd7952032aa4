// Package primitive implements the lazy-dice surface contract: bounds /
// is_traceable / refine / intersect over Sphere, Bilinear, and Grid
// primitives.
//
// Sphere and Grid are always traceable and never refine: spheres are an
// implicit surface with a closed-form intersection test, and grids are
// the already-diced leaf representation. Bilinear is the only primitive
// that splits, driven by the ray footprint width passed to IsTraceable.
//
// Bilinear owns a key into a shared gridcache.Cache rather than the
// grid itself, an arena-plus-index pattern: grids are owned by the
// cache, primitives hold only a key, so there is no ownership cycle
// between primitive and cache.
package primitive
