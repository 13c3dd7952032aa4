// Package pathforge is a lazy-dice, bucketed Monte-Carlo path tracer.
//
// Rays are traced against a scene built from time-sampled implicit
// spheres and bilinear patches; patches dice into micropolygon grids
// only as far as a given ray's footprint actually demands, and the
// resulting grids are held in a bounded, shared cache keyed off the
// patch that produced them. A flat primitive array walks its children
// in order, splitting any patch that is not yet traceable at the
// current ray's width in place as it goes.
//
// Rendering runs as a bucketed, wavefront-style integrator: a
// Morton-ordered producer hands out pixel blocks to a fixed pool of
// worker goroutines, and each worker marches every live path in a
// bucket through camera, bounce, and shadow-ray stages as a batch
// rather than recursing per ray.
//
// See the render, integrator, primitive, primarray, and gridcache
// packages for the pieces that make this up; cmd/pathforge is the
// command-line front-end.
package pathforge
