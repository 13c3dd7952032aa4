// Package stats holds the render counters primitive_ray_tests,
// split_count, and upoly_gen_count. Counters is passed explicitly to the
// components that hold it rather than kept as a package-level global, so
// a Renderer can run multiple independent renders without
// cross-contaminating counts. The primitives (Sphere, Bilinear, and the
// Grids a Bilinear dices) are the ones that update it.
package stats
