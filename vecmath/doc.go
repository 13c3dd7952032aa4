// Package vecmath provides the 3-D vector, ray, bounding-box, and
// intersection types shared by every primitive and traversal routine in
// pathforge.
//
// Everything here is a plain value type with no locking of its own;
// concurrency safety is the responsibility of the packages that share
// these values across goroutines (primarray, gridcache, integrator).
package vecmath
