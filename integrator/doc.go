// Package integrator implements the bucketed, wavefront-style
// Monte-Carlo path tracer: a Morton-ordered producer enqueues pixel
// blocks, a fixed pool of worker goroutines drains them,
// and each worker marches every live path in a bucket through
// path_length segments as a batch — camera rays, then bounce rays, then
// next-event-estimation shadow rays — rather than recursing per ray.
package integrator
