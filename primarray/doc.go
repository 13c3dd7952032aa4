// Package primarray implements the linear primitive acceleration array:
// a flat, mutable slice of primitive.Primitive that
// traversal walks in order, splitting any primitive that reports itself
// untraceable at the ray's footprint width in place.
//
// The children slice is guarded by a sync.RWMutex, following the
// separate-lock-per-concern discipline the rest of this module uses:
// readers (the per-ray traversal loop) take RLock to snapshot a single
// slot; a split takes the write lock only for the in-place
// replace-and-append, and re-checks the slot still holds the primitive
// it means to split before mutating, since another worker may have
// refined it first. A lost race simply discards the redundant refine
// result rather than retrying or blocking.
package primarray
