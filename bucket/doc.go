// Package bucket provides the Morton (Z-order) bijection between a linear
// sweep index and 2-D bucket coordinates, plus the Block type describing a
// rectangular region of pixels to render as one unit of work.
//
// Interleaving is done over 16-bit halves, so XY2D and D2XY are inverses
// on [0, 65535]².
package bucket
