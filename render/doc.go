// Package render is the renderer shell: it owns a
// scene, resolution, sample count, seed, and output path, and drives a
// single render from those inputs to a written image.
package render
