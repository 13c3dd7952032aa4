// Package film accumulates per-pixel radiance samples under a shared
// mutex and resolves them to a tone-mapped PNG. Workers
// call AddBatch concurrently, once per finished bucket; Write is
// called once, after every bucket has drained, from the renderer's own
// goroutine.
package film
