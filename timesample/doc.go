// Package timesample provides a generic container for motion-blur time
// samples: given a monotonic list of sample times and a query time, it
// returns the bracketing indices and a linear blend factor.
//
// Query itself never interpolates values — callers combine the returned
// indices with their own Lerp, since the sample type (Vec3, radius,
// control-quad corner, ...) varies by primitive.
package timesample
