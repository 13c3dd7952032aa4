package scene

import "github.com/katalvlaran/pathforge/vecmath"

// Camera turns a film-plane sample into a world-space ray. rx, ry are
// pixel coordinates; dx, dy are the sub-pixel jitter offset within the
// pixel; time is the shutter sample used for motion blur; u, v are a
// lens sample in [0,1) for depth of field (unused by a pinhole camera).
type Camera interface {
	GenerateRay(rx, ry, dx, dy, time, u, v float64) *vecmath.Ray
}

// Light offers next-event-estimation sampling: given a shading point and
// a sample (u, v) at a given time, it returns the vector from the point
// to the sampled light position (its length is the distance to that
// position) and the radiance arriving from that direction, or ok=false if
// the light contributes nothing from this point (e.g. it is degenerate
// or behind a one-sided emitter).
type Light interface {
	Sample(point vecmath.Vec3, u, v, time float64) (dir vecmath.Vec3, radiance vecmath.Color, ok bool)
}

// Accelerator is the root traceable structure a Scene hands to the
// integrator; *primarray.Array satisfies it without scene needing to
// import primarray.
type Accelerator interface {
	IntersectRay(r *vecmath.Ray, in *vecmath.Intersection) bool
}

// Scene bundles everything a render needs to trace: a camera, an
// ordered set of lights, and the root accelerator.
type Scene struct {
	Camera Camera
	Lights []Light
	Root   Accelerator
}

// New builds a Scene from its three inputs.
func New(camera Camera, lights []Light, root Accelerator) *Scene {
	return &Scene{Camera: camera, Lights: lights, Root: root}
}
