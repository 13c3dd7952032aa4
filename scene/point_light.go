package scene

import "github.com/katalvlaran/pathforge/vecmath"

// PointLight is a zero-radius, isotropic point emitter: a reference
// Light implementation with a closed-form sample (no stochastic area
// sampling is needed, so u, v, and time are unused).
type PointLight struct {
	Position  vecmath.Vec3
	Intensity vecmath.Color // radiant intensity, watts/steradian
}

// NewPointLight constructs a PointLight at position with the given
// intensity.
func NewPointLight(position vecmath.Vec3, intensity vecmath.Color) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// Sample implements Light. The returned vector runs from point to the
// light's position, so its length is the distance to the light. Returns
// ok=false only when point coincides exactly with the light's position.
func (l *PointLight) Sample(point vecmath.Vec3, u, v, time float64) (vecmath.Vec3, vecmath.Color, bool) {
	toLight := l.Position.Sub(point)
	dist2 := toLight.Length2()
	if dist2 <= 0 {
		return vecmath.Vec3{}, vecmath.Color{}, false
	}

	radiance := l.Intensity.Scale(1.0 / dist2)
	return toLight, radiance, true
}
