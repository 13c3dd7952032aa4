package vecmath

import (
	"math"

	"github.com/gazed/vu/math/lin"
)

// Vec3 is a 3-component vector used for positions, directions, and colors.
// It keeps the same field layout as lin.V3 so the two convert for free;
// Vec3 stays an immutable value type at its own call sites (copied freely
// into per-path worker state) while the arithmetic underneath is done
// through lin.V3's in-place accumulator methods.
type Vec3 struct {
	X, Y, Z float64
}

func toLin(a Vec3) lin.V3 {
	return lin.V3{X: a.X, Y: a.Y, Z: a.Z}
}

func fromLin(a *lin.V3) Vec3 {
	return Vec3{X: a.X, Y: a.Y, Z: a.Z}
}

// Add returns a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	la, lb := toLin(a), toLin(b)
	var out lin.V3
	out.Add(&la, &lb)
	return fromLin(&out)
}

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	la, lb := toLin(a), toLin(b)
	var out lin.V3
	out.Sub(&la, &lb)
	return fromLin(&out)
}

// Scale returns a scaled by s.
func (a Vec3) Scale(s float64) Vec3 {
	la := toLin(a)
	var out lin.V3
	out.Scale(&la, s)
	return fromLin(&out)
}

// Mul returns the component-wise product of a and b. lin.V3 has no
// component-wise product method (Scale only multiplies by a scalar), so
// this one stays direct field arithmetic.
func (a Vec3) Mul(b Vec3) Vec3 {
	return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

// Lerp returns the linear interpolation between a and b at alpha in [0,1].
func (a Vec3) Lerp(b Vec3, alpha float64) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*alpha,
		a.Y + (b.Y-a.Y)*alpha,
		a.Z + (b.Z-a.Z)*alpha,
	}
}

// Dot returns the dot product of a and b.
func (a Vec3) Dot(b Vec3) float64 {
	la, lb := toLin(a), toLin(b)
	return la.Dot(&lb)
}

// Cross returns the cross product a x b.
func (a Vec3) Cross(b Vec3) Vec3 {
	la, lb := toLin(a), toLin(b)
	var out lin.V3
	out.Cross(&la, &lb)
	return fromLin(&out)
}

// Length2 returns the squared length of a.
func (a Vec3) Length2() float64 {
	return a.Dot(a)
}

// Length returns the length of a.
func (a Vec3) Length() float64 {
	return math.Sqrt(a.Length2())
}

// Normalized returns a unit-length copy of a. The zero vector is returned
// unchanged.
func (a Vec3) Normalized() Vec3 {
	if a.X == 0 && a.Y == 0 && a.Z == 0 {
		return a
	}
	la := toLin(a)
	la.Unit()
	return fromLin(&la)
}

// Negate returns -a.
func (a Vec3) Negate() Vec3 {
	la := toLin(a)
	var out lin.V3
	out.Scale(&la, -1)
	return fromLin(&out)
}

// Min returns the component-wise minimum of a and b.
func Min(a, b Vec3) Vec3 {
	return Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

// Max returns the component-wise maximum of a and b.
func Max(a, b Vec3) Vec3 {
	return Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// Lerp linearly interpolates between two scalars at alpha in [0,1].
func Lerp(a, b, alpha float64) float64 {
	return a + (b-a)*alpha
}

// Color is an RGB placeholder color (no spectral or tone-mapping concerns).
type Color = Vec3

// ZUpToVec reorients a direction sampled in the local z-up hemisphere frame
// so that its pole aligns with the given normal n.
func ZUpToVec(dir Vec3, n Vec3) Vec3 {
	// Build an orthonormal basis (t, b, n) around n.
	var t Vec3
	if math.Abs(n.X) > math.Abs(n.Z) {
		t = Vec3{-n.Y, n.X, 0}
	} else {
		t = Vec3{0, -n.Z, n.Y}
	}
	t = t.Normalized()
	b := n.Cross(t)
	return t.Scale(dir.X).Add(b.Scale(dir.Y)).Add(n.Scale(dir.Z))
}

// CosineSampleHemisphere draws a direction from the cosine-weighted
// hemisphere around the local z axis, given two uniform random numbers
// u1, u2 in [0,1).
func CosineSampleHemisphere(u1, u2 float64) Vec3 {
	r := math.Sqrt(u1)
	theta := 2 * math.Pi * u2
	x := r * math.Cos(theta)
	y := r * math.Sin(theta)
	z := math.Sqrt(math.Max(0, 1-u1))
	return Vec3{x, y, z}
}

// Lambert returns the clamped dot product of two normalized directions,
// used as the placeholder diffuse BxDF response.
func Lambert(a, b Vec3) float64 {
	f := a.Normalized().Dot(b.Normalized())
	if f < 0 {
		return 0
	}
	return f
}
