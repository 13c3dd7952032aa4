package primitive

import (
	"math"

	"github.com/katalvlaran/pathforge/stats"
	"github.com/katalvlaran/pathforge/timesample"
	"github.com/katalvlaran/pathforge/vecmath"
)

// sphereSample is one time sample of a Sphere's center and radius.
type sphereSample struct {
	Center vecmath.Vec3
	Radius float64
}

// Sphere is a time-sampled implicit sphere. It is always traceable and
// never refines.
type Sphere struct {
	samples timesample.Set[sphereSample]
	bbox    vecmath.BBoxT
	stats   *stats.Counters
}

// NewSphere constructs a single-time-sample sphere with the given center
// and radius.
func NewSphere(center vecmath.Vec3, radius float64, st *stats.Counters) *Sphere {
	return NewSphereTimeSampled(1, st).withSample(0, center, radius)
}

// NewSphereTimeSampled constructs a sphere with n time samples, to be
// filled in via AddTimeSample before use.
func NewSphereTimeSampled(n int, st *stats.Counters) *Sphere {
	return &Sphere{
		samples: timesample.NewUniform(make([]sphereSample, n)),
		stats:   st,
	}
}

// AddTimeSample fills in the center and radius for time sample i.
func (s *Sphere) AddTimeSample(i int, center vecmath.Vec3, radius float64) {
	s.samples.Values[i] = sphereSample{Center: center, Radius: radius}
	s.bbox = nil
}

func (s *Sphere) withSample(i int, center vecmath.Vec3, radius float64) *Sphere {
	s.AddTimeSample(i, center, radius)
	return s
}

// Bounds returns the per-time box [center-radius, center+radius].
func (s *Sphere) Bounds() vecmath.BBoxT {
	if s.bbox != nil {
		return s.bbox
	}
	bbox := make(vecmath.BBoxT, s.samples.Len())
	for i, samp := range s.samples.Values {
		r := vecmath.Vec3{X: samp.Radius, Y: samp.Radius, Z: samp.Radius}
		bbox[i] = vecmath.BBox{Min: samp.Center.Sub(r), Max: samp.Center.Add(r)}
	}
	s.bbox = bbox
	return bbox
}

// IsTraceable always returns true: implicit surfaces need no dicing.
func (s *Sphere) IsTraceable(rayWidth float64) bool {
	return true
}

// Refine is never called on a Sphere.
func (s *Sphere) Refine() []Primitive {
	return nil
}

// IntersectRay solves the ray/sphere quadratic using the numerically
// stable form, at the sphere's center/radius interpolated
// to the ray's time.
func (s *Sphere) IntersectRay(r *vecmath.Ray, in *vecmath.Intersection) bool {
	if s.stats != nil {
		s.stats.AddPrimitiveRayTest()
	}

	var cent vecmath.Vec3
	var radi float64
	if s.samples.Len() == 1 {
		cent, radi = s.samples.Values[0].Center, s.samples.Values[0].Radius
	} else {
		ia, ib, alpha := s.samples.Query(r.Time)
		a, b := s.samples.Values[ia], s.samples.Values[ib]
		cent = a.Center.Lerp(b.Center, alpha)
		radi = vecmath.Lerp(a.Radius, b.Radius, alpha)
	}

	o := r.Origin.Sub(cent)
	d := r.Dir

	a := d.Length2()
	b := 2.0 * d.Dot(o)
	c := o.Length2() - radi*radi

	discriminant := b*b - 4.0*a*c
	if discriminant < 0 {
		return false
	}
	discriminant = math.Sqrt(discriminant)

	var q float64
	if b < 0 {
		q = -0.5 * (b - discriminant)
	} else {
		q = -0.5 * (b + discriminant)
	}

	t0 := q / a
	var t1 float64
	if q != 0 {
		t1 = c / q
	} else {
		t1 = r.MaxT
	}
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	if t0 >= r.MaxT || t1 < vecmath.MinHitDistance {
		return false
	}

	var t float64
	if t0 >= vecmath.MinHitDistance {
		t = t0
	} else if t1 < r.MaxT {
		t = t1
	} else {
		return false
	}

	if t > in.T {
		return false
	}

	p := r.Origin.Add(r.Dir.Scale(t))
	n := p.Sub(cent).Normalized()

	in.Hit = true
	in.T = t
	in.P = p
	in.N = n
	in.Incoming = r.Dir
	in.Offset = n.Scale(vecmath.SurfaceOffsetEpsilon)
	in.Backfacing = n.Dot(r.Dir) > 0
	in.Col = vecmath.Color{X: (n.X + 1) / 2, Y: (n.Y + 1) / 2, Z: (n.Z + 1) / 2}
	in.OW = r.OW + r.DW*t
	in.DW = r.DW

	return true
}
