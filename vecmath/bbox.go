package vecmath

import (
	"github.com/katalvlaran/pathforge/timesample"
)

// BBox is a single axis-aligned bounding box.
type BBox struct {
	Min, Max Vec3
}

// Union returns the smallest box containing both a and b.
func (a BBox) Union(b BBox) BBox {
	return BBox{Min: Min(a.Min, b.Min), Max: Max(a.Max, b.Max)}
}

// IntersectRay performs the slab test against this box for the given ray,
// returning the entry/exit parametric distances and whether they overlap
// the ray's range [0, ray.MaxT].
func (b BBox) IntersectRay(r *Ray) (tnear, tfar float64, hit bool) {
	tnear = 0
	tfar = r.MaxT

	bounds := [2][3]float64{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
	invDir := [3]float64{r.invDir.X, r.invDir.Y, r.invDir.Z}
	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}

	for axis := 0; axis < 3; axis++ {
		sign := r.signBits[axis]
		tMin := (bounds[sign][axis] - origin[axis]) * invDir[axis]
		tMax := (bounds[1-sign][axis] - origin[axis]) * invDir[axis]
		if tMin > tnear {
			tnear = tMin
		}
		if tMax < tfar {
			tfar = tMax
		}
		if tnear > tfar {
			return 0, 0, false
		}
	}

	return tnear, tfar, true
}

// BBoxT is an ordered sequence of per-time-sample bounding boxes.
type BBoxT []BBox

// At interpolates the AABB at time t in [0,1], treating the sequence as a
// uniformly spaced set of time samples.
func (bt BBoxT) At(t float64) BBox {
	if len(bt) == 0 {
		return BBox{}
	}
	times := timesample.Uniform(len(bt))
	ia, ib, alpha := timesample.Query(times, t)
	return BBox{
		Min: bt[ia].Min.Lerp(bt[ib].Min, alpha),
		Max: bt[ia].Max.Lerp(bt[ib].Max, alpha),
	}
}

// IntersectRay interpolates the box at the ray's time and performs the
// slab test against it.
func (bt BBoxT) IntersectRay(r *Ray) (tnear, tfar float64, hit bool) {
	return bt.At(r.Time).IntersectRay(r)
}

// Union returns the box bounding every time sample in bt.
func (bt BBoxT) Union() BBox {
	if len(bt) == 0 {
		return BBox{}
	}
	result := bt[0]
	for _, b := range bt[1:] {
		result = result.Union(b)
	}
	return result
}

// Diagonal returns the length of the box's diagonal, used by dice-rate
// estimation.
func (b BBox) Diagonal() float64 {
	return b.Max.Sub(b.Min).Length()
}
