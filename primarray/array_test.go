package primarray_test

import (
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/pathforge/primarray"
	"github.com/katalvlaran/pathforge/primitive"
	"github.com/katalvlaran/pathforge/stats"
	"github.com/katalvlaran/pathforge/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finalizedRay(origin, dir vecmath.Vec3) *vecmath.Ray {
	r := &vecmath.Ray{Origin: origin, Dir: dir, MaxT: math.Inf(1)}
	r.Finalize()
	return r
}

// leafPrimitive is an always-traceable primitive that reports a fixed
// hit distance t along +Z through the origin.
type leafPrimitive struct {
	t float64
}

func (l *leafPrimitive) Bounds() vecmath.BBoxT {
	return vecmath.BBoxT{{Min: vecmath.Vec3{X: -1, Y: -1, Z: l.t - 1}, Max: vecmath.Vec3{X: 1, Y: 1, Z: l.t + 1}}}
}
func (l *leafPrimitive) IsTraceable(float64) bool      { return true }
func (l *leafPrimitive) Refine() []primitive.Primitive { return nil }
func (l *leafPrimitive) IntersectRay(r *vecmath.Ray, in *vecmath.Intersection) bool {
	if l.t >= r.MaxT || l.t > in.T {
		return false
	}
	in.Hit = true
	in.T = l.t
	return true
}

// splittingPrimitive reports itself untraceable exactly once, then
// Refine()s into two leafPrimitives.
type splittingPrimitive struct {
	refined   atomic.Bool
	refineErr bool // set true if Refine is called more than once
	leftT     float64
	rightT    float64
}

func (s *splittingPrimitive) Bounds() vecmath.BBoxT {
	return vecmath.BBoxT{{Min: vecmath.Vec3{X: -1, Y: -1, Z: -1}, Max: vecmath.Vec3{X: 1, Y: 1, Z: 10}}}
}
func (s *splittingPrimitive) IsTraceable(float64) bool { return false }
func (s *splittingPrimitive) Refine() []primitive.Primitive {
	if !s.refined.CompareAndSwap(false, true) {
		s.refineErr = true
	}
	return []primitive.Primitive{&leafPrimitive{t: s.leftT}, &leafPrimitive{t: s.rightT}}
}
func (s *splittingPrimitive) IntersectRay(r *vecmath.Ray, in *vecmath.Intersection) bool {
	panic("splittingPrimitive is never directly traceable")
}

func TestArray_IntersectRay_HitsLeafDirectly(t *testing.T) {
	t.Parallel()

	a := primarray.New(nil)
	a.AddPrimitives(&leafPrimitive{t: 5})
	a.Finalize()

	r := finalizedRay(vecmath.Vec3{}, vecmath.Vec3{X: 0, Y: 0, Z: 1})
	in := vecmath.NewIntersection()
	hit := a.IntersectRay(r, &in)

	require.True(t, hit)
	assert.InDelta(t, 5.0, in.T, 1e-9)
}

func TestArray_IntersectRay_ClosestOfTwoLeavesWins(t *testing.T) {
	t.Parallel()

	a := primarray.New(nil)
	a.AddPrimitives(&leafPrimitive{t: 8}, &leafPrimitive{t: 3})
	a.Finalize()

	r := finalizedRay(vecmath.Vec3{}, vecmath.Vec3{X: 0, Y: 0, Z: 1})
	in := vecmath.NewIntersection()
	hit := a.IntersectRay(r, &in)

	require.True(t, hit)
	assert.InDelta(t, 3.0, in.T, 1e-9)
}

func TestArray_IntersectRay_SplitsUntraceablePrimitiveAndHitsChild(t *testing.T) {
	t.Parallel()

	sp := &splittingPrimitive{leftT: 9, rightT: 4}
	a := primarray.New(&stats.Counters{})
	a.AddPrimitives(sp)
	a.Finalize()

	r := finalizedRay(vecmath.Vec3{}, vecmath.Vec3{X: 0, Y: 0, Z: 1})
	in := vecmath.NewIntersection()
	hit := a.IntersectRay(r, &in)

	require.True(t, hit)
	assert.InDelta(t, 4.0, in.T, 1e-9)
	assert.False(t, sp.refineErr)
	assert.Equal(t, 2, a.Len())
}

func TestArray_IntersectRay_ShadowRayStopsAtFirstHit(t *testing.T) {
	t.Parallel()

	a := primarray.New(nil)
	a.AddPrimitives(&leafPrimitive{t: 3}, &leafPrimitive{t: 7})
	a.Finalize()

	r := finalizedRay(vecmath.Vec3{}, vecmath.Vec3{X: 0, Y: 0, Z: 1})
	r.IsShadowRay = true
	in := vecmath.NewIntersection()
	hit := a.IntersectRay(r, &in)

	require.True(t, hit)
	assert.InDelta(t, 3.0, in.T, 1e-9)
}

func TestArray_IntersectRay_MissesWhenBoundsMiss(t *testing.T) {
	t.Parallel()

	a := primarray.New(nil)
	a.AddPrimitives(&leafPrimitive{t: 5})
	a.Finalize()

	// Perpendicular ray that never enters the leaf's bounding box.
	r := finalizedRay(vecmath.Vec3{X: 100, Y: 100, Z: 0}, vecmath.Vec3{X: 0, Y: 0, Z: 1})
	in := vecmath.NewIntersection()
	assert.False(t, a.IntersectRay(r, &in))
}

func TestArray_IntersectRay_WithRealSphere(t *testing.T) {
	t.Parallel()

	st := &stats.Counters{}
	a := primarray.New(st)
	a.AddPrimitives(primitive.NewSphere(vecmath.Vec3{X: 0, Y: 0, Z: 5}, 1, st))
	a.Finalize()

	r := finalizedRay(vecmath.Vec3{}, vecmath.Vec3{X: 0, Y: 0, Z: 1})
	in := vecmath.NewIntersection()
	hit := a.IntersectRay(r, &in)

	require.True(t, hit)
	assert.InDelta(t, 4.0, in.T, 1e-9)
}

func TestArray_IntersectRay_ConcurrentRaysDoNotRace(t *testing.T) {
	t.Parallel()

	st := &stats.Counters{}
	a := primarray.New(st)
	for i := 0; i < 20; i++ {
		a.AddPrimitives(&splittingPrimitive{leftT: float64(10 + i), rightT: float64(i) + 0.5})
	}
	a.Finalize()

	var wg sync.WaitGroup
	hits := make([]bool, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := finalizedRay(vecmath.Vec3{}, vecmath.Vec3{X: 0, Y: 0, Z: 1})
			in := vecmath.NewIntersection()
			hits[i] = a.IntersectRay(r, &in)
		}(i)
	}
	wg.Wait()

	for _, h := range hits {
		assert.True(t, h)
	}
	assert.Equal(t, 40, a.Len())
}
