package primitive_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/pathforge/primitive"
	"github.com/katalvlaran/pathforge/stats"
	"github.com/katalvlaran/pathforge/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finalized(origin, dir vecmath.Vec3) *vecmath.Ray {
	r := &vecmath.Ray{Origin: origin, Dir: dir, MaxT: math.Inf(1)}
	r.Finalize()
	return r
}

func TestSphere_Bounds(t *testing.T) {
	t.Parallel()

	s := primitive.NewSphere(vecmath.Vec3{X: 1, Y: 2, Z: 3}, 2, nil)
	bbox := s.Bounds()
	require.Len(t, bbox, 1)
	assert.Equal(t, vecmath.Vec3{X: -1, Y: 0, Z: 1}, bbox[0].Min)
	assert.Equal(t, vecmath.Vec3{X: 3, Y: 4, Z: 5}, bbox[0].Max)
}

func TestSphere_IsTraceable_AlwaysTrue(t *testing.T) {
	t.Parallel()

	s := primitive.NewSphere(vecmath.Vec3{}, 1, nil)
	assert.True(t, s.IsTraceable(0.001))
	assert.True(t, s.IsTraceable(1000))
}

func TestSphere_Refine_ReturnsNil(t *testing.T) {
	t.Parallel()

	s := primitive.NewSphere(vecmath.Vec3{}, 1, nil)
	assert.Nil(t, s.Refine())
}

func TestSphere_IntersectRay_DirectHit(t *testing.T) {
	t.Parallel()

	st := &stats.Counters{}
	s := primitive.NewSphere(vecmath.Vec3{X: 0, Y: 0, Z: 5}, 1, st)
	r := finalized(vecmath.Vec3{}, vecmath.Vec3{X: 0, Y: 0, Z: 1})

	in := vecmath.NewIntersection()
	hit := s.IntersectRay(r, &in)

	require.True(t, hit)
	assert.True(t, in.Hit)
	assert.InDelta(t, 4.0, in.T, 1e-9)
	assert.InDelta(t, -1.0, in.N.Z, 1e-9)
	assert.False(t, in.Backfacing)
	assert.EqualValues(t, 1, st.PrimitiveRayTests())
}

func TestSphere_IntersectRay_Miss(t *testing.T) {
	t.Parallel()

	s := primitive.NewSphere(vecmath.Vec3{X: 10, Y: 0, Z: 5}, 1, nil)
	r := finalized(vecmath.Vec3{}, vecmath.Vec3{X: 0, Y: 0, Z: 1})

	in := vecmath.NewIntersection()
	hit := s.IntersectRay(r, &in)

	assert.False(t, hit)
	assert.False(t, in.Hit)
}

func TestSphere_IntersectRay_OriginInsideSphere(t *testing.T) {
	t.Parallel()

	s := primitive.NewSphere(vecmath.Vec3{}, 5, nil)
	r := finalized(vecmath.Vec3{}, vecmath.Vec3{X: 0, Y: 0, Z: 1})

	in := vecmath.NewIntersection()
	hit := s.IntersectRay(r, &in)

	require.True(t, hit)
	assert.InDelta(t, 5.0, in.T, 1e-9)
}

func TestSphere_IntersectRay_TangentRayReportsSingleRootOnPositiveSide(t *testing.T) {
	t.Parallel()

	// A ray travelling along +Z, offset along X by exactly the radius, is
	// tangent to the sphere: discriminant == 0, t0 == t1.
	s := primitive.NewSphere(vecmath.Vec3{X: 0, Y: 0, Z: 5}, 1, nil)
	r := finalized(vecmath.Vec3{X: 1, Y: 0, Z: 0}, vecmath.Vec3{X: 0, Y: 0, Z: 1})

	in := vecmath.NewIntersection()
	hit := s.IntersectRay(r, &in)

	require.True(t, hit)
	assert.InDelta(t, 5.0, in.T, 1e-6)
	assert.Greater(t, in.T, 0.0)
}

func TestSphere_IntersectRay_RejectsFartherThanExistingHit(t *testing.T) {
	t.Parallel()

	s := primitive.NewSphere(vecmath.Vec3{X: 0, Y: 0, Z: 10}, 1, nil)
	r := finalized(vecmath.Vec3{}, vecmath.Vec3{X: 0, Y: 0, Z: 1})

	in := vecmath.NewIntersection()
	in.T = 3 // a closer hit already recorded by another primitive

	hit := s.IntersectRay(r, &in)
	assert.False(t, hit)
	assert.InDelta(t, 3.0, in.T, 1e-9)
}

func TestSphere_IntersectRay_TimeSampledMovesCenter(t *testing.T) {
	t.Parallel()

	s := primitive.NewSphereTimeSampled(2, nil)
	s.AddTimeSample(0, vecmath.Vec3{X: -5, Y: 0, Z: 5}, 1)
	s.AddTimeSample(1, vecmath.Vec3{X: 5, Y: 0, Z: 5}, 1)

	rStart := finalized(vecmath.Vec3{X: -5, Y: 0, Z: 0}, vecmath.Vec3{X: 0, Y: 0, Z: 1})
	rStart.Time = 0
	in := vecmath.NewIntersection()
	require.True(t, s.IntersectRay(rStart, &in))
	assert.InDelta(t, 4.0, in.T, 1e-6)

	rMiss := finalized(vecmath.Vec3{X: -5, Y: 0, Z: 0}, vecmath.Vec3{X: 0, Y: 0, Z: 1})
	rMiss.Time = 1
	inMiss := vecmath.NewIntersection()
	assert.False(t, s.IntersectRay(rMiss, &inMiss))
}
