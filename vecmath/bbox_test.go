package vecmath_test

import (
	"testing"

	"github.com/katalvlaran/pathforge/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBBox_IntersectRay(t *testing.T) {
	t.Parallel()

	box := vecmath.BBox{Min: vecmath.Vec3{X: -1, Y: -1, Z: -1}, Max: vecmath.Vec3{X: 1, Y: 1, Z: 1}}

	tests := []struct {
		name    string
		ray     vecmath.Ray
		wantHit bool
	}{
		{
			name:    "straight through center",
			ray:     vecmath.Ray{Origin: vecmath.Vec3{X: 0, Y: 0, Z: -5}, Dir: vecmath.Vec3{X: 0, Y: 0, Z: 1}, MaxT: 100},
			wantHit: true,
		},
		{
			name:    "misses to the side",
			ray:     vecmath.Ray{Origin: vecmath.Vec3{X: 5, Y: 5, Z: -5}, Dir: vecmath.Vec3{X: 0, Y: 0, Z: 1}, MaxT: 100},
			wantHit: false,
		},
		{
			name:    "behind ray origin (negative t only)",
			ray:     vecmath.Ray{Origin: vecmath.Vec3{X: 0, Y: 0, Z: 5}, Dir: vecmath.Vec3{X: 0, Y: 0, Z: 1}, MaxT: 100},
			wantHit: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.ray
			r.Finalize()
			_, _, hit := box.IntersectRay(&r)
			assert.Equal(t, tc.wantHit, hit)
		})
	}
}

func TestBBoxT_AtInterpolatesBetweenSamples(t *testing.T) {
	t.Parallel()

	bt := vecmath.BBoxT{
		{Min: vecmath.Vec3{X: 0, Y: 0, Z: 0}, Max: vecmath.Vec3{X: 1, Y: 1, Z: 1}},
		{Min: vecmath.Vec3{X: 2, Y: 0, Z: 0}, Max: vecmath.Vec3{X: 3, Y: 1, Z: 1}},
	}

	mid := bt.At(0.5)
	assert.InDelta(t, 1.0, mid.Min.X, 1e-9)
	assert.InDelta(t, 2.0, mid.Max.X, 1e-9)

	start := bt.At(0)
	assert.Equal(t, bt[0], start)

	end := bt.At(1)
	assert.Equal(t, bt[1], end)
}

func TestBBoxT_SingleSampleIgnoresTime(t *testing.T) {
	t.Parallel()

	bt := vecmath.BBoxT{{Min: vecmath.Vec3{X: -1}, Max: vecmath.Vec3{X: 1}}}
	require.Equal(t, bt[0], bt.At(0.0))
	require.Equal(t, bt[0], bt.At(0.73))
	require.Equal(t, bt[0], bt.At(1.0))
}

func TestBBox_Union(t *testing.T) {
	t.Parallel()

	a := vecmath.BBox{Min: vecmath.Vec3{X: 0, Y: 0, Z: 0}, Max: vecmath.Vec3{X: 1, Y: 1, Z: 1}}
	b := vecmath.BBox{Min: vecmath.Vec3{X: -1, Y: 2, Z: 0}, Max: vecmath.Vec3{X: 0.5, Y: 3, Z: 1}}
	u := a.Union(b)
	assert.Equal(t, vecmath.Vec3{X: -1, Y: 0, Z: 0}, u.Min)
	assert.Equal(t, vecmath.Vec3{X: 1, Y: 3, Z: 1}, u.Max)
}
