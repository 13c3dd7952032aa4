package primitive

import (
	"github.com/katalvlaran/pathforge/stats"
	"github.com/katalvlaran/pathforge/timesample"
	"github.com/katalvlaran/pathforge/vecmath"
)

// gridVertex is one diced micropolygon vertex: a position and the
// shading normal computed from its neighbors in calcNormals.
type gridVertex struct {
	P vecmath.Vec3
	N vecmath.Vec3
}

// Grid is a diced micropolygon mesh, the leaf representation a Bilinear
// patch refines down to. It is always traceable and never
// refines further.
type Grid struct {
	ru, rv int
	verts  [][]gridVertex // verts[time][rv*x+y], see index
	times  timesample.Set[[]gridVertex]
	bbox   vecmath.BBoxT
	stats  *stats.Counters
}

func newGrid(ru, rv, nTimes int) *Grid {
	verts := make([][]gridVertex, nTimes)
	for i := range verts {
		verts[i] = make([]gridVertex, ru*rv)
	}
	return &Grid{ru: ru, rv: rv, verts: verts}
}

func (g *Grid) index(x, y int) int { return g.rv*x + y }

// calcNormals derives a per-vertex normal at each time sample by
// averaging the face normals of the up-to-four micropolygon corners
// touching that vertex.
func (g *Grid) calcNormals() {
	for time, verts := range g.verts {
		accum := make([]vecmath.Vec3, len(verts))
		for x := 0; x < g.ru-1; x++ {
			for y := 0; y < g.rv-1; y++ {
				i00 := g.index(x, y)
				i10 := g.index(x+1, y)
				i01 := g.index(x, y+1)
				i11 := g.index(x+1, y+1)

				p00, p10, p01, p11 := verts[i00].P, verts[i10].P, verts[i01].P, verts[i11].P

				n1 := p10.Sub(p00).Cross(p01.Sub(p00))
				n2 := p11.Sub(p10).Cross(p01.Sub(p10))

				accum[i00] = accum[i00].Add(n1)
				accum[i10] = accum[i10].Add(n1).Add(n2)
				accum[i01] = accum[i01].Add(n1).Add(n2)
				accum[i11] = accum[i11].Add(n2)
			}
		}
		for i := range verts {
			verts[i].N = accum[i].Normalized()
		}
		_ = time
	}
}

// finalize computes the grid's bounding box across every time sample and
// builds the time-sample accessor used by IntersectRay.
func (g *Grid) finalize() {
	bbox := make(vecmath.BBoxT, len(g.verts))
	for time, verts := range g.verts {
		box := vecmath.BBox{Min: verts[0].P, Max: verts[0].P}
		for _, v := range verts[1:] {
			box.Min = vecmath.Min(box.Min, v.P)
			box.Max = vecmath.Max(box.Max, v.P)
		}
		bbox[time] = box
	}
	g.bbox = bbox
	g.times = timesample.NewUniform(g.verts)
}

// Bounds returns the grid's per-time bounding box.
func (g *Grid) Bounds() vecmath.BBoxT { return g.bbox }

// IsTraceable is always true: a grid is already diced.
func (g *Grid) IsTraceable(rayWidth float64) bool { return true }

// Refine is never called on a Grid.
func (g *Grid) Refine() []Primitive { return nil }

// vertexAt interpolates vertex i between the bracketing time samples for
// ray time t.
func (g *Grid) vertexAt(i int, t float64) gridVertex {
	if g.times.Len() == 1 {
		return g.times.Values[0][i]
	}
	ia, ib, alpha := g.times.Query(t)
	a, b := g.times.Values[ia][i], g.times.Values[ib][i]
	return gridVertex{
		P: a.P.Lerp(b.P, alpha),
		N: a.N.Lerp(b.N, alpha).Normalized(),
	}
}

// IntersectRay tests every micropolygon in the grid, each split into two
// triangles, keeping the closest hit nearer than any already recorded in
// in.
func (g *Grid) IntersectRay(r *vecmath.Ray, in *vecmath.Intersection) bool {
	hitAny := false

	for x := 0; x < g.ru-1; x++ {
		for y := 0; y < g.rv-1; y++ {
			v00 := g.vertexAt(g.index(x, y), r.Time)
			v10 := g.vertexAt(g.index(x+1, y), r.Time)
			v01 := g.vertexAt(g.index(x, y+1), r.Time)
			v11 := g.vertexAt(g.index(x+1, y+1), r.Time)

			if g.stats != nil {
				g.stats.AddPrimitiveRayTest()
			}

			if g.intersectTriangle(r, in, v00, v10, v11) {
				hitAny = true
			}
			if g.intersectTriangle(r, in, v00, v11, v01) {
				hitAny = true
			}
		}
	}

	return hitAny
}

// intersectTriangle is a Moller-Trumbore ray/triangle test, updating in
// when the hit is closer than any already recorded.
func (g *Grid) intersectTriangle(r *vecmath.Ray, in *vecmath.Intersection, a, b, c gridVertex) bool {
	const epsilon = 1e-9

	edge1 := b.P.Sub(a.P)
	edge2 := c.P.Sub(a.P)
	pvec := r.Dir.Cross(edge2)
	det := edge1.Dot(pvec)
	if det > -epsilon && det < epsilon {
		return false
	}
	invDet := 1.0 / det

	tvec := r.Origin.Sub(a.P)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return false
	}

	qvec := tvec.Cross(edge1)
	v := r.Dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return false
	}

	t := edge2.Dot(qvec) * invDet
	if t < vecmath.MinHitDistance || t >= r.MaxT || t > in.T {
		return false
	}

	p := r.Origin.Add(r.Dir.Scale(t))
	n := a.N.Scale(1 - u - v).Add(b.N.Scale(u)).Add(c.N.Scale(v)).Normalized()

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

// dice refines the bilinear patch into a ru x rv micropolygon Grid, at
// every time sample, walking the control quad exactly as the original
// dicing pass does: two edges subdivided along u, the points between
// them subdivided along v.
func (b *Bilinear) dice(ru, rv int) *Grid {
	if b.stats != nil {
		b.stats.AddMicropolygons(int64((ru - 1) * (rv - 1)))
	}

	grid := newGrid(ru, rv, b.quads.Len())
	grid.stats = b.stats

	for time, q := range b.quads.Values {
		du1 := q[1].Sub(q[0]).Scale(1.0 / float64(ru-1))
		du2 := q[2].Sub(q[3]).Scale(1.0 / float64(ru-1))

		p1 := q[0]
		p2 := q[3]

		for x := 0; x < ru; x++ {
			dv := p2.Sub(p1).Scale(1.0 / float64(rv-1))
			p3 := p1

			for y := 0; y < rv; y++ {
				grid.verts[time][grid.index(x, y)].P = p3
				p3 = p3.Add(dv)
			}

			p1 = p1.Add(du1)
			p2 = p2.Add(du2)
		}
	}

	grid.calcNormals()
	grid.finalize()

	return grid
}
