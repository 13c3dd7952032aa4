package primitive

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/pathforge/config"
	"github.com/katalvlaran/pathforge/gridcache"
	"github.com/katalvlaran/pathforge/stats"
	"github.com/katalvlaran/pathforge/timesample"
	"github.com/katalvlaran/pathforge/vecmath"
)

// quad is one time sample's four control points, in the order
// [v0, v1, v2, v3] walking around the patch (v0-v1 and v3-v2 are the
// u-edges; v0-v3 and v1-v2 are the v-edges).
type quad [4]vecmath.Vec3

// fixedDiceRate is the dice rate used when a patch is diced with no
// footprint information (ray width <= 0).
const fixedDiceRate = 9

// Bilinear is a time-sampled bilinear patch. It lazily dices into a
// Grid, cached in a shared gridcache.Cache under a key the patch
// remembers.
type Bilinear struct {
	quads timesample.Set[quad]
	cache *gridcache.Cache
	cfg   *config.Config
	stats *stats.Counters

	bboxOnce sync.Once
	bbox     vecmath.BBoxT

	// lastRayWidth is the narrowest ray footprint width this patch has
	// accepted as traceable; stored as float64 bits so it can be read
	// and updated atomically under concurrent traversal.
	lastRayWidthBits atomic.Uint64

	// diceMu serializes the check-cache / compute-dice-rate / dice /
	// cache.Add critical section, so two rays that reach an undiced
	// patch concurrently don't both dice it.
	diceMu  sync.Mutex
	gridKey uint64
	hasGrid atomic.Bool
}

// NewBilinear constructs a single-time-sample bilinear patch from four
// control points, in the order described on quad.
func NewBilinear(v0, v1, v2, v3 vecmath.Vec3, cache *gridcache.Cache, cfg *config.Config, st *stats.Counters) *Bilinear {
	b := NewBilinearTimeSampled(1, cache, cfg, st)
	b.AddTimeSample(0, v0, v1, v2, v3)
	return b
}

// NewBilinearTimeSampled constructs a patch with n time samples, to be
// filled in via AddTimeSample.
func NewBilinearTimeSampled(n int, cache *gridcache.Cache, cfg *config.Config, st *stats.Counters) *Bilinear {
	b := &Bilinear{
		quads: timesample.NewUniform(make([]quad, n)),
		cache: cache,
		cfg:   cfg,
		stats: st,
	}
	b.lastRayWidthBits.Store(math.Float64bits(math.Inf(1)))
	return b
}

// AddTimeSample fills in the control quad for time sample i.
func (b *Bilinear) AddTimeSample(i int, v0, v1, v2, v3 vecmath.Vec3) {
	b.quads.Values[i] = quad{v0, v1, v2, v3}
}

// Bounds returns the per-time AABB of the four control points.
func (b *Bilinear) Bounds() vecmath.BBoxT {
	b.bboxOnce.Do(func() {
		bbox := make(vecmath.BBoxT, b.quads.Len())
		for i, q := range b.quads.Values {
			box := vecmath.BBox{Min: q[0], Max: q[0]}
			for _, v := range q[1:] {
				box.Min = vecmath.Min(box.Min, v)
				box.Max = vecmath.Max(box.Max, v)
			}
			bbox[i] = box
		}
		b.bbox = bbox
	})
	return b.bbox
}

// edgeLengths returns the total u-edge and v-edge lengths of the time-0
// control quad, used by both IsTraceable and Refine.
func (b *Bilinear) edgeLengths() (lu, lv float64) {
	q := b.quads.Values[0]
	lu = q[0].Sub(q[1]).Length() + q[3].Sub(q[2]).Length()
	lv = q[0].Sub(q[3]).Length() + q[1].Sub(q[2]).Length()
	return lu, lv
}

// diceRate chooses a grid resolution from the ray footprint width.
func (b *Bilinear) diceRate(upolyWidth float64) int {
	if upolyWidth <= 0 {
		return fixedDiceRate
	}
	size := b.Bounds()[0].Diagonal() / 1.4
	rate := 1 + int(size/(upolyWidth*b.cfg.DiceRate))
	if rate < 2 {
		rate = 2
	}
	return rate
}

// IsTraceable admits the patch when w is strictly narrower than the
// narrowest width previously accepted, the chosen dice rate does not
// exceed Config.MaxGridSize, and the u/v edge-length ratio lies in
// [0.75, 1.5]. On acceptance it remembers w as the new narrowest width.
// A width at or above the remembered one, or a non-positive width, is
// admitted without these checks.
func (b *Bilinear) IsTraceable(w float64) bool {
	for {
		cur := math.Float64frombits(b.lastRayWidthBits.Load())
		if !(w < cur && w > 0) {
			return true
		}

		lu, lv := b.edgeLengths()
		edgeRatio := lu / lv
		rate := b.diceRate(w)

		if rate > b.cfg.MaxGridSize || edgeRatio < 0.75 || edgeRatio > 1.5 {
			return false
		}

		if b.lastRayWidthBits.CompareAndSwap(math.Float64bits(cur), math.Float64bits(w)) {
			return true
		}
		// Lost the race to another worker narrowing the width first; retry.
	}
}

// Refine splits the patch along its longer edge, producing two children
// whose control points are the original corners and the midpoints of the
// split edges, preserved across every time sample.
func (b *Bilinear) Refine() []Primitive {
	if b.stats != nil {
		b.stats.AddSplit()
	}

	lu, lv := b.edgeLengths()
	n := b.quads.Len()
	left := NewBilinearTimeSampled(n, b.cache, b.cfg, b.stats)
	right := NewBilinearTimeSampled(n, b.cache, b.cfg, b.stats)

	for i, q := range b.quads.Values {
		if lu > lv {
			// Split on U.
			left.AddTimeSample(i, q[0], q[0].Add(q[1]).Scale(0.5), q[3].Add(q[2]).Scale(0.5), q[3])
			right.AddTimeSample(i, q[0].Add(q[1]).Scale(0.5), q[1], q[2], q[3].Add(q[2]).Scale(0.5))
		} else {
			// Split on V.
			left.AddTimeSample(i, q[0], q[1], q[1].Add(q[2]).Scale(0.5), q[3].Add(q[0]).Scale(0.5))
			right.AddTimeSample(i, q[3].Add(q[0]).Scale(0.5), q[1].Add(q[2]).Scale(0.5), q[2], q[3])
		}
	}

	return []Primitive{left, right}
}

// IntersectRay lazily dices the patch into a grid (or retrieves the
// cached one), touches the cache, and forwards the intersection to the
// grid. The bounds test and dice-rate computation both run
// only inside the cache-miss branch.
func (b *Bilinear) IntersectRay(r *vecmath.Ray, in *vecmath.Intersection) bool {
	key, ok := b.ensureGrid(r)
	if !ok {
		return false
	}
	b.cache.Touch(key)
	grid, ok := b.cache.Get(key)
	if !ok {
		// Evicted between ensureGrid and Get by another worker; redice.
		key, ok = b.ensureGrid(r)
		if !ok {
			return false
		}
		grid, ok = b.cache.Get(key)
		if !ok {
			return false
		}
	}
	return grid.IntersectRay(r, in)
}

func (b *Bilinear) ensureGrid(r *vecmath.Ray) (key uint64, hit bool) {
	b.diceMu.Lock()
	defer b.diceMu.Unlock()

	if b.hasGrid.Load() && b.cache.Exists(b.gridKey) {
		return b.gridKey, true
	}

	tnear, tfar, boxHit := b.Bounds().IntersectRay(r)
	if !boxHit {
		return 0, false
	}

	rate := b.diceRate(r.MinWidth(tnear, tfar))
	grid := b.dice(rate, rate)
	b.gridKey = b.cache.Add(grid)
	b.hasGrid.Store(true)
	return b.gridKey, true
}
