package integrator

import (
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/pathforge/bucket"
	"github.com/katalvlaran/pathforge/bucketqueue"
	"github.com/katalvlaran/pathforge/config"
	"github.com/katalvlaran/pathforge/film"
	"github.com/katalvlaran/pathforge/imagesampler"
	"github.com/katalvlaran/pathforge/scene"
	"github.com/katalvlaran/pathforge/stats"
	"github.com/katalvlaran/pathforge/vecmath"
)

// bounceFootprintWidth is the differential width assigned to every
// bounce ray, independent of the hit it left.
const bounceFootprintWidth = 0.15

// ProgressFunc is invoked once per bucket, inside the film's
// accumulation lock, after that bucket's samples have been flushed. It
// is not invoked when Config.NoOutput is set, since no flush happens
// then. It must not panic; behavior is undefined if it does.
type ProgressFunc func()

// Integrator runs the bucketed, wavefront-style path tracer.
type Integrator struct {
	scene          *scene.Scene
	film           *film.Film
	cfg            *config.Config
	imageW, imageH int
	spp            int
	pathLength     int
	threadCount    int
	seed           uint64
	stats          *stats.Counters
	progress       ProgressFunc
}

// New builds an Integrator that renders sc into f. pathLength and
// threadCount are clamped to at least 1.
func New(sc *scene.Scene, f *film.Film, cfg *config.Config, spp, pathLength, threadCount int, seed uint64, st *stats.Counters, progress ProgressFunc) *Integrator {
	if pathLength < 1 {
		pathLength = 1
	}
	if threadCount < 1 {
		threadCount = 1
	}
	return &Integrator{
		scene: sc, film: f, cfg: cfg,
		imageW: f.Width(), imageH: f.Height(),
		spp: spp, pathLength: pathLength, threadCount: threadCount,
		seed: seed, stats: st, progress: progress,
	}
}

// bucketSize targets roughly four buckets per worker thread.
func (itg *Integrator) bucketSize() int {
	maxBucket := math.Sqrt(float64(itg.imageW*itg.imageH) / (4 * float64(itg.threadCount)))
	size := math.Sqrt(float64(itg.cfg.SamplesPerBucket) / float64(itg.spp))
	if size > maxBucket {
		size = maxBucket
	}
	if size < 1 {
		size = 1
	}
	return int(size)
}

// Integrate spawns thread_count worker goroutines draining a
// Morton-ordered bucket queue and blocks until every bucket has been
// traced and its samples flushed to the film.
func (itg *Integrator) Integrate() error {
	bsize := itg.bucketSize()
	queue := bucketqueue.New(itg.threadCount * bucketqueue.DefaultCapacityFactor)

	var g errgroup.Group
	for w := 0; w < itg.threadCount; w++ {
		workerSeed := itg.seed + uint64(w)
		g.Go(func() error {
			itg.runWorker(queue, workerSeed)
			return nil
		})
	}

	itg.produce(queue, bsize)

	return g.Wait()
}

// produce is the single Morton-ordered bucket producer.
func (itg *Integrator) produce(queue *bucketqueue.Queue, bsize int) {
	greaterWidth := itg.imageW > itg.imageH
	mortonStop := 2 * maxInt(itg.imageW, itg.imageH)

	for i := uint32(0); ; i++ {
		a, b := bucket.D2XY(i)
		var bx, by uint32
		if greaterWidth {
			bx, by = b, a
		} else {
			bx, by = a, b
		}

		xp := int(bx) * bsize
		yp := int(by) * bsize

		if xp < itg.imageW && yp < itg.imageH {
			w := minInt(itg.imageW-xp, bsize)
			h := minInt(itg.imageH-yp, bsize)
			queue.PushBlocking(bucket.Block{X: xp, Y: yp, W: w, H: h})
		}

		if xp >= mortonStop && yp >= mortonStop {
			break
		}
	}

	queue.DisallowBlocking()
}

func (itg *Integrator) runWorker(queue *bucketqueue.Queue, seed uint64) {
	rng := imagesampler.NewRNG(seed)
	sampler := imagesampler.New(itg.spp)

	for {
		b, ok := queue.PopBlocking()
		if !ok {
			return
		}
		itg.renderBucket(b, sampler, rng)
	}
}

// ptPath tracks one in-flight path's accumulated state across bounces.
type ptPath struct {
	px, py int
	sample imagesampler.Sample

	inter vecmath.Intersection
	col   vecmath.Color // accumulated radiance
	fcol  vecmath.Color // accumulated throughput filter
	done  bool
}

func (itg *Integrator) renderBucket(b bucket.Block, sampler *imagesampler.Sampler, rng *rand.Rand) {
	paths := itg.seedPaths(b, sampler, rng)

	for n := 0; n < itg.pathLength; n++ {
		var rays []*vecmath.Ray
		var owners []*ptPath

		if n == 0 {
			rays = itg.buildCameraRays(paths)
			owners = paths
		} else {
			rays, owners = itg.buildBounceRays(paths, rng)
		}

		itg.traceIntoPaths(rays, owners)
		itg.directLight(paths, rng)
	}

	itg.flush(paths)
}

func (itg *Integrator) seedPaths(b bucket.Block, sampler *imagesampler.Sampler, rng *rand.Rand) []*ptPath {
	paths := make([]*ptPath, 0, b.W*b.H*itg.spp)

	for x := b.X; x < b.X+b.W; x++ {
		for y := b.Y; y < b.Y+b.H; y++ {
			for _, s := range sampler.Generate(rng) {
				paths = append(paths, &ptPath{
					px: x, py: y,
					sample: s,
					fcol:   vecmath.Color{X: 1, Y: 1, Z: 1},
				})
			}
		}
	}

	return paths
}

// buildCameraRays builds the full camera-ray batch for n == 0: every
// path is live at this stage.
func (itg *Integrator) buildCameraRays(paths []*ptPath) []*vecmath.Ray {
	rays := make([]*vecmath.Ray, len(paths))
	for i, p := range paths {
		rays[i] = itg.scene.Camera.GenerateRay(float64(p.px), float64(p.py), p.sample.Dx, p.sample.Dy, p.sample.Time, p.sample.U, p.sample.V)
	}
	return rays
}

// buildBounceRays draws a cosine-weighted bounce direction for every
// still-live path, accumulates the lambert/pdf throughput factor into
// fcol, and returns the compacted ray batch alongside the paths that
// own each ray.
func (itg *Integrator) buildBounceRays(paths []*ptPath, rng *rand.Rand) ([]*vecmath.Ray, []*ptPath) {
	rays := make([]*vecmath.Ray, 0, len(paths))
	owners := make([]*ptPath, 0, len(paths))

	for _, p := range paths {
		if p.done {
			continue
		}

		nn := p.inter.N.Normalized()
		nns := nn
		if p.inter.Backfacing {
			nns = nn.Negate()
		}

		localDir := vecmath.CosineSampleHemisphere(rng.Float64(), rng.Float64())
		pdf := localDir.Z * 2
		if pdf < 0.001 {
			pdf = 0.001
		}
		dir := vecmath.ZUpToVec(localDir, nns)

		scale := vecmath.Lambert(dir, nns) / pdf
		p.fcol = p.fcol.Mul(vecmath.Color{X: scale, Y: scale, Z: scale})

		r := &vecmath.Ray{
			Origin: offsetOrigin(p.inter, nn, dir),
			Dir:    dir,
			Time:   p.sample.Time,
			MaxT:   math.Inf(1),
			OW:     p.inter.Owp(),
			DW:     bounceFootprintWidth,
		}
		r.Finalize()

		rays = append(rays, r)
		owners = append(owners, p)
	}

	return rays, owners
}

// offsetOrigin nudges a ray's origin off the surface at inter by
// inter.Offset, choosing the sign via a same-side test of dir against
// the geometric normal.
func offsetOrigin(inter vecmath.Intersection, geometricNormal, dir vecmath.Vec3) vecmath.Vec3 {
	if geometricNormal.Dot(dir.Normalized()) >= 0 {
		return inter.P.Add(inter.Offset)
	}
	return inter.P.Sub(inter.Offset)
}

// traceIntoPaths traces rays (each owned by owners[i]) against the root
// accelerator, storing a hit onto the owning path or marking it done on
// a miss.
func (itg *Integrator) traceIntoPaths(rays []*vecmath.Ray, owners []*ptPath) {
	for i, r := range rays {
		in := vecmath.NewIntersection()
		p := owners[i]
		if itg.scene.Root.IntersectRay(r, &in) {
			p.inter = in
		} else {
			p.done = true
		}
	}
}

// directLight performs one-sample next-event estimation for every live
// path: pick a light, sample it, trace a shadow ray, and add the
// contribution for every ray that found the light unoccluded.
func (itg *Integrator) directLight(paths []*ptPath, rng *rand.Rand) {
	lights := itg.scene.Lights
	if len(lights) == 0 {
		return
	}

	type pending struct {
		owner *ptPath
		dir   vecmath.Vec3
		lcol  vecmath.Color
	}

	rays := make([]*vecmath.Ray, 0, len(paths))
	waiting := make([]pending, 0, len(paths))

	for _, p := range paths {
		if p.done {
			continue
		}

		idx := int(rng.Float64() * float64(len(lights)))
		if idx >= len(lights) {
			idx = len(lights) - 1
		}

		ld, radiance, ok := lights[idx].Sample(p.inter.P, rng.Float64(), rng.Float64(), p.sample.Time)
		if !ok {
			continue
		}
		radiance = radiance.Scale(float64(len(lights)))

		d := ld.Length()
		dir := ld.Normalized()
		nn := p.inter.N.Normalized()

		r := &vecmath.Ray{
			Origin:      offsetOrigin(p.inter, nn, dir),
			Dir:         dir,
			Time:        p.sample.Time,
			MaxT:        d,
			IsShadowRay: true,
			OW:          p.inter.Owp(),
			DW:          p.inter.DW,
		}
		r.Finalize()

		rays = append(rays, r)
		waiting = append(waiting, pending{owner: p, dir: dir, lcol: radiance})
	}

	for i, r := range rays {
		in := vecmath.NewIntersection()
		if itg.scene.Root.IntersectRay(r, &in) {
			continue // occluded
		}

		w := waiting[i]
		n := w.owner.inter.N
		if w.owner.inter.Backfacing {
			n = n.Negate()
		}

		lam := vecmath.Lambert(w.dir, n)
		w.owner.col = w.owner.col.Add(w.owner.fcol.Mul(w.lcol).Scale(lam))
	}
}

// flush accumulates every path's color into the film under one locked
// batch, then invokes the progress callback.
func (itg *Integrator) flush(paths []*ptPath) {
	if itg.cfg.NoOutput {
		return
	}

	samples := make([]film.PixelSample, len(paths))
	for i, p := range paths {
		samples[i] = film.PixelSample{X: p.px, Y: p.py, Radiance: p.col}
	}
	itg.film.AddBatch(samples, itg.progress)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
