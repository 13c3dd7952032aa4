package render

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/katalvlaran/pathforge/config"
	"github.com/katalvlaran/pathforge/film"
	"github.com/katalvlaran/pathforge/integrator"
	"github.com/katalvlaran/pathforge/scene"
	"github.com/katalvlaran/pathforge/stats"
)

// Sentinel errors at the render boundary ("errors live only
// at the boundary"). Internal ray/primitive operations never return
// one of these; only scene setup, rendering, and output do.
var (
	// ErrSceneLoad marks a malformed or unreadable scene description.
	ErrSceneLoad = errors.New("render: scene load failed")
	// ErrIO marks a film/image write failure.
	ErrIO = errors.New("render: output write failed")
	// ErrBadConfig marks an invalid resolution, sample count, or path
	// length passed to a Renderer.
	ErrBadConfig = errors.New("render: invalid configuration")
)

// Renderer owns everything a single render needs: the scene
// (single-owner), resolution, spp, path length, seed, and output path
type Renderer struct {
	sc         *scene.Scene
	cfg        *config.Config
	stats      *stats.Counters
	progress   integrator.ProgressFunc
	width      int
	height     int
	spp        int
	pathLength int
	seed       uint64
	outPath    string
}

// New builds a Renderer for sc, writing a width x height image to
// outPath under cfg. spp and path length default to 1; use the setters
// to change them before calling Render.
func New(sc *scene.Scene, width, height int, outPath string, cfg *config.Config) *Renderer {
	return &Renderer{
		sc: sc, cfg: cfg,
		width: width, height: height,
		spp: 1, pathLength: 1, seed: 1,
		outPath: outPath,
		stats:   &stats.Counters{},
	}
}

// SetResolution overrides the output image's resolution.
func (r *Renderer) SetResolution(width, height int) { r.width, r.height = width, height }

// SetSamplesPerPixel overrides the per-pixel sample count.
func (r *Renderer) SetSamplesPerPixel(spp int) { r.spp = spp }

// SetPathLength overrides the per-path segment count.
func (r *Renderer) SetPathLength(n int) { r.pathLength = n }

// SetSeed overrides the RNG seed used to derive per-worker streams.
func (r *Renderer) SetSeed(seed uint64) { r.seed = seed }

// SetStats attaches a shared Counters instance, replacing the default
// private one; useful when a caller wants to inspect statistics after
// Render returns.
func (r *Renderer) SetStats(st *stats.Counters) { r.stats = st }

// SetProgress installs a callback invoked once per bucket flush.
func (r *Renderer) SetProgress(p integrator.ProgressFunc) { r.progress = p }

// Stats returns the Counters this Renderer holds. Render records nothing
// into it itself; the counts come from the scene's primitives, so they
// reflect a render only when those primitives were built with the same
// Counters.
func (r *Renderer) Stats() *stats.Counters { return r.stats }

// Render constructs a film at the configured resolution, runs the
// integrator across threads worker goroutines (defaulting to
// runtime.NumCPU() when threads <= 0), and writes the result to
// outPath unless the configuration's NoOutput fast path is set.
func (r *Renderer) Render(threads int) error {
	if r.width <= 0 || r.height <= 0 {
		return fmt.Errorf("%w: resolution must be positive, got %dx%d", ErrBadConfig, r.width, r.height)
	}
	if r.spp <= 0 {
		return fmt.Errorf("%w: spp must be positive, got %d", ErrBadConfig, r.spp)
	}
	if r.pathLength <= 0 {
		return fmt.Errorf("%w: path length must be positive, got %d", ErrBadConfig, r.pathLength)
	}
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	f := film.New(r.width, r.height)
	itg := integrator.New(r.sc, f, r.cfg, r.spp, r.pathLength, threads, r.seed, r.stats, r.progress)

	if err := itg.Integrate(); err != nil {
		return err
	}

	if r.cfg.NoOutput {
		return nil
	}

	if err := f.Write(r.outPath); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	return nil
}
