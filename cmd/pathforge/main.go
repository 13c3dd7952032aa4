// Command pathforge renders a JSON scene description to a PNG image
// using a bucketed, lazy-dice Monte-Carlo path tracer.
//
// Usage:
//
//	pathforge -scene scene.json -width 640 -height 480 -spp 16 -out out.png
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/katalvlaran/pathforge/config"
	"github.com/katalvlaran/pathforge/render"
	"github.com/katalvlaran/pathforge/stats"
)

var (
	scenePath        = flag.String("scene", "", "Path to a JSON scene description (required)")
	width            = flag.Int("width", 640, "Output image width in pixels")
	height           = flag.Int("height", 480, "Output image height in pixels")
	spp              = flag.Int("spp", 16, "Samples per pixel")
	seed             = flag.Uint64("seed", 1, "RNG seed")
	outPath          = flag.String("out", "out.png", "Output PNG path")
	threads          = flag.Int("threads", 0, "Worker thread count (0 = runtime.NumCPU())")
	pathLength       = flag.Int("path-length", 4, "Path segments traced per sample")
	diceRate         = flag.Float64("dice-rate", 1.0, "Dicing rate: larger values produce coarser grids")
	maxGridSize      = flag.Int("max-grid-size", 64, "Maximum grid dice rate before a patch must split")
	samplesPerBucket = flag.Int("samples-per-bucket", 2048, "Target sample count per bucket")
	noOutput         = flag.Bool("no-output", false, "Skip film accumulation and file writes")
	verbose          = flag.Bool("v", false, "Print per-bucket progress dots to stderr")
)

func main() {
	flag.Parse()

	if *scenePath == "" {
		fmt.Fprintf(os.Stderr, "Error: -scene flag is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	opts := []config.Option{
		config.WithDiceRate(*diceRate),
		config.WithMaxGridSize(*maxGridSize),
		config.WithSamplesPerBucket(*samplesPerBucket),
	}
	if *noOutput {
		opts = append(opts, config.WithNoOutput())
	}
	if *verbose {
		opts = append(opts, config.WithVerbose())
	}

	cfg, err := config.New(opts...)
	if err != nil {
		return err
	}

	st := &stats.Counters{}
	sc, err := loadScene(*scenePath, *width, *height, st)
	if err != nil {
		return err
	}

	r := render.New(sc, *width, *height, *outPath, cfg)
	r.SetSamplesPerPixel(*spp)
	r.SetPathLength(*pathLength)
	r.SetSeed(*seed)
	r.SetStats(st)
	if cfg.Verbose {
		r.SetProgress(func() { fmt.Fprint(os.Stderr, ".") })
	}

	if err := r.Render(*threads); err != nil {
		return err
	}

	if cfg.Verbose {
		fmt.Fprintln(os.Stderr)
	}

	return nil
}
