package film_test

import (
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/katalvlaran/pathforge/film"
	"github.com/katalvlaran/pathforge/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilm_AddSample_AveragesMultipleSamples(t *testing.T) {
	t.Parallel()

	f := film.New(4, 4)
	f.AddSample(1, 1, vecmath.Color{X: 1, Y: 0, Z: 0})
	f.AddSample(1, 1, vecmath.Color{X: 0, Y: 1, Z: 0})

	avg := f.Average(1, 1)
	assert.InDelta(t, 0.5, avg.X, 1e-9)
	assert.InDelta(t, 0.5, avg.Y, 1e-9)
}

func TestFilm_Average_UnsampledPixelIsZero(t *testing.T) {
	t.Parallel()

	f := film.New(4, 4)
	avg := f.Average(0, 0)
	assert.Equal(t, vecmath.Color{}, avg)
}

func TestFilm_AddSample_IgnoresOutOfBounds(t *testing.T) {
	t.Parallel()

	f := film.New(2, 2)
	assert.NotPanics(t, func() {
		f.AddSample(-1, 0, vecmath.Color{X: 1, Y: 1, Z: 1})
		f.AddSample(5, 5, vecmath.Color{X: 1, Y: 1, Z: 1})
	})
}

func TestFilm_Image_TonemapsFullWhiteToMaxChannel(t *testing.T) {
	t.Parallel()

	f := film.New(1, 1)
	f.AddSample(0, 0, vecmath.Color{X: 1, Y: 1, Z: 1})

	img := f.Image()
	got := img.NRGBA64At(0, 0)
	assert.Equal(t, color.NRGBA64{R: 0xffff, G: 0xffff, B: 0xffff, A: 0xffff}, got)
}

func TestFilm_Image_BlackPixelStaysBlack(t *testing.T) {
	t.Parallel()

	f := film.New(1, 1)
	img := f.Image()
	got := img.NRGBA64At(0, 0)
	assert.EqualValues(t, 0, got.R)
	assert.EqualValues(t, 0, got.G)
	assert.EqualValues(t, 0, got.B)
}

func TestFilm_Write_ProducesReadablePNG(t *testing.T) {
	t.Parallel()

	f := film.New(8, 8)
	f.AddSample(4, 4, vecmath.Color{X: 0.5, Y: 0.5, Z: 0.5})

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, f.Write(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestFilm_AddSample_ConcurrentWritesDoNotRace(t *testing.T) {
	t.Parallel()

	f := film.New(16, 16)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.AddSample(8, 8, vecmath.Color{X: 0.01, Y: 0.01, Z: 0.01})
		}()
	}
	wg.Wait()

	avg := f.Average(8, 8)
	assert.InDelta(t, 0.01, avg.X, 1e-9)
}
