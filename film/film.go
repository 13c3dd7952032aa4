package film

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"sync"

	"github.com/katalvlaran/pathforge/vecmath"
)

// invGamma is the exponent used to convert accumulated linear radiance
// into the gamma-encoded values image/png expects.
const invGamma = 1.0 / 2.2

// Film accumulates radiance samples into a width x height pixel grid. A
// Film is safe for concurrent AddSample calls from many workers; the
// zero value is not usable, use New.
type Film struct {
	mu     sync.Mutex
	width  int
	height int
	sum    []vecmath.Color
	count  []uint32
}

// New creates an all-black Film of the given resolution.
func New(width, height int) *Film {
	return &Film{
		width:  width,
		height: height,
		sum:    make([]vecmath.Color, width*height),
		count:  make([]uint32, width*height),
	}
}

func (f *Film) offset(x, y int) int { return y*f.width + x }

// AddSample accumulates one radiance sample at pixel (x, y). Out-of-
// bounds coordinates are silently ignored, since a camera ray footprint
// can occasionally round to a pixel just outside the image.
func (f *Film) AddSample(x, y int, radiance vecmath.Color) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.offset(x, y)
	f.sum[i] = f.sum[i].Add(radiance)
	f.count[i]++
}

// PixelSample is one accumulated contribution: a radiance value bound
// for pixel (X, Y).
type PixelSample struct {
	X, Y     int
	Radiance vecmath.Color
}

// AddBatch accumulates every sample in one critical section, then
// invokes callback (if non-nil) before releasing the lock. This is the
// per-bucket flush path: the mutex is held once per bucket rather than
// once per sample.
func (f *Film) AddBatch(samples []PixelSample, callback func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range samples {
		if s.X < 0 || s.X >= f.width || s.Y < 0 || s.Y >= f.height {
			continue
		}
		i := f.offset(s.X, s.Y)
		f.sum[i] = f.sum[i].Add(s.Radiance)
		f.count[i]++
	}

	if callback != nil {
		callback()
	}
}

// Average returns the mean accumulated radiance at pixel (x, y), or the
// zero color if no samples have landed there yet.
func (f *Film) Average(x, y int) vecmath.Color {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.offset(x, y)
	if f.count[i] == 0 {
		return vecmath.Color{}
	}
	return f.sum[i].Scale(1.0 / float64(f.count[i]))
}

// Width and Height report the film's resolution.
func (f *Film) Width() int  { return f.width }
func (f *Film) Height() int { return f.height }

func tonemap(v float64) uint16 {
	if v <= 0 {
		return 0
	}
	encoded := math.Pow(v, invGamma)
	if encoded >= 1 {
		return 0xffff
	}
	return uint16(encoded * 0xffff)
}

// Image resolves the accumulated samples into a 16-bit-per-channel
// image, gamma-encoding each channel independently.
func (f *Film) Image() *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, f.width, f.height))

	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			c := f.Average(x, y)
			img.SetNRGBA64(x, y, color.NRGBA64{
				R: tonemap(c.X),
				G: tonemap(c.Y),
				B: tonemap(c.Z),
				A: 0xffff,
			})
		}
	}

	return img
}

// Write resolves the film and encodes it as a PNG at path.
func (f *Film) Write(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	return png.Encode(out, f.Image())
}
