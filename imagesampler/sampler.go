package imagesampler

import (
	"math"
	"math/rand"
)

// Sample is one per-pixel sample: a sub-pixel offset in [0,1), a shutter
// time in [0,1), and a lens sample in [0,1)^2 for depth of field.
type Sample struct {
	Dx, Dy float64
	Time   float64
	U, V   float64
}

// Sampler produces stratified per-pixel samples for a fixed
// samples-per-pixel count.
type Sampler struct {
	spp     int
	stratum int
}

// New builds a Sampler for spp samples per pixel. spp is clamped to at
// least 1.
func New(spp int) *Sampler {
	if spp < 1 {
		spp = 1
	}
	return &Sampler{spp: spp, stratum: int(math.Ceil(math.Sqrt(float64(spp))))}
}

// NewRNG returns a per-worker random source seeded from seed, so
// concurrent workers never contend on the global math/rand lock.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(int64(seed)))
}

// Generate returns s.SamplesPerPixel samples, jittered within a
// stratum*stratum grid over the pixel so nearby samples do not clump.
func (s *Sampler) Generate(rng *rand.Rand) []Sample {
	samples := make([]Sample, s.spp)
	cell := 1.0 / float64(s.stratum)

	for i := 0; i < s.spp; i++ {
		sx := i % s.stratum
		sy := (i / s.stratum) % s.stratum

		samples[i] = Sample{
			Dx:   (float64(sx) + rng.Float64()) * cell,
			Dy:   (float64(sy) + rng.Float64()) * cell,
			Time: rng.Float64(),
			U:    rng.Float64(),
			V:    rng.Float64(),
		}
	}

	return samples
}

// SamplesPerPixel reports the configured sample count.
func (s *Sampler) SamplesPerPixel() int { return s.spp }
