// Package imagesampler generates per-pixel sample positions for the
// integrator: a stratified (jittered) grid of sub-pixel offsets, so spp
// samples per pixel cover the pixel roughly evenly rather than clumping,
// plus a shutter-time and lens sample per sample, which are drawn
// uniformly at random without stratification. The integrator resolves
// spp via imagesampler before tracing a bucket's camera rays.
package imagesampler
