package config

import (
	"errors"
	"fmt"
)

// ErrBadConfig is returned by New when one or more options produced an
// invalid configuration.
var ErrBadConfig = errors.New("config: invalid configuration")

// Config is the process-wide set of recognised render options.
type Config struct {
	// SamplesPerBucket targets a roughly constant amount of work per
	// bucket; it drives bucket sizing in the integrator.
	SamplesPerBucket int

	// DiceRate controls tessellation aggressiveness: larger values
	// produce coarser grids for the same ray footprint.
	DiceRate float64

	// MaxGridSize bounds a single grid's dice rate; primitives whose
	// dice rate would exceed this (a finer grid) must split first.
	MaxGridSize int

	// NoOutput skips film accumulation and file writes when set,
	// leaving sample computation (and statistics) unaffected.
	NoOutput bool

	// Verbose enables per-bucket progress dots on stderr.
	Verbose bool

	err error
}

// Option configures a Config.
type Option func(*Config)

// Default returns the configuration used when no options are given.
func Default() Config {
	return Config{
		SamplesPerBucket: 2048,
		DiceRate:         1.0,
		MaxGridSize:      64,
	}
}

// New builds a Config from Default(), applying opts in order. It returns
// ErrBadConfig, wrapped with detail, if any option left the configuration
// invalid.
func New(opts ...Option) (*Config, error) {
	c := Default()
	for _, opt := range opts {
		opt(&c)
	}
	if c.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadConfig, c.err)
	}
	if c.SamplesPerBucket <= 0 {
		return nil, fmt.Errorf("%w: samples_per_bucket must be positive, got %d", ErrBadConfig, c.SamplesPerBucket)
	}
	if c.DiceRate <= 0 {
		return nil, fmt.Errorf("%w: dice_rate must be positive, got %g", ErrBadConfig, c.DiceRate)
	}
	if c.MaxGridSize < 2 {
		return nil, fmt.Errorf("%w: max_grid_size must be at least 2, got %d", ErrBadConfig, c.MaxGridSize)
	}
	return &c, nil
}

// WithSamplesPerBucket sets SamplesPerBucket.
func WithSamplesPerBucket(n int) Option {
	return func(c *Config) {
		if n <= 0 {
			c.err = fmt.Errorf("samples_per_bucket must be positive, got %d", n)
			return
		}
		c.SamplesPerBucket = n
	}
}

// WithDiceRate sets DiceRate.
func WithDiceRate(r float64) Option {
	return func(c *Config) {
		if r <= 0 {
			c.err = fmt.Errorf("dice_rate must be positive, got %g", r)
			return
		}
		c.DiceRate = r
	}
}

// WithMaxGridSize sets MaxGridSize.
func WithMaxGridSize(n int) Option {
	return func(c *Config) {
		if n < 2 {
			c.err = fmt.Errorf("max_grid_size must be at least 2, got %d", n)
			return
		}
		c.MaxGridSize = n
	}
}

// WithNoOutput enables the no_output fast path.
func WithNoOutput() Option {
	return func(c *Config) { c.NoOutput = true }
}

// WithVerbose enables per-bucket progress output.
func WithVerbose() Option {
	return func(c *Config) { c.Verbose = true }
}
