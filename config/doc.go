// Package config defines the process-wide render configuration:
// samples_per_bucket, dice_rate, max_grid_size, and no_output. Config is
// built with functional options: invalid combinations accumulate into a
// deferred error returned by New rather than panicking.
package config
