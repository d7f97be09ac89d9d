package core

import "golang.org/x/xerrors"

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Base seed for the per-scanline random streams
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 10,
		MaxDepth:        10,
		Seed:            42,
		NumWorkers:      0,
	}
}

// MergeSamplingConfig returns base with every non-zero field of override applied.
// A negative MaxDepth override forces depth 0 (no bounces at all).
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.SamplesPerPixel > 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth > 0 {
		result.MaxDepth = override.MaxDepth
	} else if override.MaxDepth < 0 {
		result.MaxDepth = 0
	}
	if override.Seed != 0 {
		result.Seed = override.Seed
	}
	if override.NumWorkers > 0 {
		result.NumWorkers = override.NumWorkers
	}
	return result
}

// Validate rejects settings the renderer cannot honor
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel < 1 {
		return xerrors.Errorf("samples per pixel must be at least 1, got %d: %w", c.SamplesPerPixel, ErrInvalidConfiguration)
	}
	if c.MaxDepth < 0 {
		return xerrors.Errorf("max depth must not be negative, got %d: %w", c.MaxDepth, ErrInvalidConfiguration)
	}
	if c.NumWorkers < 0 {
		return xerrors.Errorf("worker count must not be negative, got %d: %w", c.NumWorkers, ErrInvalidConfiguration)
	}
	return nil
}
