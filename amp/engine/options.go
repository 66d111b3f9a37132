package engine

import (
	"fmt"
	"time"
)

const maxSmoothing = 2 * time.Second

// Option configures an Engine at construction.
type Option func(*config) error

type config struct {
	smoothing    time.Duration
	hasSmoothing bool
	crossfade    time.Duration
	hasCrossfade bool
	morphSpan    float64
}

// WithSmoothingDuration overrides the ramp time of every continuous
// parameter. Zero disables smoothing.
func WithSmoothingDuration(d time.Duration) Option {
	return func(cfg *config) error {
		if d < 0 || d > maxSmoothing {
			return fmt.Errorf("engine: smoothing duration must be in [0, %v]: %v", maxSmoothing, d)
		}

		cfg.smoothing = d
		cfg.hasSmoothing = true

		return nil
	}
}

// WithCabinetCrossfade sets the fade length used when the cabinet changes.
func WithCabinetCrossfade(d time.Duration) Option {
	return func(cfg *config) error {
		if d < 0 {
			return fmt.Errorf("engine: cabinet crossfade must be >= 0: %v", d)
		}

		cfg.crossfade = d
		cfg.hasCrossfade = true

		return nil
	}
}

// WithDriveMorph sets how far above the minimum drive the distortion
// reaches full shaping.
func WithDriveMorph(span float64) Option {
	return func(cfg *config) error {
		if !(span > 0) {
			return fmt.Errorf("engine: drive morph span must be > 0: %v", span)
		}

		cfg.morphSpan = span

		return nil
	}
}
