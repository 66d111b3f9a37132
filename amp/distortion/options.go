package distortion

import (
	"fmt"
	"math"
	"time"
)

const (
	defaultMorphSpan    = 3.0
	defaultBiasDepth    = 0.1
	defaultBiasOffset   = 0.5
	defaultEnvelopeTime = 5 * time.Millisecond
	// 0.999 per sample at 44.1 kHz.
	defaultBiasTime = 22675 * time.Microsecond

	maxMorphSpan = MaxDrive - MinDrive
	maxBiasDepth = 1.0
)

// Drive range accepted by Stage.ProcessSample.
const (
	MinDrive = 1.0
	MaxDrive = 20.0
)

// Option configures a Stage at construction.
type Option func(*config) error

type config struct {
	morphSpan    float64
	biasDepth    float64
	biasOffset   float64
	envelopeTime time.Duration
	biasTime     time.Duration
}

func defaultConfig() config {
	return config{
		morphSpan:    defaultMorphSpan,
		biasDepth:    defaultBiasDepth,
		biasOffset:   defaultBiasOffset,
		envelopeTime: defaultEnvelopeTime,
		biasTime:     defaultBiasTime,
	}
}

func newConfig(opts []Option) (config, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}

	return cfg, nil
}

// WithMorphSpan sets how far above drive 1 the stage reaches full shaping.
// The blend amount is clamp((drive-1)/span, 0, 1).
func WithMorphSpan(span float64) Option {
	return func(cfg *config) error {
		if !(span > 0) || span > maxMorphSpan {
			return fmt.Errorf("distortion: morph span must be in (0, %g]: %v", maxMorphSpan, span)
		}

		cfg.morphSpan = span

		return nil
	}
}

// WithBiasDepth scales the bias target relative to the output RMS.
// Zero disables bias drift.
func WithBiasDepth(depth float64) Option {
	return func(cfg *config) error {
		if depth < 0 || depth > maxBiasDepth || math.IsNaN(depth) {
			return fmt.Errorf("distortion: bias depth must be in [0, %g]: %v", maxBiasDepth, depth)
		}

		cfg.biasDepth = depth

		return nil
	}
}

// WithEnvelopeTime sets the time constant of the energy follower.
func WithEnvelopeTime(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return fmt.Errorf("distortion: envelope time must be > 0: %v", d)
		}

		cfg.envelopeTime = d

		return nil
	}
}

// WithBiasTime sets the time constant of the bias drift.
func WithBiasTime(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return fmt.Errorf("distortion: bias time must be > 0: %v", d)
		}

		cfg.biasTime = d

		return nil
	}
}
