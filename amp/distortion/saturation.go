package distortion

import (
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/algo-amp/dsp/core"
)

// Saturation follows output energy and drifts a bias offset towards a
// fraction of its RMS.
type Saturation struct {
	energy   float64
	bias     float64
	envCoef  float64
	biasCoef float64
	depth    float64
	offset   float64
}

// NewSaturation returns a follower for sampleRate. Only the bias depth and
// the two time constants among opts apply.
func NewSaturation(sampleRate float64, opts ...Option) (*Saturation, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	s := &Saturation{depth: cfg.biasDepth, offset: cfg.biasOffset}
	s.Configure(sampleRate, cfg.envelopeTime, cfg.biasTime)

	return s, nil
}

// Configure sets both time constants for sampleRate and clears the state.
func (s *Saturation) Configure(sampleRate float64, envelope, bias time.Duration) {
	s.envCoef = onePoleCoefficient(envelope, sampleRate)
	s.biasCoef = onePoleCoefficient(bias, sampleRate)
	s.Reset()
}

func onePoleCoefficient(tau time.Duration, sampleRate float64) float64 {
	n := tau.Seconds() * sampleRate
	if !(n > 0) {
		return 0
	}

	return mathExp(-1 / n)
}

// Update feeds one output sample.
func (s *Saturation) Update(y float64) {
	p := y * y
	if p-p != 0 {
		s.Reset()
		return
	}

	s.energy = core.FlushDenormals(p + s.envCoef*(s.energy-p))

	target := 0.0
	if s.energy > 0 {
		target = s.depth * mathSqrt(s.energy)
	}

	s.bias = core.FlushDenormals(target + s.biasCoef*(s.bias-target))
}

// Offset is the shift added to the next shaper input.
func (s *Saturation) Offset() float64 {
	return s.offset * s.bias
}

// Bias returns the current bias level.
func (s *Saturation) Bias() float64 { return s.bias }

// Energy returns the current mean-square envelope.
func (s *Saturation) Energy() float64 { return s.energy }

// BiasCoefficient returns the per-sample bias pole.
func (s *Saturation) BiasCoefficient() float64 { return s.biasCoef }

// Reset clears the envelope and bias.
func (s *Saturation) Reset() {
	s.energy = 0
	s.bias = 0
}
