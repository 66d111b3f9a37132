package distortion

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-amp/dsp/core"
	"github.com/cwbudde/algo-amp/dsp/filter/biquad"
	"github.com/cwbudde/algo-amp/dsp/filter/design"
)

// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
var ErrInvalidSampleRate = errors.New("distortion: invalid sample rate")

// Corner frequencies of the filter behind the shaper. The lowpass tames
// the harmonics the curve adds; the highpass removes the DC the asymmetric
// curve and the bias drift produce.
const (
	RolloffFrequency   = 8000.0
	DCBlockerFrequency = 20.0
)

// Stage is the drive-controlled waveshaper with bias drift.
type Stage struct {
	cfg        config
	table      *Table
	sat        *Saturation
	post       *biquad.Chain
	sampleRate float64
}

// NewStage returns a Stage for sampleRate using the shared table.
func NewStage(sampleRate float64, opts ...Option) (*Stage, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	sat, err := NewSaturation(sampleRate, opts...)
	if err != nil {
		return nil, err
	}

	s := &Stage{
		cfg:   cfg,
		table: DefaultTable(),
		sat:   sat,
		post:  biquad.NewChain(biquad.Passthrough(), biquad.Passthrough()),
	}

	if err := s.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}

	return s, nil
}

// SetSampleRate redesigns the output filter, recomputes the follower
// coefficients and clears the state.
func (s *Stage) SetSampleRate(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	s.sampleRate = sampleRate
	s.sat.Configure(sampleRate, s.cfg.envelopeTime, s.cfg.biasTime)
	s.post.UpdateCoefficients(
		design.Lowpass(RolloffFrequency, design.ButterworthQ, sampleRate),
		design.Highpass(DCBlockerFrequency, design.ButterworthQ, sampleRate),
	)
	s.post.Reset()

	return nil
}

// SampleRate returns the configured rate.
func (s *Stage) SampleRate() float64 { return s.sampleRate }

// Amount returns the shaping blend for drive, 0 at drive 1 and 1 at
// drive 1+span and above.
func (s *Stage) Amount(drive float64) float64 {
	if !(drive > MinDrive) {
		return 0
	}

	return core.Clamp((drive-MinDrive)/s.cfg.morphSpan, 0, 1)
}

// ProcessSample shapes x at the given drive. Drive is clamped to
// [MinDrive, MaxDrive]; NaN counts as MinDrive. At MinDrive the output is x.
//
// The shaped signal passes the rolloff and DC blocker before it is blended
// with x, so the wet path never carries DC.
func (s *Stage) ProcessSample(x, drive float64) float64 {
	drive = core.Clamp(drive, MinDrive, MaxDrive)
	if math.IsNaN(drive) {
		drive = MinDrive
	}

	a := s.Amount(drive)
	if a == 0 {
		// Keep the filter tracking the signal so raising the drive
		// does not start from stale state.
		if p := s.post.ProcessSample(x); p-p != 0 {
			s.post.Reset()
		}

		s.sat.Update(x)

		return x
	}

	wet := s.post.ProcessSample(s.table.Lookup(drive * (x + a*s.sat.Offset())))
	y := x + a*(wet-x)

	if y-y != 0 {
		s.Reset()
		return 0
	}

	s.sat.Update(y)

	return y
}

// Saturation exposes the bias follower for inspection.
func (s *Stage) Saturation() *Saturation { return s.sat }

// Reset clears the bias follower and the output filter.
func (s *Stage) Reset() {
	s.sat.Reset()
	s.post.Reset()
}
