package param

import (
	"math"
	"time"
)

// SettleTolerance is the fraction of a step still remaining after one
// smoothing duration.
const SettleTolerance = 1e-3

// snapDistance is how close a ramp must get before it lands on the target.
const snapDistance = 1e-9

// Smoother is a one-pole exponential ramp towards a target.
type Smoother struct {
	current float64
	target  float64
	coef    float64
}

// SmoothingCoefficient returns the per-sample pole for a ramp that leaves
// SettleTolerance of a step after duration at sampleRate. A zero duration
// or invalid rate gives 0, which snaps.
func SmoothingCoefficient(duration time.Duration, sampleRate float64) float64 {
	samples := duration.Seconds() * sampleRate
	if !(samples >= 1) || math.IsInf(samples, 0) {
		return 0
	}

	return math.Pow(SettleTolerance, 1/samples)
}

// Configure sets the ramp time without moving the current value.
func (s *Smoother) Configure(duration time.Duration, sampleRate float64) {
	s.coef = SmoothingCoefficient(duration, sampleRate)
}

// Coefficient returns the per-sample pole.
func (s *Smoother) Coefficient() float64 { return s.coef }

// SetTarget sets the value the ramp moves towards.
func (s *Smoother) SetTarget(target float64) {
	s.target = target
	if s.coef == 0 {
		s.current = target
	}
}

// Snap jumps current and target to v.
func (s *Smoother) Snap(v float64) {
	s.current = v
	s.target = v
}

// Next advances one sample and returns the new value.
func (s *Smoother) Next() float64 {
	if s.current == s.target {
		return s.current
	}

	s.current = s.target + s.coef*(s.current-s.target)
	if math.Abs(s.current-s.target) < snapDistance {
		s.current = s.target
	}

	return s.current
}

// Value returns the current value without advancing.
func (s *Smoother) Value() float64 { return s.current }

// Target returns the value being approached.
func (s *Smoother) Target() float64 { return s.target }

// Settled reports whether the ramp has reached its target.
func (s *Smoother) Settled() bool { return s.current == s.target }
