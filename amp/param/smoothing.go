package param

import "time"

// Smoothing ramps every parameter of a Store for the audio goroutine.
//
// Ramps run on normalized values, so logarithmic parameters move linearly in
// dB. Engineering values are recomputed only while a ramp is moving.
type Smoothing struct {
	store     *Store
	smoothers [Count]Smoother
	plain     Values
	from      [Count]float64
	durations [Count]time.Duration
}

// NewSmoothing returns a bank reading targets from store.
func NewSmoothing(store *Store) *Smoothing {
	s := &Smoothing{store: store}
	for id := range Count {
		s.durations[id] = layout[id].Smoothing
	}

	s.Reset()

	return s
}

// SetDuration overrides the ramp time of every continuous parameter.
// Stepped parameters keep snapping. Takes effect on the next Configure.
func (s *Smoothing) SetDuration(d time.Duration) {
	for id := range Count {
		if layout[id].Mapping != MappingStepped {
			s.durations[id] = d
		}
	}
}

// Configure computes the ramp coefficients for sampleRate and jumps every
// ramp to its current target.
func (s *Smoothing) Configure(sampleRate float64) {
	for id := range Count {
		s.smoothers[id].Configure(s.durations[id], sampleRate)
	}

	s.Reset()
}

// Reset jumps every ramp to the Store's current target.
func (s *Smoothing) Reset() {
	for id := range Count {
		n := s.store.GetID(id)
		s.smoothers[id].Snap(n)
		s.from[id] = n
		s.plain[id] = layout[id].Denormalize(n)
	}
}

// Advance moves every ramp one sample and writes engineering values to v.
func (s *Smoothing) Advance(v *Values) {
	for id := range Count {
		sm := &s.smoothers[id]
		sm.SetTarget(s.store.GetID(id))

		if n := sm.Next(); n != s.from[id] {
			s.from[id] = n
			s.plain[id] = layout[id].Denormalize(n)
		}
	}

	*v = s.plain
}

// Normalized returns the current ramp position of id.
func (s *Smoothing) Normalized(id ID) float64 {
	return s.smoothers[id].Value()
}

// Settled reports whether every ramp has reached its target.
func (s *Smoothing) Settled() bool {
	for id := range Count {
		if !s.smoothers[id].Settled() {
			return false
		}
	}

	return true
}
