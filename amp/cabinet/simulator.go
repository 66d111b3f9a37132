package cabinet

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"time"

	"github.com/cwbudde/algo-amp/dsp/core"
	"github.com/cwbudde/algo-amp/dsp/filter/biquad"
)

const (
	defaultCrossfade = 10 * time.Millisecond
	maxCrossfade     = time.Second
)

// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
var ErrInvalidSampleRate = errors.New("cabinet: invalid sample rate")

// Option configures a Simulator at construction.
type Option func(*Simulator) error

// WithCrossfade sets the fade length used when the profile changes.
// Zero switches instantly.
func WithCrossfade(d time.Duration) Option {
	return func(s *Simulator) error {
		if d < 0 || d > maxCrossfade {
			return fmt.Errorf("cabinet: crossfade must be in [0, %v]: %v", maxCrossfade, d)
		}

		s.crossfade = d

		return nil
	}
}

// WithProfile sets the initially active profile.
func WithProfile(p Profile) Option {
	return func(s *Simulator) error {
		if !p.Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownProfile, int(p))
		}

		s.active = p

		return nil
	}
}

// Simulator runs the selected cabinet chain and mixes it with the dry input.
// Every profile's chain is allocated up front so Select never allocates.
type Simulator struct {
	sampleRate float64
	chains     [numProfiles]*biquad.Chain
	active     Profile
	previous   Profile
	pending    Profile
	crossfade  time.Duration
	fadeLen    int
	fadeLeft   int
}

// NewSimulator returns a Simulator configured for sampleRate with the
// Marshall profile active.
func NewSimulator(sampleRate float64, opts ...Option) (*Simulator, error) {
	s := &Simulator{
		active:    Marshall4x12V30,
		crossfade: defaultCrossfade,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(s); err != nil {
			return nil, err
		}
	}

	for p := range numProfiles {
		s.chains[p] = biquad.NewChain(biquad.Passthrough(), biquad.Passthrough(), biquad.Passthrough())
	}

	if err := s.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}

	return s, nil
}

// SetSampleRate redesigns every chain, clears all state and cancels a
// running crossfade.
func (s *Simulator) SetSampleRate(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	s.sampleRate = sampleRate
	for p := range numProfiles {
		c := Design(p, sampleRate)
		s.chains[p].UpdateCoefficients(c[:]...)
		s.chains[p].Reset()
	}

	s.fadeLen = int(math.Round(s.crossfade.Seconds() * sampleRate))
	s.settle()

	return nil
}

// SampleRate returns the configured rate.
func (s *Simulator) SampleRate() float64 { return s.sampleRate }

// Active returns the profile whose chain is fading in or playing.
func (s *Simulator) Active() Profile { return s.active }

// Target returns the most recently selected profile. It differs from
// Active while a selection waits for the running fade to finish.
func (s *Simulator) Target() Profile { return s.pending }

// Fading reports whether a profile crossfade is in progress.
func (s *Simulator) Fading() bool { return s.fadeLeft > 0 }

// Select switches to p. The new chain starts from silence and fades in
// against the current output. Invalid profiles are ignored.
//
// During a fade, selecting the outgoing profile reverses the fade from its
// current position, and any other profile is queued until the fade ends.
// Neither case resets a chain that still contributes to the output.
func (s *Simulator) Select(p Profile) {
	if !p.Valid() {
		return
	}

	if s.fadeLeft == 0 {
		if p != s.active {
			s.start(p)
		}

		return
	}

	switch p {
	case s.active:
		s.pending = p
	case s.previous:
		s.active, s.previous = s.previous, s.active
		s.fadeLeft = s.fadeLen - s.fadeLeft
		s.pending = s.active

		if s.fadeLeft == 0 {
			s.previous = s.active
		}
	default:
		s.pending = p
	}
}

// start fades from the active chain to a freshly cleared chain p.
func (s *Simulator) start(p Profile) {
	s.chains[p].Reset()
	s.pending = p

	if s.fadeLen == 0 {
		s.active = p
		s.previous = p

		return
	}

	s.previous = s.active
	s.active = p
	s.fadeLeft = s.fadeLen
}

// settle ends any fade and drops a queued selection.
func (s *Simulator) settle() {
	s.fadeLeft = 0
	s.previous = s.active
	s.pending = s.active
}

// SetProfile switches to p immediately, without a crossfade, and clears
// its chain. Invalid profiles are ignored.
func (s *Simulator) SetProfile(p Profile) {
	if !p.Valid() {
		return
	}

	s.chains[p].Reset()
	s.active = p
	s.settle()
}

// ProcessSample filters x through the active cabinet and returns
// x*(1-mix) + wet*mix. mix is clamped to [0, 1]; NaN counts as fully wet.
func (s *Simulator) ProcessSample(x, mix float64) float64 {
	mix = core.Clamp(mix, 0, 1)
	if math.IsNaN(mix) {
		mix = 1
	}

	wet := s.chains[s.active].ProcessSample(x)

	if s.fadeLeft > 0 {
		old := s.chains[s.previous].ProcessSample(x)
		t := float64(s.fadeLeft) / float64(s.fadeLen)
		wet += t * (old - wet)

		s.fadeLeft--
		if s.fadeLeft == 0 {
			s.previous = s.active
			if s.pending != s.active {
				s.start(s.pending)
			}
		}
	}

	if wet-wet != 0 {
		s.chains[s.active].Reset()
		s.chains[s.previous].Reset()
		s.settle()

		return x
	}

	return x*(1-mix) + wet*mix
}

// Reset clears every chain and ends any crossfade.
func (s *Simulator) Reset() {
	for p := range numProfiles {
		s.chains[p].Reset()
	}

	s.settle()
}

// Response returns the complex response of profile p at freqHz.
func (s *Simulator) Response(p Profile, freqHz float64) complex128 {
	if !p.Valid() {
		return 1
	}

	return s.chains[p].Response(freqHz, s.sampleRate)
}

// MagnitudeDB returns the magnitude of profile p at freqHz in dB.
func (s *Simulator) MagnitudeDB(p Profile, freqHz float64) float64 {
	return 20 * math.Log10(cmplx.Abs(s.Response(p, freqHz)))
}

// Stable reports whether every profile chain is stable.
func (s *Simulator) Stable() bool {
	for p := range numProfiles {
		if !s.chains[p].IsStable() {
			return false
		}
	}

	return true
}
