// Package tonestack implements the three-band bass/mid/treble equalizer
// that sits in front of the distortion stage.
package tonestack

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-amp/dsp/core"
	"github.com/cwbudde/algo-amp/dsp/filter/biquad"
	"github.com/cwbudde/algo-amp/dsp/filter/design"
)

// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
var ErrInvalidSampleRate = errors.New("tonestack: invalid sample rate")

// Band frequencies and quality factors.
const (
	BassFrequency   = 100.0
	MidFrequency    = 500.0
	TrebleFrequency = 3000.0

	BassQ   = design.ButterworthQ
	MidQ    = 1.0
	TrebleQ = design.ButterworthQ
)

// MaxGainDB bounds the boost or cut of each band.
const MaxGainDB = 24.0

// Band names one of the three equalizer stages.
type Band int

const (
	Bass Band = iota
	Mid
	Treble

	numBands
)

func (b Band) String() string {
	switch b {
	case Bass:
		return "bass"
	case Mid:
		return "mid"
	case Treble:
		return "treble"
	default:
		return "unknown"
	}
}

// ToneStack is a low shelf, a peak and a high shelf in series.
type ToneStack struct {
	sampleRate float64
	bands      [numBands]design.Band
	sections   [numBands]biquad.Section
	gains      [numBands]float64
}

// New returns a flat tone stack configured for sampleRate.
func New(sampleRate float64) (*ToneStack, error) {
	t := &ToneStack{}
	if err := t.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}

	return t, nil
}

// SetSampleRate redesigns every band for sampleRate and clears the delay
// lines. Gains are kept.
func (t *ToneStack) SetSampleRate(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	t.sampleRate = sampleRate
	t.bands[Bass] = design.NewBand(design.KindLowShelf, BassFrequency, BassQ, sampleRate)
	t.bands[Mid] = design.NewBand(design.KindPeak, MidFrequency, MidQ, sampleRate)
	t.bands[Treble] = design.NewBand(design.KindHighShelf, TrebleFrequency, TrebleQ, sampleRate)

	for b := range numBands {
		t.sections[b].Coefficients = t.bands[b].Coefficients(t.gains[b])
		t.sections[b].Reset()
	}

	return nil
}

// SampleRate returns the configured rate.
func (t *ToneStack) SampleRate() float64 { return t.sampleRate }

// SetGains sets the three band gains in dB. Only bands whose gain changed
// are redesigned and delay lines are kept. Gains are clamped to ±MaxGainDB;
// NaN leaves a band unchanged.
func (t *ToneStack) SetGains(bass, mid, treble float64) {
	t.setGain(Bass, bass)
	t.setGain(Mid, mid)
	t.setGain(Treble, treble)
}

func (t *ToneStack) setGain(b Band, gainDB float64) {
	if math.IsNaN(gainDB) {
		return
	}

	gainDB = core.Clamp(gainDB, -MaxGainDB, MaxGainDB)
	if gainDB == t.gains[b] {
		return
	}

	t.gains[b] = gainDB
	t.sections[b].Coefficients = t.bands[b].Coefficients(gainDB)
}

// Gain returns the gain of band b in dB.
func (t *ToneStack) Gain(b Band) float64 { return t.gains[b] }

// Coefficients returns the current section coefficients of band b.
func (t *ToneStack) Coefficients(b Band) biquad.Coefficients {
	return t.sections[b].Coefficients
}

// ProcessSample runs x through the three bands.
func (t *ToneStack) ProcessSample(x float64) float64 {
	for b := range t.sections {
		s := &t.sections[b]

		y := core.FlushDenormals(s.ProcessSample(x))
		if y-y != 0 {
			s.Reset()
			y = 0
		}

		x = y
	}

	return x
}

// Reset clears the delay lines.
func (t *ToneStack) Reset() {
	for b := range t.sections {
		t.sections[b].Reset()
	}
}

// Response returns the combined complex response at freqHz.
func (t *ToneStack) Response(freqHz float64) complex128 {
	h := complex(1, 0)
	for b := range t.sections {
		h *= t.sections[b].Response(freqHz, t.sampleRate)
	}

	return h
}

// MagnitudeDB returns the combined magnitude at freqHz in dB.
func (t *ToneStack) MagnitudeDB(freqHz float64) float64 {
	db := 0.0
	for b := range t.sections {
		db += t.sections[b].MagnitudeDB(freqHz, t.sampleRate)
	}

	return db
}

// Stable reports whether every band's poles lie inside the unit circle.
func (t *ToneStack) Stable() bool {
	for b := range t.sections {
		if !t.sections[b].IsStable() {
			return false
		}
	}

	return true
}
