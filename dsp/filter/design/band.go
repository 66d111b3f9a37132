package design

import (
	"math"

	"github.com/cwbudde/algo-amp/dsp/filter/biquad"
)

// Kind selects the RBJ response family of a Band.
type Kind int

const (
	KindPeak Kind = iota
	KindLowShelf
	KindHighShelf
	KindLowpass
	KindHighpass
)

func (k Kind) String() string {
	switch k {
	case KindPeak:
		return "peak"
	case KindLowShelf:
		return "lowshelf"
	case KindHighShelf:
		return "highshelf"
	case KindLowpass:
		return "lowpass"
	case KindHighpass:
		return "highpass"
	default:
		return "unknown"
	}
}

// Band holds the frequency-dependent terms of one RBJ section so gain
// changes can be turned into coefficients without trigonometry.
type Band struct {
	kind  Kind
	freq  float64
	q     float64
	cw    float64
	alpha float64
	valid bool
}

// NewBand precomputes cos(w0) and alpha for kind at freq, q and sampleRate.
// freq is clamped to MaxFrequencyRatio*sampleRate. An unusable frequency or
// sample rate yields a band that always returns the passthrough section.
func NewBand(kind Kind, freq, q, sampleRate float64) Band {
	b := Band{kind: kind, q: normalizedQ(q)}

	f, ok := ClampFrequency(freq, sampleRate)
	if !ok {
		return b
	}

	w0 := 2 * math.Pi * f / sampleRate
	b.freq = f
	b.cw = math.Cos(w0)
	b.alpha = math.Sin(w0) / (2 * b.q)
	b.valid = true

	return b
}

// Kind returns the response family.
func (b Band) Kind() Kind { return b.kind }

// Frequency returns the design frequency after clamping (0 if invalid).
func (b Band) Frequency() float64 { return b.freq }

// Q returns the quality factor in use.
func (b Band) Q() float64 { return b.q }

// Coefficients returns the section for gainDB. Lowpass and highpass bands
// ignore the gain. A peak or shelf at 0 dB is an exact identity.
func (b Band) Coefficients(gainDB float64) biquad.Coefficients {
	if !b.valid {
		return biquad.Passthrough()
	}

	cw, alpha := b.cw, b.alpha

	switch b.kind {
	case KindLowpass:
		return normalize((1-cw)/2, 1-cw, (1-cw)/2, 1+alpha, -2*cw, 1-alpha)

	case KindHighpass:
		return normalize((1+cw)/2, -(1 + cw), (1+cw)/2, 1+alpha, -2*cw, 1-alpha)

	case KindPeak:
		a := math.Pow(10, gainDB/40)
		return normalize(1+alpha*a, -2*cw, 1-alpha*a, 1+alpha/a, -2*cw, 1-alpha/a)

	case KindLowShelf:
		a := math.Pow(10, gainDB/40)
		beta := 2 * math.Sqrt(a) * alpha

		return normalize(
			a*((a+1)-(a-1)*cw+beta),
			2*a*((a-1)-(a+1)*cw),
			a*((a+1)-(a-1)*cw-beta),
			(a+1)+(a-1)*cw+beta,
			-2*((a-1)+(a+1)*cw),
			(a+1)+(a-1)*cw-beta,
		)

	case KindHighShelf:
		a := math.Pow(10, gainDB/40)
		beta := 2 * math.Sqrt(a) * alpha

		return normalize(
			a*((a+1)+(a-1)*cw+beta),
			-2*a*((a-1)+(a+1)*cw),
			a*((a+1)+(a-1)*cw-beta),
			(a+1)-(a-1)*cw+beta,
			2*((a-1)-(a+1)*cw),
			(a+1)-(a-1)*cw-beta,
		)

	default:
		return biquad.Passthrough()
	}
}
