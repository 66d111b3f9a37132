package design

import (
	"math"

	"github.com/cwbudde/algo-amp/dsp/filter/biquad"
)

// MaxFrequencyRatio caps design frequencies relative to the sample rate so
// low sample rates cannot push a band past the bilinear warping limit.
const MaxFrequencyRatio = 0.45

// ButterworthQ is the Q of a maximally flat second-order section (shelf slope S=1).
const ButterworthQ = 1 / math.Sqrt2

// Lowpass designs a second-order lowpass at freq with quality factor q.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	return NewBand(KindLowpass, freq, q, sampleRate).Coefficients(0)
}

// Highpass designs a second-order highpass at freq with quality factor q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	return NewBand(KindHighpass, freq, q, sampleRate).Coefficients(0)
}

// Peak designs a peaking EQ with gainDB at freq.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	return NewBand(KindPeak, freq, q, sampleRate).Coefficients(gainDB)
}

// LowShelf designs a low shelf with gainDB below freq.
func LowShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	return NewBand(KindLowShelf, freq, q, sampleRate).Coefficients(gainDB)
}

// HighShelf designs a high shelf with gainDB above freq.
func HighShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	return NewBand(KindHighShelf, freq, q, sampleRate).Coefficients(gainDB)
}

// ClampFrequency limits freq to (0, MaxFrequencyRatio*sampleRate].
// It reports false when no sensible design frequency exists.
func ClampFrequency(freq, sampleRate float64) (float64, bool) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	if !(freq > 0) || math.IsInf(freq, 0) {
		return 0, false
	}

	return min(freq, MaxFrequencyRatio*sampleRate), true
}

func normalizedQ(q float64) float64 {
	if !(q > 0) || math.IsInf(q, 0) {
		return ButterworthQ
	}

	return q
}

func normalize(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Passthrough()
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
