package response

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-amp/dsp/window"
)

// ErrNoFundamental is returned when the fundamental has no energy or lies
// outside the spectrum.
var ErrNoFundamental = errors.New("response: no fundamental found")

// captureBins is the half width of a Hann main lobe in bins.
const captureBins = 2

// Distortion summarizes the harmonic content of a processed sine. Ratios
// are relative to the fundamental amplitude.
type Distortion struct {
	Fundamental float64
	Level       float64
	THD         float64
	Odd         float64
	Even        float64
	Harmonics   []float64
}

// THDDB returns THD in decibels.
func (d Distortion) THDDB() float64 {
	if d.THD <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(d.THD)
}

// Harmonics measures the distortion of signal, a sine at fundamentalHz that
// has passed through a nonlinear stage. The signal is Hann windowed and
// zero padded to the next power of two. Up to maxHarmonics harmonics below
// Nyquist are summed; zero means all of them.
func Harmonics(signal []float64, sampleRate, fundamentalHz float64, maxHarmonics int) (Distortion, error) {
	if len(signal) == 0 {
		return Distortion{}, ErrEmptySignal
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Distortion{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	windowed := append([]float64(nil), signal...)
	window.Apply(window.TypeHann, windowed, window.WithPeriodic())

	spec, err := Analyze(windowed, sampleRate, 0)
	if err != nil {
		return Distortion{}, err
	}

	maxBin := len(spec.Magnitude) - 1

	fundBin := int(math.Round(fundamentalHz / spec.BinWidth()))
	if fundBin <= captureBins || fundBin > maxBin {
		return Distortion{}, fmt.Errorf("%w: %v Hz", ErrNoFundamental, fundamentalHz)
	}

	level := spec.band(fundBin)
	if level <= 0 {
		return Distortion{}, fmt.Errorf("%w: %v Hz", ErrNoFundamental, fundamentalHz)
	}

	d := Distortion{Fundamental: spec.Frequency(fundBin), Level: level}

	var sum, odd, even float64

	for k := 2; k*fundBin <= maxBin; k++ {
		if maxHarmonics > 0 && k-1 > maxHarmonics {
			break
		}

		h := spec.band(k*fundBin) / level
		d.Harmonics = append(d.Harmonics, h)
		sum += h * h

		if k%2 == 0 {
			even += h * h
		} else {
			odd += h * h
		}
	}

	d.THD = math.Sqrt(sum)
	d.Odd = math.Sqrt(odd)
	d.Even = math.Sqrt(even)

	return d, nil
}

// band returns the RMS-summed magnitude of the main lobe around bin.
func (s *Spectrum) band(bin int) float64 {
	lo := max(bin-captureBins, 0)
	hi := min(bin+captureBins, len(s.Magnitude)-1)

	var e float64
	for i := lo; i <= hi; i++ {
		e += s.Magnitude[i] * s.Magnitude[i]
	}

	return math.Sqrt(e)
}
