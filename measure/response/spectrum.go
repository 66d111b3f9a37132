package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-amp/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by the analysis functions.
var (
	ErrEmptySignal       = errors.New("response: signal is empty")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrInvalidFFTSize    = errors.New("response: FFT size must be a power of two >= 2")
)

// Spectrum is the one-sided magnitude spectrum of a real signal. Magnitude
// holds bins 0 through FFTSize/2.
type Spectrum struct {
	SampleRate float64
	FFTSize    int
	Magnitude  []float64
}

// Capture feeds a unit impulse followed by n-1 zeros through process and
// returns the n outputs.
func Capture(n int, process func(float64) float64) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	out[0] = process(1)

	for i := 1; i < n; i++ {
		out[i] = process(0)
	}

	return out
}

// Analyze computes the magnitude spectrum of signal, zero padded to fftSize.
// A zero fftSize picks the next power of two that holds the signal. The
// signal is not windowed, which is what an impulse response wants.
func Analyze(signal []float64, sampleRate float64, fftSize int) (*Spectrum, error) {
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if fftSize == 0 {
		fftSize = nextPowerOf2(len(signal))
	}

	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}

	bins, err := forward(signal, fftSize)
	if err != nil {
		return nil, err
	}

	half := fftSize/2 + 1
	re := make([]float64, half)
	im := make([]float64, half)

	for i := range half {
		re[i] = real(bins[i])
		im[i] = imag(bins[i])
	}

	mag := make([]float64, half)
	vecmath.Magnitude(mag, re, im)

	return &Spectrum{SampleRate: sampleRate, FFTSize: fftSize, Magnitude: mag}, nil
}

func forward(signal []float64, fftSize int) ([]complex128, error) {
	in := make([]complex128, fftSize)
	for i, x := range signal[:min(len(signal), fftSize)] {
		in[i] = complex(x, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: fft: %w", err)
	}

	return out, nil
}

// BinWidth returns the spacing between bins in Hz.
func (s *Spectrum) BinWidth() float64 {
	return s.SampleRate / float64(s.FFTSize)
}

// Frequency returns the center frequency of bin k.
func (s *Spectrum) Frequency(k int) float64 {
	return float64(k) * s.BinWidth()
}

// At returns the magnitude at freqHz, linearly interpolated between bins.
// Frequencies outside [0, Nyquist] clamp to the edge bins.
func (s *Spectrum) At(freqHz float64) float64 {
	last := len(s.Magnitude) - 1

	pos := core.Clamp(freqHz/s.BinWidth(), 0, float64(last))
	if math.IsNaN(pos) {
		return 0
	}

	i := int(pos)
	if i >= last {
		return s.Magnitude[last]
	}

	frac := pos - float64(i)

	return s.Magnitude[i] + frac*(s.Magnitude[i+1]-s.Magnitude[i])
}

// DB returns At(freqHz) in decibels.
func (s *Spectrum) DB(freqHz float64) float64 {
	return core.LinearToDB(s.At(freqHz))
}

// Peak returns the bin with the largest magnitude and its frequency.
func (s *Spectrum) Peak() (bin int, freqHz float64) {
	for k, m := range s.Magnitude {
		if m > s.Magnitude[bin] {
			bin = k
		}
	}

	return bin, s.Frequency(bin)
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return max(p, 2)
}
