package response

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-amp/dsp/filter/biquad"
	"github.com/cwbudde/algo-amp/dsp/filter/design"
	"github.com/cwbudde/algo-amp/internal/testutil"
)

func TestAnalyzeImpulseIsFlat(t *testing.T) {
	spec, err := Analyze(testutil.Impulse(64, 0), 48000, 0)
	if err != nil {
		t.Fatal(err)
	}

	if spec.FFTSize != 64 || len(spec.Magnitude) != 33 {
		t.Fatalf("size %d, bins %d", spec.FFTSize, len(spec.Magnitude))
	}

	for k, m := range spec.Magnitude {
		if math.Abs(m-1) > 1e-12 {
			t.Fatalf("bin %d = %v, want 1", k, m)
		}
	}
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		rate   float64
		size   int
		want   error
	}{
		{"empty", nil, 48000, 0, ErrEmptySignal},
		{"zero rate", []float64{1}, 0, 0, ErrInvalidSampleRate},
		{"NaN rate", []float64{1}, math.NaN(), 0, ErrInvalidSampleRate},
		{"not power of two", []float64{1}, 48000, 1000, ErrInvalidFFTSize},
		{"negative size", []float64{1}, 48000, -8, ErrInvalidFFTSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Analyze(tt.signal, tt.rate, tt.size); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAnalyzeMatchesAnalyticBiquad(t *testing.T) {
	const (
		rate = 48000.0
		n    = 8192
	)

	tests := []struct {
		name   string
		coeffs []biquad.Coefficients
	}{
		{"peak", []biquad.Coefficients{design.Peak(1000, 6, 1, rate)}},
		{"low shelf", []biquad.Coefficients{design.LowShelf(200, -9, design.ButterworthQ, rate)}},
		{"cascade", []biquad.Coefficients{
			design.Highpass(80, 0.8, rate),
			design.Peak(1800, 4, 1.2, rate),
			design.Lowpass(4800, 0.7, rate),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := biquad.NewChain(tt.coeffs...)
			ir := Capture(n, chain.ProcessSample)

			spec, err := Analyze(ir, rate, n)
			if err != nil {
				t.Fatal(err)
			}

			analytic := biquad.NewChain(tt.coeffs...)

			for k := 4; k < n/2; k += 97 {
				f := spec.Frequency(k)
				want := analytic.MagnitudeDB(f, rate)

				if got := spec.DB(f); math.Abs(got-want) > 0.01 {
					t.Fatalf("%.1f Hz: measured %.4f dB, analytic %.4f dB", f, got, want)
				}
			}
		})
	}
}

func TestSpectrumAt(t *testing.T) {
	spec := &Spectrum{SampleRate: 8, FFTSize: 8, Magnitude: []float64{0, 1, 2, 3, 4}}

	tests := []struct {
		freq float64
		want float64
	}{
		{0, 0},
		{1, 1},
		{1.5, 1.5},
		{4, 4},
		{10, 4},
		{-3, 0},
	}

	for _, tt := range tests {
		if got := spec.At(tt.freq); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("At(%v) = %v, want %v", tt.freq, got, tt.want)
		}
	}

	if bin, f := spec.Peak(); bin != 4 || f != 4 {
		t.Fatalf("Peak = %d, %v", bin, f)
	}
}

func TestCapture(t *testing.T) {
	var calls int

	ir := Capture(5, func(x float64) float64 {
		calls++
		return 2 * x
	})

	testutil.RequireSliceNearlyEqual(t, ir, []float64{2, 0, 0, 0, 0}, 0)

	if calls != 5 {
		t.Fatalf("process called %d times", calls)
	}

	if Capture(0, nil) != nil {
		t.Fatal("Capture(0) returned data")
	}
}
