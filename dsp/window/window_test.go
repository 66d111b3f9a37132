package window

import (
	"math"
	"testing"
)

func TestGenerateLengthAndFinite(t *testing.T) {
	types := []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman, TypeBlackmanHarris}

	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
			}
		})
	}

	if Generate(TypeHann, 0) != nil {
		t.Fatal("expected nil for zero length")
	}
}

func TestHannSymmetricEndpoints(t *testing.T) {
	w := Generate(TypeHann, 9)

	if math.Abs(w[0]) > 1e-15 || math.Abs(w[8]) > 1e-15 {
		t.Fatalf("endpoints = %v, %v, want 0", w[0], w[8])
	}

	if math.Abs(w[4]-1) > 1e-15 {
		t.Fatalf("centre = %v, want 1", w[4])
	}

	for i := range 4 {
		if math.Abs(w[i]-w[8-i]) > 1e-15 {
			t.Fatalf("asymmetric at %d: %v vs %v", i, w[i], w[8-i])
		}
	}
}

func TestHannPeriodic(t *testing.T) {
	const n = 16

	w := Generate(TypeHann, n, WithPeriodic())

	if w[0] != 0 {
		t.Fatalf("w[0] = %v, want 0", w[0])
	}

	if math.Abs(w[n/2]-1) > 1e-15 {
		t.Fatalf("w[n/2] = %v, want 1", w[n/2])
	}

	// The periodic Hann sums to exactly N/2, and its shifted copies
	// overlap-add to a constant at 50 %.
	if g := CoherentGain(w); math.Abs(g-0.5) > 1e-12 {
		t.Fatalf("coherent gain = %v, want 0.5", g)
	}

	for i := range n / 2 {
		if s := w[i] + w[i+n/2]; math.Abs(s-1) > 1e-12 {
			t.Fatalf("overlap-add at %d = %v, want 1", i, s)
		}
	}
}

func TestApply(t *testing.T) {
	buf := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	Apply(TypeHamming, buf)

	want := Generate(TypeHamming, len(buf))
	for i := range buf {
		if buf[i] != want[i] {
			t.Fatalf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}

	rect := []float64{2, 3}
	Apply(TypeRectangular, rect)

	if rect[0] != 2 || rect[1] != 3 {
		t.Fatalf("rectangular changed the data: %v", rect)
	}

	Apply(TypeHann, nil)
}

func TestCoherentGain(t *testing.T) {
	tests := []struct {
		typ  Type
		want float64
	}{
		{TypeRectangular, 1},
		{TypeHann, 0.5},
		{TypeHamming, 0.54},
		{TypeBlackman, 0.42},
		{TypeBlackmanHarris, 0.35875},
	}

	for _, tt := range tests {
		if g := CoherentGain(Generate(tt.typ, 1024, WithPeriodic())); math.Abs(g-tt.want) > 1e-9 {
			t.Fatalf("%v: coherent gain %v, want %v", tt.typ, g, tt.want)
		}
	}

	if CoherentGain(nil) != 0 {
		t.Fatal("expected 0 for empty coefficients")
	}
}
