package biquad

import (
	"math"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func lowpass() Coefficients {
	// 2nd-order Butterworth-ish lowpass at fs/8.
	return Coefficients{
		B0: 0.09763107293781749,
		B1: 0.19526214587563498,
		B2: 0.09763107293781749,
		A1: -0.9428090415820632,
		A2: 0.33333333333333315,
	}
}

func TestPassthroughIsIdentity(t *testing.T) {
	s := NewSection(Passthrough())
	for i, x := range []float64{1, 0, -1, 0.5, 0.25} {
		if y := s.ProcessSample(x); y != x {
			t.Fatalf("sample %d: got %v, want %v", i, y, x)
		}
	}

	if !Passthrough().IsPassthrough() {
		t.Fatal("Passthrough().IsPassthrough() = false")
	}

	if lowpass().IsPassthrough() {
		t.Fatal("lowpass reported as passthrough")
	}
}

func TestProcessSampleHandTrace(t *testing.T) {
	s := NewSection(Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04})

	// n=0: y=0.25, d0=0.55, d1=0.24
	// n=1: y=0.55, d0=0.35, d1=-0.022
	want := []float64{0.25, 0.55}
	in := []float64{1, 0}

	for i := range in {
		if y := s.ProcessSample(in[i]); !almostEqual(y, want[i], eps) {
			t.Fatalf("n=%d: got %v, want %v", i, y, want[i])
		}
	}

	st := s.State()
	if !almostEqual(st[0], 0.35, eps) || !almostEqual(st[1], -0.022, eps) {
		t.Fatalf("state = %v, want [0.35 -0.022]", st)
	}
}

func TestProcessBlockMatchesSample(t *testing.T) {
	ref := NewSection(lowpass())
	blk := NewSection(lowpass())

	buf := make([]float64, 257)
	for i := range buf {
		buf[i] = math.Sin(2 * math.Pi * float64(i) / 19)
	}

	src := append([]float64(nil), buf...)

	blk.ProcessBlock(buf[:100])
	blk.ProcessBlock(buf[100:])

	for i, x := range src {
		if want := ref.ProcessSample(x); !almostEqual(buf[i], want, 1e-12) {
			t.Fatalf("sample %d: got %v, want %v", i, buf[i], want)
		}
	}

	if bs, rs := blk.State(), ref.State(); !almostEqual(bs[0], rs[0], 1e-12) || !almostEqual(bs[1], rs[1], 1e-12) {
		t.Fatalf("state diverged: %v vs %v", blk.State(), ref.State())
	}
}

func TestProcessBlockEmpty(t *testing.T) {
	s := NewSection(lowpass())
	s.ProcessBlock(nil)

	if s.State() != [2]float64{} {
		t.Fatalf("state changed on empty block: %v", s.State())
	}
}

func TestResetAndSetState(t *testing.T) {
	s := NewSection(lowpass())
	s.ProcessSample(1)

	saved := s.State()
	s.Reset()

	if s.State() != [2]float64{} {
		t.Fatalf("Reset left state %v", s.State())
	}

	s.SetState(saved)
	if s.State() != saved {
		t.Fatalf("SetState = %v, want %v", s.State(), saved)
	}
}
