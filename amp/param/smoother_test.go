package param

import (
	"math"
	"testing"
	"time"
)

func TestSmoothingCoefficient(t *testing.T) {
	c := SmoothingCoefficient(50*time.Millisecond, 48000)
	if !almostEqual(math.Pow(c, 2400), SettleTolerance, 1e-12) {
		t.Fatalf("c^2400 = %v, want %v", math.Pow(c, 2400), SettleTolerance)
	}

	if SmoothingCoefficient(0, 48000) != 0 {
		t.Fatal("zero duration should snap")
	}

	if SmoothingCoefficient(time.Second, math.NaN()) != 0 {
		t.Fatal("invalid rate should snap")
	}
}

func TestSmootherMonotonicBoundedAndSettles(t *testing.T) {
	const sr = 48000.0

	var s Smoother
	s.Configure(50*time.Millisecond, sr)
	s.Snap(0)
	s.SetTarget(1)

	prev := 0.0
	maxStep := 1 - s.Coefficient()

	for i := range 2400 {
		v := s.Next()
		if v < prev {
			t.Fatalf("sample %d: not monotonic (%v < %v)", i, v, prev)
		}

		if v-prev > maxStep+1e-15 {
			t.Fatalf("sample %d: step %v exceeds %v", i, v-prev, maxStep)
		}

		prev = v
	}

	if rem := 1 - s.Value(); rem > SettleTolerance*1.0001 {
		t.Fatalf("remaining error after one duration = %v", rem)
	}

	for range 48000 {
		s.Next()
	}

	if !s.Settled() || s.Value() != 1 {
		t.Fatalf("ramp did not land on target: %v", s.Value())
	}
}

func TestSmootherSnapWithoutDuration(t *testing.T) {
	var s Smoother
	s.Configure(0, 48000)
	s.SetTarget(0.75)

	if s.Value() != 0.75 || !s.Settled() {
		t.Fatalf("zero-duration smoother did not snap: %v", s.Value())
	}

	if s.Target() != 0.75 {
		t.Fatalf("Target() = %v", s.Target())
	}
}
