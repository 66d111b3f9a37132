package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
		{name: "gain floor", value: -40, min: -30, max: 30, expected: -30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}

	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}

	if !NearlyEqual(1e6, 1e6+1e-7, 0) {
		t.Fatal("expected relative comparison with default epsilon")
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-40); got != 0 {
		t.Fatalf("FlushDenormals(1e-40) = %v, want 0", got)
	}

	if got := FlushDenormals(-math.SmallestNonzeroFloat64); got != 0 {
		t.Fatalf("FlushDenormals(-subnormal) = %v, want 0", got)
	}

	if got := FlushDenormals(1e-6); got != 1e-6 {
		t.Fatalf("FlushDenormals(1e-6) = %v, want unchanged", got)
	}
}

func TestSanitize(t *testing.T) {
	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Sanitize(x); got != 0 {
			t.Fatalf("Sanitize(%v) = %v, want 0", x, got)
		}
	}

	for _, x := range []float64{0, -0.5, 0.25, 3.5} {
		if got := Sanitize(x); got != x {
			t.Fatalf("Sanitize(%v) = %v, want unchanged", x, got)
		}
	}

	if IsFinite(math.NaN()) || !IsFinite(1) {
		t.Fatal("IsFinite misclassified")
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(2, 4, 0); got != 2 {
		t.Fatalf("Lerp t=0 = %v", got)
	}

	if got := Lerp(2, 4, 1); got != 4 {
		t.Fatalf("Lerp t=1 = %v", got)
	}

	if got := Lerp(2, 4, 0.25); got != 2.5 {
		t.Fatalf("Lerp t=0.25 = %v", got)
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}

	if DBToLinear(0) != 1 {
		t.Fatalf("DBToLinear(0) = %v, want exactly 1", DBToLinear(0))
	}

	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}

	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}
