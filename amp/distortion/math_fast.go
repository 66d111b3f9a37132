//go:build fastmath

package distortion

import "github.com/meko-christian/algo-approx"

// mathSqrt runs once per sample on the energy envelope.
func mathSqrt(x float64) float64 {
	return approx.FastSqrt(x)
}

// mathExp only runs when the sample rate changes.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}
