//go:build fastmath

package param

import "github.com/meko-christian/algo-approx"

// mapExp runs once per sample per moving logarithmic parameter.
func mapExp(x float64) float64 {
	return approx.FastExp(x)
}
