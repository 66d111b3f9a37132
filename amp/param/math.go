//go:build !fastmath

package param

import "math"

func mapExp(x float64) float64 {
	return math.Exp(x)
}
