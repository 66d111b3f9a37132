package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-amp/dsp/filter/biquad"
)

func ExampleChain() {
	c := biquad.NewChain(
		biquad.Coefficients{B0: 0.5, B1: 0.5},
		biquad.Passthrough(),
	)

	for _, x := range []float64{1, 1, 1} {
		fmt.Printf("%.2f\n", c.ProcessSample(x))
	}

	fmt.Println(c.IsStable())
	// Output:
	// 0.50
	// 1.00
	// 1.00
	// true
}
