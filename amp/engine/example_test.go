package engine_test

import (
	"fmt"

	"github.com/cwbudde/algo-amp/amp/engine"
	"github.com/cwbudde/algo-amp/amp/param"
)

func ExampleEngine() {
	store := param.NewStore()
	store.SetPlain(param.CabinetMix, 0)

	amp, err := engine.New(store)
	if err != nil {
		fmt.Println(err)
		return
	}

	if err := amp.Configure(48000, 256); err != nil {
		fmt.Println(err)
		return
	}

	src := []float64{0.25, -0.5, 0}
	dst := make([]float64, len(src))
	amp.Process(dst, src)

	for _, y := range dst {
		fmt.Printf("%.3f\n", y)
	}

	fmt.Println(amp.State(), amp.Latency())
	// Output:
	// 0.250
	// -0.500
	// 0.000
	// ready 256
}
