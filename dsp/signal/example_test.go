package signal_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-harness/dsp/core"
	"github.com/cwbudde/algo-harness/dsp/signal"
)

func ExampleGenerator_Sine() {
	g := signal.NewGenerator(core.WithSampleRate(1000))
	x, err := g.Sine(250, 1, 5)
	if err != nil {
		panic(err)
	}
	if math.Abs(x[4]) < 1e-12 {
		x[4] = 0
	}

	fmt.Printf("%.0f %.0f %.0f %.0f %.0f\n", x[0], x[1], x[2], x[3], x[4])

	// Output:
	// 0 1 0 -1 0
}

func ExampleGenerator_Impulse() {
	g := signal.NewGenerator()
	x, err := g.Impulse(0.9, 4, 0)
	if err != nil {
		panic(err)
	}
	fmt.Println(x)

	// Output:
	// [0.9 0 0 0]
}
