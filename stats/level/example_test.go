package level_test

import (
	"fmt"

	"github.com/cwbudde/algo-pedal/stats/level"
)

func ExampleMeter() {
	m := level.NewMeter()
	m.Update([]float64{0.5, -0.5})
	m.Update([]float64{1, 0})

	s := m.Result()
	fmt.Printf("peak=%.2f clipped=%d dc=%.3f\n", s.Peak, s.Clipped, s.DC)
	// Output:
	// peak=1.00 clipped=1 dc=0.250
}
