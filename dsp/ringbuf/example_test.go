package ringbuf_test

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-pedal/dsp/ringbuf"
)

func ExampleRing() {
	r, err := ringbuf.Make[float64](4)
	if err != nil {
		panic(err)
	}

	for i := range 5 {
		if err := r.Put(float64(i)); errors.Is(err, ringbuf.ErrFull) {
			fmt.Println("full at", i)
		}
	}

	v, _ := r.Get()
	fmt.Println(v, r.Count())

	// Output:
	// full at 4
	// 0 3
}
