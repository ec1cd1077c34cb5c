package modulation_test

import (
	"fmt"

	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/effects/modulation"
)

func ExampleRingModulator_Update() {
	block := []float64{0.5, 0.5, 0.5, 0.5}
	rm, err := modulation.NewRingModulator(block, block)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(rm.Update(effects.ParamBlend, 1))
	fmt.Println(rm.SetWaveform(modulation.WaveformSquare), rm.Waveform())
	// Output:
	// effects: parameter out of range: ring modulator blend must be in (0, 0.99): 1.000000
	// <nil> square
}
