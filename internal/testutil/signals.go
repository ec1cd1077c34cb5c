// Package testutil provides deterministic test signals and block helpers
// shared by the pedal's tests.
package testutil

import (
	"math"
	"math/rand"
)

// Sine generates n samples of a sine wave starting at phase 0.
func Sine(freqHz, sampleRate, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Noise generates uniform white noise in [-amplitude, amplitude) from a
// fixed seed.
func Noise(seed int64, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse returns n samples with a single 1 at pos.
func Impulse(n, pos int) []float64 {
	out := make([]float64, n)
	if pos >= 0 && pos < n {
		out[pos] = 1
	}
	return out
}

// DC returns n samples of value.
func DC(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// Processor is a block transform bound to fixed source and destination
// blocks.
type Processor interface {
	Process()
}

// RunBlocks feeds signal through p one block at a time via the blocks src
// and dst it is bound to, and returns the concatenated output. A trailing
// partial block is zero padded and its padding dropped from the result.
func RunBlocks(p Processor, src, dst, signal []float64) []float64 {
	out := make([]float64, 0, len(signal))
	for off := 0; off < len(signal); off += len(src) {
		n := copy(src, signal[off:])
		clear(src[n:])
		p.Process()
		out = append(out, dst[:n]...)
	}
	return out
}
