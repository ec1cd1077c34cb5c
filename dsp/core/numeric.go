package core

import "math"

// TwoPi is one full oscillator cycle in radians.
const TwoPi = 2 * math.Pi

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// WrapPhase advances phase by inc and folds the result back into [0, 2π).
// inc is expected to be smaller than one cycle.
func WrapPhase(phase, inc float64) float64 {
	phase += inc
	if phase >= TwoPi {
		phase -= TwoPi
	}
	return phase
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
