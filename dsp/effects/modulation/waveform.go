package modulation

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-pedal/dsp/effects"
)

// Waveform selects the carrier shape of the ring modulator.
type Waveform uint8

const (
	WaveformSine Waveform = iota
	WaveformTriangle
	WaveformSquare
)

var waveformNames = [...]string{
	WaveformSine:     "sine",
	WaveformTriangle: "triangle",
	WaveformSquare:   "square",
}

func (w Waveform) String() string {
	if int(w) < len(waveformNames) {
		return waveformNames[w]
	}

	return fmt.Sprintf("waveform(%d)", w)
}

// ParseWaveform maps a waveform name to its value.
func ParseWaveform(name string) (Waveform, error) {
	for i, n := range waveformNames {
		if strings.EqualFold(n, name) {
			return Waveform(i), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown waveform %q", effects.ErrParamOutOfRange, name)
}

// WaveformFromPercent maps a 0-100 menu counter onto a waveform:
// below 33 is sine, below 66 triangle, anything else square.
func WaveformFromPercent(percent float64) Waveform {
	switch {
	case percent < 33:
		return WaveformSine
	case percent < 66:
		return WaveformTriangle
	default:
		return WaveformSquare
	}
}

// At evaluates the waveform at phase (radians). All shapes span [-1, 1].
func (w Waveform) At(phase float64) float64 {
	switch w {
	case WaveformTriangle:
		return math.Asin(math.Cos(phase)) / (math.Pi / 2)
	case WaveformSquare:
		if math.Sin(phase) >= 0 {
			return 1
		}

		return -1
	default:
		return math.Sin(phase)
	}
}
