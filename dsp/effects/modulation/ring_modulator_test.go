package modulation

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingModulatorOutput(t *testing.T) {
	for _, w := range []Waveform{WaveformSine, WaveformTriangle, WaveformSquare} {
		t.Run(w.String(), func(t *testing.T) {
			src := make([]float64, 64)
			for i := range src {
				src[i] = math.Sin(2 * math.Pi * float64(i) / 31)
			}
			dst := make([]float64, len(src))
			rm, err := NewRingModulator(src, dst,
				WithRingModRate(1), WithRingModBlend(0.25), WithRingModWaveform(w))
			require.NoError(t, err)
			rm.Process()

			phase := 0.0
			for i, x := range src {
				want := 0.75*x + 0.25*x*w.At(phase)
				assert.InDelta(t, want, dst[i], 1e-9, "sample %d", i)
				phase += RingModPhaseStep
			}
		})
	}
}

func TestRingModulatorInPlace(t *testing.T) {
	a := []float64{1, 1, 1, 1}
	b := []float64{1, 1, 1, 1}
	out := make([]float64, 4)

	rm1, err := NewRingModulator(a, a, WithRingModWaveform(WaveformSquare))
	require.NoError(t, err)
	rm2, err := NewRingModulator(b, out, WithRingModWaveform(WaveformSquare))
	require.NoError(t, err)
	rm1.Process()
	rm2.Process()
	assert.InDeltaSlice(t, out, a, 1e-12)
	// Square carrier is +1 near phase 0, so the blend returns the input.
	assert.InDeltaSlice(t, []float64{1, 1, 1, 1}, out, 1e-12)
}

func TestRingModulatorPhaseWraps(t *testing.T) {
	buf := make([]float64, 64)
	rm, err := NewRingModulator(buf, buf, WithRingModRate(1))
	require.NoError(t, err)
	// 2π/0.02 ≈ 314 samples per cycle.
	for range 20 {
		rm.Process()
		assert.GreaterOrEqual(t, rm.Phase(), 0.0)
		assert.Less(t, rm.Phase(), 2*math.Pi)
	}
	assert.InDelta(t, math.Mod(20*64*RingModPhaseStep, 2*math.Pi), rm.Phase(), 1e-6)
}

func TestRingModulatorUpdate(t *testing.T) {
	buf := make([]float64, 4)
	_, err := NewRingModulator(nil, buf)
	require.ErrorIs(t, err, effects.ErrNilBuffer)
	_, err = NewRingModulator(buf, buf, WithRingModBlend(0.99))
	require.ErrorIs(t, err, effects.ErrParamOutOfRange)
	_, err = NewRingModulator(buf, buf, WithRingModWaveform(Waveform(3)))
	require.ErrorIs(t, err, effects.ErrParamOutOfRange)

	rm, err := NewRingModulator(buf, buf)
	require.NoError(t, err)
	assert.Equal(t, WaveformSine, rm.Waveform())

	require.NoError(t, rm.Update(effects.ParamRate, 1))
	require.ErrorIs(t, rm.Update(effects.ParamRate, 0), effects.ErrParamOutOfRange)
	require.ErrorIs(t, rm.Update(effects.ParamWaveform, 1.5), effects.ErrParamOutOfRange)
	require.ErrorIs(t, rm.Update(effects.ParamWaveform, 3), effects.ErrParamOutOfRange)
	require.NoError(t, rm.Update(effects.ParamWaveform, 2))
	assert.Equal(t, WaveformSquare, rm.Waveform())

	require.NoError(t, rm.SetWaveform(WaveformTriangle))
	v, err := rm.Value(effects.ParamWaveform)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	require.ErrorIs(t, rm.Update(effects.ParamDepth, 0.5), effects.ErrUnknownParam)
	_, err = rm.Value(effects.ParamGain)
	require.ErrorIs(t, err, effects.ErrUnknownParam)
}
