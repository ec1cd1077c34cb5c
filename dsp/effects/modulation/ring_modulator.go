package modulation

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultRingModRate  = 0.5
	defaultRingModBlend = 0.5

	// RingModPhaseStep is the carrier phase advance per sample at rate 1.
	RingModPhaseStep = 0.02
)

var ringModParams = []effects.ParamSpec{
	{Param: effects.ParamRate, Range: effects.Range{Min: 0, Max: 1, MinOpen: true}, Default: defaultRingModRate},
	{Param: effects.ParamBlend, Range: effects.Range{Min: 0, Max: 0.99, MinOpen: true, MaxOpen: true}, Default: defaultRingModBlend},
	{Param: effects.ParamWaveform, Range: effects.Range{Min: 0, Max: float64(WaveformSquare)}, Default: float64(WaveformSine)},
}

// RingModulatorOption mutates ring modulator construction parameters.
type RingModulatorOption func(*ringModConfig) error

type ringModConfig struct {
	rate     float64
	blend    float64
	waveform Waveform
}

// WithRingModRate sets the carrier speed, in (0, 1].
func WithRingModRate(rate float64) RingModulatorOption {
	return func(cfg *ringModConfig) error {
		if err := effects.CheckParam("ring modulator", ringModParams, effects.ParamRate, rate); err != nil {
			return err
		}

		cfg.rate = rate

		return nil
	}
}

// WithRingModBlend sets the wet amount, in (0, 0.99).
func WithRingModBlend(blend float64) RingModulatorOption {
	return func(cfg *ringModConfig) error {
		if err := effects.CheckParam("ring modulator", ringModParams, effects.ParamBlend, blend); err != nil {
			return err
		}

		cfg.blend = blend

		return nil
	}
}

// WithRingModWaveform sets the carrier shape.
func WithRingModWaveform(w Waveform) RingModulatorOption {
	return func(cfg *ringModConfig) error {
		if w > WaveformSquare {
			return fmt.Errorf("%w: ring modulator waveform: %s", effects.ErrParamOutOfRange, w)
		}

		cfg.waveform = w

		return nil
	}
}

// RingModulator multiplies the input by a bipolar carrier and blends the
// product with the dry signal:
//
//	out = (1-blend)*in + blend*in*carrier(phase)
//
// The carrier phase advances by rate*RingModPhaseStep per sample and wraps
// at 2π.
type RingModulator struct {
	src, dst []float64
	wet      []float64

	rate     core.AtomicFloat
	blend    core.AtomicFloat
	waveform atomic.Uint32
	phase    float64
}

// NewRingModulator binds a ring modulator to src and dst.
func NewRingModulator(src, dst []float64, opts ...RingModulatorOption) (*RingModulator, error) {
	if err := effects.CheckBlocks(src, dst); err != nil {
		return nil, err
	}

	cfg := ringModConfig{
		rate:     defaultRingModRate,
		blend:    defaultRingModBlend,
		waveform: WaveformSine,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	r := &RingModulator{src: src, dst: dst, wet: make([]float64, len(src))}
	r.rate.Store(cfg.rate)
	r.blend.Store(cfg.blend)
	r.waveform.Store(uint32(cfg.waveform))

	return r, nil
}

// Process runs one block.
func (r *RingModulator) Process() {
	inc := r.rate.Load() * RingModPhaseStep
	blend := r.blend.Load()
	w := r.Waveform()

	for i := range r.wet {
		r.wet[i] = w.At(r.phase)
		r.phase = core.WrapPhase(r.phase, inc)
	}

	dst := r.dst[:len(r.src)]
	vecmath.MulBlockInPlace(r.wet, r.src)
	vecmath.ScaleBlock(r.wet, r.wet, blend)
	vecmath.ScaleBlock(dst, r.src, 1-blend)
	vecmath.AddBlockInPlace(dst, r.wet)
}

// Update sets ParamRate, ParamBlend or ParamWaveform. A waveform value must
// be 0 (sine), 1 (triangle) or 2 (square).
func (r *RingModulator) Update(p effects.Param, value float64) error {
	if err := effects.CheckParam("ring modulator", ringModParams, p, value); err != nil {
		return err
	}

	switch p {
	case effects.ParamRate:
		r.rate.Store(value)
	case effects.ParamBlend:
		r.blend.Store(value)
	case effects.ParamWaveform:
		if value != math.Trunc(value) {
			return fmt.Errorf("%w: ring modulator waveform must be 0, 1 or 2: %f",
				effects.ErrParamOutOfRange, value)
		}

		r.waveform.Store(uint32(value))
	}

	return nil
}

// SetWaveform selects the carrier shape.
func (r *RingModulator) SetWaveform(w Waveform) error {
	return r.Update(effects.ParamWaveform, float64(w))
}

// Waveform returns the carrier shape.
func (r *RingModulator) Waveform() Waveform { return Waveform(r.waveform.Load()) }

// Value returns the current value of p.
func (r *RingModulator) Value(p effects.Param) (float64, error) {
	switch p {
	case effects.ParamRate:
		return r.rate.Load(), nil
	case effects.ParamBlend:
		return r.blend.Load(), nil
	case effects.ParamWaveform:
		return float64(r.waveform.Load()), nil
	}

	return 0, fmt.Errorf("%w: ring modulator has no %s", effects.ErrUnknownParam, p)
}

// Params describes the ring modulator's parameters.
func (r *RingModulator) Params() []effects.ParamSpec { return ringModParams }

// Reset returns the carrier to phase 0.
func (r *RingModulator) Reset() { r.phase = 0 }

// Phase returns the carrier phase in radians, in [0, 2π).
func (r *RingModulator) Phase() float64 { return r.phase }
