package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultFuzzGain = 9.0
	defaultFuzzMix  = 0.5
)

var fuzzParams = []ParamSpec{
	{Param: ParamGain, Range: Range{Min: 0, Max: 18, MinOpen: true}, Default: defaultFuzzGain},
	{Param: ParamMix, Range: Range{Min: 0, Max: 1, MaxOpen: true}, Default: defaultFuzzMix},
}

// FuzzOption mutates fuzz construction parameters.
type FuzzOption func(*fuzzConfig) error

type fuzzConfig struct {
	gain float64
	mix  float64
}

// WithFuzzGain sets the drive into the waveshaper, in (0, 18].
func WithFuzzGain(gain float64) FuzzOption {
	return func(cfg *fuzzConfig) error {
		if err := CheckParam("fuzz", fuzzParams, ParamGain, gain); err != nil {
			return err
		}
		cfg.gain = gain
		return nil
	}
}

// WithFuzzMix sets the wet amount, in [0, 1).
func WithFuzzMix(mix float64) FuzzOption {
	return func(cfg *fuzzConfig) error {
		if err := CheckParam("fuzz", fuzzParams, ParamMix, mix); err != nil {
			return err
		}
		cfg.mix = mix
		return nil
	}
}

// Fuzz drives each sample through an exponential waveshaper
//
//	z = sign(q) * (1 - e^-|q|),  q = gain*x
//
// then normalizes the block so its wet peak is 1 and cross-fades:
//
//	out = mix*z/peak + (1-mix)*x
//
// A silent block produces silent wet output.
type Fuzz struct {
	src, dst []float64
	wet      []float64

	gain core.AtomicFloat
	mix  core.AtomicFloat
}

// NewFuzz binds a fuzz to src and dst.
func NewFuzz(src, dst []float64, opts ...FuzzOption) (*Fuzz, error) {
	if err := CheckBlocks(src, dst); err != nil {
		return nil, err
	}
	cfg := fuzzConfig{gain: defaultFuzzGain, mix: defaultFuzzMix}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	f := &Fuzz{src: src, dst: dst, wet: make([]float64, len(src))}
	f.gain.Store(cfg.gain)
	f.mix.Store(cfg.mix)
	return f, nil
}

// Process runs one block.
func (f *Fuzz) Process() {
	gain := f.gain.Load()
	mix := f.mix.Load()

	for i, x := range f.src {
		q := gain * x
		f.wet[i] = math.Copysign(1-fuzzExp(-math.Abs(q)), q)
	}
	peak := core.PeakAbs(f.wet)

	wetGain := 0.0
	if peak > 0 {
		wetGain = mix / peak
	}
	dst := f.dst[:len(f.src)]
	vecmath.ScaleBlock(f.wet, f.wet, wetGain)
	vecmath.ScaleBlock(dst, f.src, 1-mix)
	vecmath.AddBlockInPlace(dst, f.wet)
}

// Update sets ParamGain or ParamMix.
func (f *Fuzz) Update(p Param, value float64) error {
	if err := CheckParam("fuzz", fuzzParams, p, value); err != nil {
		return err
	}
	switch p {
	case ParamGain:
		f.gain.Store(value)
	case ParamMix:
		f.mix.Store(value)
	}
	return nil
}

// Value returns the current value of p.
func (f *Fuzz) Value(p Param) (float64, error) {
	switch p {
	case ParamGain:
		return f.gain.Load(), nil
	case ParamMix:
		return f.mix.Load(), nil
	}
	return 0, fmt.Errorf("%w: fuzz has no %s", ErrUnknownParam, p)
}

// Params describes the fuzz's parameters.
func (f *Fuzz) Params() []ParamSpec { return fuzzParams }

// Reset does nothing; each block is shaped independently.
func (f *Fuzz) Reset() {}
