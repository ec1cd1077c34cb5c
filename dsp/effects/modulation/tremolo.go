package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultTremoloRate  = 0.7
	defaultTremoloDepth = 0.8

	// TremoloPhaseStep is the LFO phase advance per sample at rate 1.
	TremoloPhaseStep = 0.002
)

var tremoloParams = []effects.ParamSpec{
	{Param: effects.ParamRate, Range: effects.Range{Min: 0, Max: 1, MinOpen: true, MaxOpen: true}, Default: defaultTremoloRate},
	{Param: effects.ParamDepth, Range: effects.Range{Min: 0, Max: 1}, Default: defaultTremoloDepth},
}

// TremoloOption mutates tremolo construction parameters.
type TremoloOption func(*tremoloConfig) error

type tremoloConfig struct {
	rate  float64
	depth float64
}

// WithTremoloRate sets the LFO speed, in (0, 1).
func WithTremoloRate(rate float64) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if err := effects.CheckParam("tremolo", tremoloParams, effects.ParamRate, rate); err != nil {
			return err
		}

		cfg.rate = rate

		return nil
	}
}

// WithTremoloDepth sets the modulation depth, in [0, 1].
func WithTremoloDepth(depth float64) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if err := effects.CheckParam("tremolo", tremoloParams, effects.ParamDepth, depth); err != nil {
			return err
		}

		cfg.depth = depth

		return nil
	}
}

// Tremolo amplitude-modulates the input with a sine LFO:
//
//	gain = 1 - (depth*0.5*sin(phase) + 0.5)
//	out  = in * gain
//
// The phase advances by rate*TremoloPhaseStep per sample and wraps at 2π.
type Tremolo struct {
	src, dst []float64
	gains    []float64

	rate  core.AtomicFloat
	depth core.AtomicFloat
	phase float64
}

// NewTremolo binds a tremolo to src and dst.
func NewTremolo(src, dst []float64, opts ...TremoloOption) (*Tremolo, error) {
	if err := effects.CheckBlocks(src, dst); err != nil {
		return nil, err
	}

	cfg := tremoloConfig{rate: defaultTremoloRate, depth: defaultTremoloDepth}
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	t := &Tremolo{src: src, dst: dst, gains: make([]float64, len(src))}
	t.rate.Store(cfg.rate)
	t.depth.Store(cfg.depth)

	return t, nil
}

// Process runs one block.
func (t *Tremolo) Process() {
	inc := t.rate.Load() * TremoloPhaseStep
	depth := t.depth.Load()

	for i := range t.gains {
		t.gains[i] = 1 - (depth*0.5*math.Sin(t.phase) + 0.5)
		t.phase = core.WrapPhase(t.phase, inc)
	}

	vecmath.MulBlock(t.dst[:len(t.src)], t.src, t.gains)
}

// Update sets ParamRate or ParamDepth.
func (t *Tremolo) Update(p effects.Param, value float64) error {
	if err := effects.CheckParam("tremolo", tremoloParams, p, value); err != nil {
		return err
	}

	switch p {
	case effects.ParamRate:
		t.rate.Store(value)
	case effects.ParamDepth:
		t.depth.Store(value)
	}

	return nil
}

// Value returns the current value of p.
func (t *Tremolo) Value(p effects.Param) (float64, error) {
	switch p {
	case effects.ParamRate:
		return t.rate.Load(), nil
	case effects.ParamDepth:
		return t.depth.Load(), nil
	}

	return 0, fmt.Errorf("%w: tremolo has no %s", effects.ErrUnknownParam, p)
}

// Params describes the tremolo's parameters.
func (t *Tremolo) Params() []effects.ParamSpec { return tremoloParams }

// Reset returns the LFO to phase 0.
func (t *Tremolo) Reset() { t.phase = 0 }

// Phase returns the LFO phase in radians, in [0, 2π).
func (t *Tremolo) Phase() float64 { return t.phase }
