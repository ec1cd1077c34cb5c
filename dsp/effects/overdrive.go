package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedal/dsp/core"
)

const defaultOverdriveThreshold = 0.2

var overdriveParams = []ParamSpec{
	{Param: ParamThreshold, Range: Range{Min: 0, Max: 0.4, MinOpen: true}, Default: defaultOverdriveThreshold},
}

// OverdriveOption mutates overdrive construction parameters.
type OverdriveOption func(*overdriveConfig) error

type overdriveConfig struct {
	threshold float64
}

// WithOverdriveThreshold sets the knee threshold, in (0, 0.4].
func WithOverdriveThreshold(threshold float64) OverdriveOption {
	return func(cfg *overdriveConfig) error {
		if err := CheckParam("overdrive", overdriveParams, ParamThreshold, threshold); err != nil {
			return err
		}
		cfg.threshold = threshold
		return nil
	}
}

// Overdrive is a piecewise symmetric soft clipper. With t the threshold and
// u = |x|/t:
//
//	|x| <  t:        y = 2x
//	t <= |x| <= 2t:  y = sign(x) * (2t + (1-2t)*(1-(2-u)^2))
//	|x| >  2t:       y = sign(x)
//
// The knee meets both outer pieces continuously and equals the classic
// Schetzen curve at t = 1/3.
type Overdrive struct {
	src, dst  []float64
	threshold core.AtomicFloat
}

// NewOverdrive binds an overdrive to src and dst.
func NewOverdrive(src, dst []float64, opts ...OverdriveOption) (*Overdrive, error) {
	if err := CheckBlocks(src, dst); err != nil {
		return nil, err
	}
	cfg := overdriveConfig{threshold: defaultOverdriveThreshold}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	o := &Overdrive{src: src, dst: dst}
	o.threshold.Store(cfg.threshold)
	return o, nil
}

// Process runs one block.
func (o *Overdrive) Process() {
	t := o.threshold.Load()
	for i, x := range o.src {
		o.dst[i] = overdriveSample(x, t)
	}
}

func overdriveSample(x, t float64) float64 {
	a := math.Abs(x)
	if a < t {
		return 2 * x
	}
	// Past 2t the knee term saturates at 1.
	u := 2 - core.Clamp(a/t, 1, 2)
	return math.Copysign(2*t+(1-2*t)*(1-u*u), x)
}

// Update sets ParamThreshold.
func (o *Overdrive) Update(p Param, value float64) error {
	if err := CheckParam("overdrive", overdriveParams, p, value); err != nil {
		return err
	}
	o.threshold.Store(value)
	return nil
}

// Value returns the current value of p.
func (o *Overdrive) Value(p Param) (float64, error) {
	if p != ParamThreshold {
		return 0, fmt.Errorf("%w: overdrive has no %s", ErrUnknownParam, p)
	}
	return o.threshold.Load(), nil
}

// Params describes the overdrive's parameters.
func (o *Overdrive) Params() []ParamSpec { return overdriveParams }

// Reset does nothing; the overdrive is memoryless.
func (o *Overdrive) Reset() {}
