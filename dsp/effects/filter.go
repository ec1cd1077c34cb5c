package effects

import (
	"fmt"

	"github.com/cwbudde/algo-pedal/dsp/filter/fir"
)

// FilterOption mutates filter construction parameters.
type FilterOption func(*filterConfig) error

type filterConfig struct {
	taps []float64
}

// WithFilterTaps replaces the default coefficient set.
func WithFilterTaps(taps []float64) FilterOption {
	return func(cfg *filterConfig) error {
		if len(taps) == 0 {
			return fmt.Errorf("filter taps must not be empty")
		}
		cfg.taps = taps
		return nil
	}
}

// Filter runs a fixed FIR coefficient set over each block. The tap-delay
// state carries over between blocks. The default set is
// [fir.LowpassTaps37].
type Filter struct {
	src, dst []float64
	fir      *fir.Filter
}

// NewFilter binds a FIR filter effect to src and dst.
func NewFilter(src, dst []float64, opts ...FilterOption) (*Filter, error) {
	if err := CheckBlocks(src, dst); err != nil {
		return nil, err
	}
	cfg := filterConfig{taps: fir.LowpassTaps37[:]}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	f, err := fir.New(cfg.taps)
	if err != nil {
		return nil, err
	}
	return &Filter{src: src, dst: dst, fir: f}, nil
}

// Process filters one block.
func (f *Filter) Process() {
	f.fir.ProcessBlockTo(f.dst[:len(f.src)], f.src)
}

// Update always fails; the coefficient set is fixed.
func (f *Filter) Update(p Param, _ float64) error {
	return fmt.Errorf("%w: filter has no %s", ErrUnknownParam, p)
}

// Value always fails; the coefficient set is fixed.
func (f *Filter) Value(p Param) (float64, error) {
	return 0, fmt.Errorf("%w: filter has no %s", ErrUnknownParam, p)
}

// Params returns nil.
func (f *Filter) Params() []ParamSpec { return nil }

// Reset clears the tap-delay state.
func (f *Filter) Reset() { f.fir.Reset() }

// FIR returns the underlying filter runtime.
func (f *Filter) FIR() *fir.Filter { return f.fir }
