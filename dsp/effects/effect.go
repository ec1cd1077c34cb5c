package effects

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/cwbudde/algo-pedal/dsp/core"
)

var (
	// ErrNilBuffer is returned when an effect is bound to a nil source or
	// destination block.
	ErrNilBuffer = errors.New("effects: nil buffer")
	// ErrBlockSize is returned when the destination block is shorter than
	// the source block, or either is empty.
	ErrBlockSize = errors.New("effects: invalid block size")
	// ErrParamOutOfRange is returned when a value lies outside the declared
	// range of its parameter. The effect keeps its previous value.
	ErrParamOutOfRange = errors.New("effects: parameter out of range")
	// ErrUnknownParam is returned when an effect has no parameter with the
	// given tag.
	ErrUnknownParam = errors.New("effects: unknown parameter")
)

// Effect is a block transform bound to a source and a destination block.
//
// Process consumes the current contents of the source block and writes one
// block into the destination. It does not allocate. Update may be called from
// another goroutine between or during Process calls; a value that is out of
// range is rejected and leaves the effect unchanged.
type Effect interface {
	Process()
	Update(p Param, value float64) error
	Value(p Param) (float64, error)
	Params() []ParamSpec
	Reset()
}

// Param tags a runtime parameter of an effect.
type Param uint8

const (
	ParamNone Param = iota
	ParamDelayTime
	ParamBlend
	ParamFeedback
	ParamThreshold
	ParamGain
	ParamMix
	ParamRate
	ParamDepth
	ParamWaveform
)

var paramNames = [...]string{
	ParamNone:      "none",
	ParamDelayTime: "time",
	ParamBlend:     "blend",
	ParamFeedback:  "feedback",
	ParamThreshold: "threshold",
	ParamGain:      "gain",
	ParamMix:       "mix",
	ParamRate:      "rate",
	ParamDepth:     "depth",
	ParamWaveform:  "waveform",
}

func (p Param) String() string {
	if int(p) < len(paramNames) {
		return paramNames[p]
	}
	return "param(" + strconv.Itoa(int(p)) + ")"
}

// ParseParam maps a parameter name back to its tag.
func ParseParam(name string) (Param, error) {
	for i, n := range paramNames {
		if n == name && Param(i) != ParamNone {
			return Param(i), nil
		}
	}
	return ParamNone, fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

// Range is an interval of valid parameter values. Each bound is either
// inclusive or open.
type Range struct {
	Min, Max         float64
	MinOpen, MaxOpen bool
}

// Contains reports whether v lies in r. NaN is never contained.
func (r Range) Contains(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if v < r.Min || (r.MinOpen && v == r.Min) {
		return false
	}
	if v > r.Max || (r.MaxOpen && v == r.Max) {
		return false
	}
	return true
}

// String formats r in interval notation, e.g. "(0, 500]".
func (r Range) String() string {
	lo, hi := "[", "]"
	if r.MinOpen {
		lo = "("
	}
	if r.MaxOpen {
		hi = ")"
	}
	return lo + strconv.FormatFloat(r.Min, 'g', -1, 64) + ", " +
		strconv.FormatFloat(r.Max, 'g', -1, 64) + hi
}

// Scale maps a menu counter in [0, 100] linearly onto [Min, Max]. The
// counter is clamped first. Open bounds are not avoided, so 0 or 100 may
// produce a value that Contains rejects.
func (r Range) Scale(percent float64) float64 {
	if math.IsNaN(percent) {
		percent = 0
	}
	return r.Min + (r.Max-r.Min)*core.Clamp(percent, 0, 100)/100
}

// ParamSpec describes one parameter for menus and validation.
type ParamSpec struct {
	Param   Param
	Range   Range
	Default float64
}

// Lookup returns the spec for p in specs.
func Lookup(specs []ParamSpec, p Param) (ParamSpec, bool) {
	for _, s := range specs {
		if s.Param == p {
			return s, true
		}
	}
	return ParamSpec{}, false
}

// CheckParam validates value against the spec of p in specs. effect names
// the owner in the error message.
func CheckParam(effect string, specs []ParamSpec, p Param, value float64) error {
	s, ok := Lookup(specs, p)
	if !ok {
		return fmt.Errorf("%w: %s has no %s", ErrUnknownParam, effect, p)
	}
	if !s.Range.Contains(value) {
		return fmt.Errorf("%w: %s %s must be in %s: %f", ErrParamOutOfRange, effect, p, s.Range, value)
	}
	return nil
}

// CheckBlocks validates a source/destination pair for binding. dst may alias
// src.
func CheckBlocks(src, dst []float64) error {
	if src == nil || dst == nil {
		return ErrNilBuffer
	}
	if len(src) == 0 || len(dst) < len(src) {
		return fmt.Errorf("%w: src %d, dst %d", ErrBlockSize, len(src), len(dst))
	}
	return nil
}
