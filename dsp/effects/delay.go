package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/ringbuf"
)

const (
	defaultDelayTimeMs   = 400.0
	defaultDelayBlend    = 0.4
	defaultDelayFeedback = 0.4

	// MaxDelayTimeMs is the longest configurable delay.
	MaxDelayTimeMs = 500.0
)

var delayParams = []ParamSpec{
	{Param: ParamDelayTime, Range: Range{Min: 0, Max: MaxDelayTimeMs, MinOpen: true}, Default: defaultDelayTimeMs},
	{Param: ParamBlend, Range: Range{Min: 0, Max: 1, MinOpen: true, MaxOpen: true}, Default: defaultDelayBlend},
	{Param: ParamFeedback, Range: Range{Min: 0, Max: 0.99, MinOpen: true, MaxOpen: true}, Default: defaultDelayFeedback},
}

// DelayOption mutates delay construction parameters.
type DelayOption func(*delayConfig) error

type delayConfig struct {
	timeMs   float64
	blend    float64
	feedback float64
	line     *ringbuf.Ring[float64]
}

// WithDelayTime sets the delay time in milliseconds, in (0, 500].
func WithDelayTime(ms float64) DelayOption {
	return func(cfg *delayConfig) error {
		if err := CheckParam("delay", delayParams, ParamDelayTime, ms); err != nil {
			return err
		}
		cfg.timeMs = ms
		return nil
	}
}

// WithDelayBlend sets the wet amount, in (0, 1).
func WithDelayBlend(blend float64) DelayOption {
	return func(cfg *delayConfig) error {
		if err := CheckParam("delay", delayParams, ParamBlend, blend); err != nil {
			return err
		}
		cfg.blend = blend
		return nil
	}
}

// WithDelayFeedback sets the level of the delayed copy, in (0, 0.99).
func WithDelayFeedback(feedback float64) DelayOption {
	return func(cfg *delayConfig) error {
		if err := CheckParam("delay", delayParams, ParamFeedback, feedback); err != nil {
			return err
		}
		cfg.feedback = feedback
		return nil
	}
}

// WithDelayLine makes the delay use line as its delay line instead of
// allocating one. The line is cleared. Its capacity must exceed the sample
// count of the longest delay time.
func WithDelayLine(line *ringbuf.Ring[float64]) DelayOption {
	return func(cfg *delayConfig) error {
		if line == nil {
			return fmt.Errorf("%w: delay line", ErrNilBuffer)
		}
		cfg.line = line
		return nil
	}
}

// Delay is a single-echo delay running on a ring buffer.
//
// Per sample the input scaled by feedback is pushed into the line and the
// oldest sample is popped:
//
//	out = (1-blend)*in + blend*popped
//
// The line is pre-filled with time*sampleRate/1000 zeros (at least one), so
// the first popped sample reflects the configured delay.
type Delay struct {
	src, dst   []float64
	sampleRate float64

	timeMs   core.AtomicFloat
	blend    core.AtomicFloat
	feedback core.AtomicFloat

	line  *ringbuf.Ring[float64]
	depth int
}

// DelayLineCapacity returns the ring capacity needed for the longest delay
// at sampleRate.
func DelayLineCapacity(sampleRate float64) int {
	need := delaySamples(sampleRate, MaxDelayTimeMs) + 1
	c := 1
	for c < need {
		c <<= 1
	}
	return c
}

// NewDelay binds a delay to src and dst.
func NewDelay(sampleRate float64, src, dst []float64, opts ...DelayOption) (*Delay, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("delay sample rate must be > 0 and finite: %f", sampleRate)
	}
	if err := CheckBlocks(src, dst); err != nil {
		return nil, err
	}

	cfg := delayConfig{
		timeMs:   defaultDelayTimeMs,
		blend:    defaultDelayBlend,
		feedback: defaultDelayFeedback,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	need := DelayLineCapacity(sampleRate)
	if cfg.line == nil {
		line, err := ringbuf.Make[float64](need)
		if err != nil {
			return nil, err
		}
		cfg.line = line
	} else if cfg.line.Cap() < need {
		return nil, fmt.Errorf("delay line capacity must be >= %d: %d", need, cfg.line.Cap())
	}

	d := &Delay{
		src:        src,
		dst:        dst,
		sampleRate: sampleRate,
		line:       cfg.line,
	}
	d.timeMs.Store(cfg.timeMs)
	d.blend.Store(cfg.blend)
	d.feedback.Store(cfg.feedback)
	d.Reset()
	return d, nil
}

// Process runs one block.
func (d *Delay) Process() {
	d.retime()

	blend := d.blend.Load()
	feedback := d.feedback.Load()
	for i, x := range d.src {
		// The line holds depth < capacity samples before the put and
		// depth+1 >= 1 before the get, so neither fails.
		_ = d.line.Put(x * feedback)
		delayed, _ := d.line.Get()
		d.dst[i] = (1-blend)*x + blend*delayed
	}
}

// retime adjusts the line depth to a changed delay time: new samples are
// zero, surplus samples are the oldest ones.
func (d *Delay) retime() {
	target := delaySamples(d.sampleRate, d.timeMs.Load())
	for d.depth < target {
		_ = d.line.Put(0)
		d.depth++
	}
	for d.depth > target {
		_, _ = d.line.Get()
		d.depth--
	}
}

// Update sets ParamDelayTime, ParamBlend or ParamFeedback. A new delay time
// takes effect at the start of the next block.
func (d *Delay) Update(p Param, value float64) error {
	if err := CheckParam("delay", delayParams, p, value); err != nil {
		return err
	}
	switch p {
	case ParamDelayTime:
		d.timeMs.Store(value)
	case ParamBlend:
		d.blend.Store(value)
	case ParamFeedback:
		d.feedback.Store(value)
	}
	return nil
}

// Value returns the current value of p.
func (d *Delay) Value(p Param) (float64, error) {
	switch p {
	case ParamDelayTime:
		return d.timeMs.Load(), nil
	case ParamBlend:
		return d.blend.Load(), nil
	case ParamFeedback:
		return d.feedback.Load(), nil
	}
	return 0, fmt.Errorf("%w: delay has no %s", ErrUnknownParam, p)
}

// Params describes the delay's parameters.
func (d *Delay) Params() []ParamSpec { return delayParams }

// Reset empties the line and pre-fills it for the current delay time.
func (d *Delay) Reset() {
	d.line.Clear()
	d.depth = 0
	d.retime()
}

// Depth returns the number of samples currently held in the line.
func (d *Delay) Depth() int { return d.depth }

func delaySamples(sampleRate, ms float64) int {
	n := core.ProcessorConfig{SampleRate: sampleRate}.MsToSamples(ms)
	if n < 1 {
		n = 1
	}
	return n
}
