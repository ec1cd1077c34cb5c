// Package pedal assembles the effect pedal's processing core: the transfer
// buffers and their scheduler, the format converter, the delay line, and the
// rack of effects with its dispatch.
//
// A Pedal is built once at startup. The transfer engine calls Notify; the
// processing goroutine calls Run. Control code may call SelectEffect,
// Update, UpdatePercent and Reset at any time.
package pedal

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-pedal/dsp/effectchain"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/effects/modulation"
	"github.com/cwbudde/algo-pedal/dsp/pcm"
	"github.com/cwbudde/algo-pedal/dsp/ringbuf"
	"github.com/cwbudde/algo-pedal/dsp/stream"
	"github.com/cwbudde/algo-pedal/internal/cpu"
	"github.com/cwbudde/algo-pedal/internal/logging"
	"github.com/cwbudde/algo-pedal/stats/level"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Pedal is the processing core of the effect pedal.
type Pedal struct {
	cfg Config
	log logrus.FieldLogger

	in, out []float64
	conv    *pcm.Converter
	rings   *ringbuf.Table[float64]
	rack    *effectchain.Rack
	sched   *stream.Scheduler
	meter   *level.Meter

	resetPending atomic.Bool
}

// New builds a pedal.
func New(opts ...Option) (*Pedal, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Processor.Validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}

	p := &Pedal{
		cfg:   cfg,
		log:   cfg.Logger,
		in:    make([]float64, cfg.Processor.BlockSize),
		out:   make([]float64, cfg.Processor.BlockSize),
		meter: level.NewMeter(),
	}

	conv, err := pcm.NewConverter(cfg.Format, cfg.Processor.BlockSize)
	if err != nil {
		return nil, err
	}
	p.conv = conv

	rings, err := ringbuf.NewTable[float64](ringTableLimit)
	if err != nil {
		return nil, err
	}
	capacity := effects.DelayLineCapacity(cfg.Processor.SampleRate)
	id, err := rings.Init(capacity, make([]float64, capacity))
	if err != nil {
		return nil, fmt.Errorf("delay line: %w", err)
	}
	line, err := rings.Ring(id)
	if err != nil {
		return nil, err
	}
	p.rings = rings

	rack, err := effectchain.NewRack(effectchain.Context{
		SampleRate: cfg.Processor.SampleRate,
		Src:        p.in,
		Dst:        p.out,
		DelayLine:  line,
	}, effectchain.DefaultRegistry(), cfg.Params)
	if err != nil {
		return nil, err
	}
	rack.SetActive(cfg.Effect)
	p.rack = rack

	rx, err := stream.NewTransferBuffer(conv.RawLen())
	if err != nil {
		return nil, err
	}
	tx, err := stream.NewTransferBuffer(conv.RawLen())
	if err != nil {
		return nil, err
	}
	sched, err := stream.New(rx, tx, p.processBlock,
		stream.WithPolicy(cfg.Policy),
		stream.WithCacheMaintainer(cfg.Cache),
		stream.WithBlockPeriod(cfg.Processor.BlockPeriod()),
		stream.WithLogger(cfg.Logger),
	)
	if err != nil {
		return nil, err
	}
	p.sched = sched

	p.log.WithFields(logrus.Fields{
		"sample_rate": cfg.Processor.SampleRate,
		"block_size":  cfg.Processor.BlockSize,
		"effect":      cfg.Effect.String(),
		"policy":      cfg.Policy.String(),
		"host":        cpu.Detect().String(),
	}).Debug("pedal ready")

	return p, nil
}

// processBlock converts one raw half, runs the active effect and converts
// the result back.
func (p *Pedal) processBlock(rx, tx []uint32) error {
	if err := p.conv.Decode(p.in, rx); err != nil {
		return err
	}
	if p.resetPending.Swap(false) {
		p.rack.Reset()
	}
	p.rack.Process()
	p.meter.Update(p.out)
	return p.conv.Encode(tx, p.out)
}

// Notify forwards a transfer engine event to the scheduler.
func (p *Pedal) Notify(e stream.Event) error { return p.sched.Notify(e) }

// Run processes blocks until ctx is done or a fatal error occurs.
func (p *Pedal) Run(ctx context.Context) error { return p.sched.Run(ctx) }

// Render streams src through the pedal into sink with the software
// transfer engine and returns the scheduler counters.
func (p *Pedal) Render(ctx context.Context, src stream.FrameSource, sink stream.FrameSink) (stream.Stats, error) {
	opts := []stream.EngineOption{stream.WithEngineLogger(p.log.WithField("engine", "render"))}
	if p.cfg.Realtime {
		opts = append(opts, stream.WithRealtime(p.cfg.Processor.BlockPeriod()))
	}
	engine, err := stream.NewEngine(p.sched, src, sink, opts...)
	if err != nil {
		return stream.Stats{}, err
	}

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error { return p.sched.Run(gctx) })
	g.Go(func() error {
		defer stop()
		return engine.Run(gctx)
	})
	err = g.Wait()

	stats := p.sched.Stats()
	p.log.WithFields(logrus.Fields{
		"blocks":          stats.Blocks,
		"overruns":        stats.Overruns,
		"deadline_misses": stats.DeadlineMisses,
		"max_block_time":  stats.MaxBlockTime,
	}).Info("render finished")

	return stats, err
}

// SelectEffect makes k the active effect from the next block on. Kinds
// that name no effect process as pass-through.
func (p *Pedal) SelectEffect(k effectchain.Kind) {
	p.rack.SetActive(k)
	p.log.WithField("effect", k.String()).Debug("effect selected")
}

// Effect returns the selected kind.
func (p *Pedal) Effect() effectchain.Kind { return p.rack.Active() }

// Update sets a parameter of effect k to a value in its own units.
func (p *Pedal) Update(k effectchain.Kind, param effects.Param, value float64) error {
	if err := p.rack.Update(k, param, value); err != nil {
		p.log.WithError(err).Debug("parameter update rejected")
		return err
	}
	return nil
}

// UpdatePercent sets a parameter from a 0-100 menu counter, scaled onto
// the parameter's range. The ring modulator waveform is chosen by window:
// below 33 sine, below 66 triangle, otherwise square.
func (p *Pedal) UpdatePercent(k effectchain.Kind, param effects.Param, percent float64) error {
	if param == effects.ParamWaveform {
		return p.Update(k, param, float64(modulation.WaveformFromPercent(percent)))
	}
	fx, err := p.rack.Effect(k)
	if err != nil {
		return err
	}
	spec, ok := effects.Lookup(fx.Params(), param)
	if !ok {
		return fmt.Errorf("%w: %s has no %s", effects.ErrUnknownParam, k, param)
	}
	return p.Update(k, param, spec.Range.Scale(percent))
}

// Value returns the current value of a parameter of effect k.
func (p *Pedal) Value(k effectchain.Kind, param effects.Param) (float64, error) {
	fx, err := p.rack.Effect(k)
	if err != nil {
		return 0, err
	}
	return fx.Value(param)
}

// Params describes the parameters of effect k.
func (p *Pedal) Params(k effectchain.Kind) ([]effects.ParamSpec, error) {
	fx, err := p.rack.Effect(k)
	if err != nil {
		return nil, err
	}
	return fx.Params(), nil
}

// Reset clears the running state of every effect. The effects are cleared
// by the processing goroutine before the next block, so Reset may be called
// while the pedal runs.
func (p *Pedal) Reset() { p.resetPending.Store(true) }

// Scheduler returns the block scheduler.
func (p *Pedal) Scheduler() *stream.Scheduler { return p.sched }

// Config returns the configuration the pedal was built with.
func (p *Pedal) Config() Config { return p.cfg }

// RingBuffers returns the number of ring buffers in use and the limit.
func (p *Pedal) RingBuffers() (used, limit int) { return p.rings.Len(), p.rings.Limit() }

// OutputLevel returns the level statistics of all processed output. It must
// not be called while blocks are being processed.
func (p *Pedal) OutputLevel() level.Stats { return p.meter.Result() }
