package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// FrameSource supplies raw interleaved words to the transfer engine.
//
// ReadWords fills dst and returns the number of words written, following
// the usual convention:
//   - nil if dst was filled;
//   - io.ErrUnexpectedEOF if only part of dst was filled and the source is
//     exhausted;
//   - io.EOF if nothing was read.
type FrameSource interface {
	ReadWords(dst []uint32) (int, error)
}

// FrameSink receives raw interleaved words from the transfer engine.
type FrameSink interface {
	WriteWords(src []uint32) error
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRealtime bounds the wait for each block by the block period; a block
// that is not ready in time stops the run with ErrDeadline. Without it the
// engine waits as long as processing takes.
func WithRealtime(period time.Duration) EngineOption {
	return func(e *Engine) { e.timeout = period }
}

// WithEngineLogger sets the engine's logger.
func WithEngineLogger(l logrus.FieldLogger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine is a software transfer engine. For each half in turn it fills the
// receive half from a source, notifies the scheduler, waits until the half
// was processed and moves the transmit half to a sink.
type Engine struct {
	sched   *Scheduler
	src     FrameSource
	sink    FrameSink
	timeout time.Duration
	log     logrus.FieldLogger

	halves uint64
}

// NewEngine connects src and sink to the scheduler's buffers.
func NewEngine(s *Scheduler, src FrameSource, sink FrameSink, opts ...EngineOption) (*Engine, error) {
	if s == nil {
		return nil, errors.New("nil scheduler")
	}
	if src == nil || sink == nil {
		return nil, errors.New("nil frame source or sink")
	}

	e := &Engine{sched: s, src: src, sink: sink, log: s.log}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// Run transfers halves until the source is exhausted, ctx is done or the
// scheduler faults. Source and sink errors are reported to the scheduler as
// transfer faults. The final partial half is zero padded for processing and
// only its valid words are written to the sink.
func (e *Engine) Run(ctx context.Context) error {
	rx, tx := e.sched.Receive(), e.sched.Transmit()

	for h := HalfFirst; ; h = h.Other() {
		if err := ctx.Err(); err != nil {
			return err
		}

		in := rx.Half(h)
		n, err := e.src.ReadWords(in)
		last := false
		switch {
		case errors.Is(err, io.EOF):
			e.log.WithField("halves", e.halves).Debug("source exhausted")
			return nil
		case errors.Is(err, io.ErrUnexpectedEOF):
			last = true
			clear(in[n:])
		case err != nil:
			return e.fail(fmt.Errorf("%w: read: %w", ErrTransfer, err))
		}

		if err := e.sched.Notify(EventFor(h)); err != nil {
			return err
		}
		if err := e.sched.WaitIdle(ctx, e.timeout); err != nil {
			if errors.Is(err, ErrDeadline) {
				e.sched.Fault(err)
			}
			return err
		}

		if err := e.sink.WriteWords(tx.Half(h)[:n]); err != nil {
			return e.fail(fmt.Errorf("%w: write: %w", ErrTransfer, err))
		}
		e.halves++

		if last {
			e.log.WithField("halves", e.halves).Debug("source exhausted")
			return nil
		}
	}
}

func (e *Engine) fail(err error) error {
	e.sched.Fault(err)
	return err
}

// Halves returns the number of halves moved to the sink.
func (e *Engine) Halves() uint64 { return e.halves }

// SliceSource reads words from a slice.
type SliceSource struct {
	words []uint32
	pos   int
}

// NewSliceSource returns a source over words.
func NewSliceSource(words []uint32) *SliceSource {
	return &SliceSource{words: words}
}

// ReadWords implements FrameSource.
func (s *SliceSource) ReadWords(dst []uint32) (int, error) {
	if s.pos >= len(s.words) {
		return 0, io.EOF
	}
	n := copy(dst, s.words[s.pos:])
	s.pos += n
	if n < len(dst) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}

// SliceSink collects written words.
type SliceSink struct {
	Words []uint32
}

// WriteWords implements FrameSink.
func (s *SliceSink) WriteWords(src []uint32) error {
	s.Words = append(s.Words, src...)
	return nil
}
