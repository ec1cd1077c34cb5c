package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

// BlockFunc processes one half: it reads the raw input words rx and writes
// the raw output words tx. Both have the half length of their buffers.
type BlockFunc func(rx, tx []uint32) error

// Option configures a Scheduler.
type Option func(*config) error

type config struct {
	policy Policy
	cache  CacheMaintainer
	period time.Duration
	logger logrus.FieldLogger
	clock  func() time.Time
}

// WithPolicy sets the overrun policy. The default is PolicyReject.
func WithPolicy(p Policy) Option {
	return func(c *config) error {
		if p > PolicyFatal {
			return fmt.Errorf("unknown overrun policy: %d", p)
		}
		c.policy = p
		return nil
	}
}

// WithCacheMaintainer sets the cache strategy. The default is NonCacheable.
func WithCacheMaintainer(m CacheMaintainer) Option {
	return func(c *config) error {
		if m == nil {
			return errors.New("nil cache maintainer")
		}
		c.cache = m
		return nil
	}
}

// WithBlockPeriod sets the time budget of one block. Blocks that take longer
// are counted as deadline misses. Zero disables the check.
func WithBlockPeriod(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return fmt.Errorf("block period must be >= 0: %s", d)
		}
		c.period = d
		return nil
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) error {
		if l == nil {
			return errors.New("nil logger")
		}
		c.logger = l
		return nil
	}
}

// Stats is a snapshot of scheduler counters.
type Stats struct {
	Blocks         uint64
	Overruns       uint64
	DeadlineMisses uint64
	MaxBlockTime   time.Duration
}

// Scheduler hands ready halves of the receive buffer to a BlockFunc and
// places the result in the same half of the transmit buffer.
type Scheduler struct {
	id      xid.ID
	log     logrus.FieldLogger
	mailbox *Mailbox
	rx, tx  *TransferBuffer
	process BlockFunc
	cache   CacheMaintainer
	period  time.Duration
	clock   func() time.Time

	wake chan struct{}
	idle chan struct{}

	faultOnce sync.Once
	faulted   chan struct{}
	fault     error

	blocks   atomic.Uint64
	misses   atomic.Uint64
	maxBlock atomic.Int64
}

// New creates a scheduler over the receive buffer rx and transmit buffer
// tx, which must have equal half lengths.
func New(rx, tx *TransferBuffer, process BlockFunc, opts ...Option) (*Scheduler, error) {
	if rx == nil || tx == nil {
		return nil, errors.New("nil transfer buffer")
	}
	if rx.HalfLen() != tx.HalfLen() {
		return nil, fmt.Errorf("transfer buffer halves differ: rx %d, tx %d", rx.HalfLen(), tx.HalfLen())
	}
	if process == nil {
		return nil, errors.New("nil block func")
	}

	cfg := config{
		policy: PolicyReject,
		cache:  NonCacheable{},
		clock:  time.Now,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.logger = l
	}

	id := xid.New()
	return &Scheduler{
		id:      id,
		log:     cfg.logger.WithField("scheduler", id.String()),
		mailbox: NewMailbox(cfg.policy),
		rx:      rx,
		tx:      tx,
		process: process,
		cache:   cfg.cache,
		period:  cfg.period,
		clock:   cfg.clock,
		wake:    make(chan struct{}, 1),
		idle:    make(chan struct{}, 1),
		faulted: make(chan struct{}),
	}, nil
}

// ID returns the scheduler's unique id.
func (s *Scheduler) ID() string { return s.id.String() }

// Notify records a transfer engine event. It never blocks. On an overrun
// the mailbox policy decides the outcome; under PolicyFatal the scheduler
// is stopped.
func (s *Scheduler) Notify(e Event) error {
	if s.Err() != nil {
		return ErrStopped
	}

	err := s.mailbox.Post(e.State())
	if err != nil {
		s.log.WithField("event", e.String()).Warn("notification overrun")
		if s.mailbox.Policy() == PolicyFatal {
			s.Fault(err)
		}
		return err
	}

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return nil
}

// Fault stops the scheduler with a fatal error. Only the first fault is
// kept.
func (s *Scheduler) Fault(err error) {
	if err == nil {
		return
	}
	s.faultOnce.Do(func() {
		s.fault = err
		s.log.WithError(err).Error("scheduler stopped")
		close(s.faulted)
	})
}

// Err returns the fatal error, if any.
func (s *Scheduler) Err() error {
	select {
	case <-s.faulted:
		return s.fault
	default:
		return nil
	}
}

// Poll performs one pass of the processing loop: if a half is ready it is
// processed and the mailbox released. It reports whether a block was
// processed. A BlockFunc error is fatal.
func (s *Scheduler) Poll() (bool, error) {
	if err := s.Err(); err != nil {
		return false, err
	}

	st := s.mailbox.Peek()
	h, ok := st.Half()
	if !ok {
		return false, nil
	}

	rx, tx := s.rx.Half(h), s.tx.Half(h)
	s.cache.Invalidate(rx)
	start := s.clock()
	err := s.process(rx, tx)
	elapsed := s.clock().Sub(start)
	s.cache.Clean(tx)

	if !s.mailbox.Release(st) {
		s.log.WithField("half", h.String()).Debug("state replaced while processing")
	}
	s.record(h, elapsed)

	select {
	case s.idle <- struct{}{}:
	default:
	}

	if err != nil {
		err = fmt.Errorf("process %s half: %w", h, err)
		s.Fault(err)
		return true, err
	}
	return true, nil
}

func (s *Scheduler) record(h Half, elapsed time.Duration) {
	s.blocks.Add(1)
	for {
		cur := s.maxBlock.Load()
		if int64(elapsed) <= cur || s.maxBlock.CompareAndSwap(cur, int64(elapsed)) {
			break
		}
	}
	if s.period > 0 && elapsed > s.period {
		s.misses.Add(1)
		s.log.WithFields(logrus.Fields{
			"half":    h.String(),
			"elapsed": elapsed,
			"period":  s.period,
		}).Warn("block missed its deadline")
	}
}

// Run processes blocks as they become ready until ctx is done or the
// scheduler faults. It returns nil on cancellation and the fatal error
// otherwise.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Debug("scheduler started")
	defer s.log.Debug("scheduler finished")

	for {
		for {
			processed, err := s.Poll()
			if err != nil {
				return err
			}
			if !processed {
				break
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-s.faulted:
			return s.fault
		case <-s.wake:
		}
	}
}

// WaitIdle blocks until the mailbox is idle. A positive timeout bounds the
// wait; exceeding it returns ErrDeadline. It also returns when ctx is done
// or the scheduler faults.
func (s *Scheduler) WaitIdle(ctx context.Context, timeout time.Duration) error {
	var expired <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		expired = t.C
	}

	for {
		if err := s.Err(); err != nil {
			return err
		}
		if s.mailbox.Peek() == StateIdle {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.faulted:
			return s.fault
		case <-expired:
			return fmt.Errorf("%w: %s pending after %s", ErrDeadline, s.mailbox.Peek(), timeout)
		case <-s.idle:
		}
	}
}

// State returns the mailbox state.
func (s *Scheduler) State() State { return s.mailbox.Peek() }

// Stats returns a snapshot of the counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		Blocks:         s.blocks.Load(),
		Overruns:       s.mailbox.Overruns(),
		DeadlineMisses: s.misses.Load(),
		MaxBlockTime:   time.Duration(s.maxBlock.Load()),
	}
}

// Receive returns the receive buffer.
func (s *Scheduler) Receive() *TransferBuffer { return s.rx }

// Transmit returns the transmit buffer.
func (s *Scheduler) Transmit() *TransferBuffer { return s.tx }
