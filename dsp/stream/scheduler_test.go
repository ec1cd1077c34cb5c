package stream

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// addOne writes rx+1 into tx.
func addOne(rx, tx []uint32) error {
	for i, w := range rx {
		tx[i] = w + 1
	}
	return nil
}

func newTestScheduler(t *testing.T, fn BlockFunc, opts ...Option) *Scheduler {
	t.Helper()
	rx, err := NewTransferBuffer(4)
	require.NoError(t, err)
	tx, err := NewTransferBuffer(4)
	require.NoError(t, err)
	s, err := New(rx, tx, fn, opts...)
	require.NoError(t, err)
	return s
}

func TestSchedulerPollProcessesReadyHalf(t *testing.T) {
	s := newTestScheduler(t, addOne)
	copy(s.Receive().Words(), []uint32{10, 11, 12, 13, 20, 21, 22, 23})

	processed, err := s.Poll()
	require.NoError(t, err)
	assert.False(t, processed, "idle scheduler does nothing")

	require.NoError(t, s.Notify(EventHalfComplete))
	assert.Equal(t, StateHalfReady, s.State())
	processed, err = s.Poll()
	require.NoError(t, err)
	assert.True(t, processed)
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, []uint32{11, 12, 13, 14, 0, 0, 0, 0}, s.Transmit().Words())

	require.NoError(t, s.Notify(EventFullComplete))
	_, err = s.Poll()
	require.NoError(t, err)
	assert.Equal(t, []uint32{11, 12, 13, 14, 21, 22, 23, 24}, s.Transmit().Words())
	assert.Equal(t, uint64(2), s.Stats().Blocks)
	assert.NotEmpty(t, s.ID())
}

func TestSchedulerRejectsOverrun(t *testing.T) {
	s := newTestScheduler(t, addOne)
	require.NoError(t, s.Notify(EventHalfComplete))
	require.ErrorIs(t, s.Notify(EventFullComplete), ErrOverrun)
	assert.Equal(t, uint64(1), s.Stats().Overruns)
	assert.NoError(t, s.Err())

	_, err := s.Poll()
	require.NoError(t, err)
	// The first half was processed; the refused second half was not.
	assert.Equal(t, uint32(1), s.Transmit().Half(HalfFirst)[0])
	assert.Equal(t, uint32(0), s.Transmit().Half(HalfSecond)[0])
}

func TestSchedulerOverwritePolicy(t *testing.T) {
	s := newTestScheduler(t, addOne, WithPolicy(PolicyOverwrite))
	require.NoError(t, s.Notify(EventHalfComplete))
	require.NoError(t, s.Notify(EventFullComplete))
	assert.Equal(t, uint64(1), s.Stats().Overruns)

	_, err := s.Poll()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), s.Transmit().Half(HalfFirst)[0])
	assert.Equal(t, uint32(1), s.Transmit().Half(HalfSecond)[0])
}

func TestSchedulerFatalPolicy(t *testing.T) {
	s := newTestScheduler(t, addOne, WithPolicy(PolicyFatal))
	require.NoError(t, s.Notify(EventHalfComplete))
	require.ErrorIs(t, s.Notify(EventFullComplete), ErrOverrun)
	require.ErrorIs(t, s.Err(), ErrOverrun)
	require.ErrorIs(t, s.Notify(EventHalfComplete), ErrStopped)

	_, err := s.Poll()
	require.ErrorIs(t, err, ErrOverrun)
	require.ErrorIs(t, s.Run(context.Background()), ErrOverrun)
}

func TestSchedulerProcessErrorIsFatal(t *testing.T) {
	boom := errors.New("boom")
	s := newTestScheduler(t, func(_, _ []uint32) error { return boom })
	require.NoError(t, s.Notify(EventHalfComplete))
	processed, err := s.Poll()
	assert.True(t, processed)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, s.Err(), boom)
	assert.Equal(t, StateIdle, s.State())
}

func TestSchedulerDeadlineMisses(t *testing.T) {
	s := newTestScheduler(t, addOne, WithBlockPeriod(time.Millisecond))
	now := time.Unix(0, 0)
	s.clock = func() time.Time {
		now = now.Add(2 * time.Millisecond)
		return now
	}

	require.NoError(t, s.Notify(EventHalfComplete))
	_, err := s.Poll()
	require.NoError(t, err)

	st := s.Stats()
	assert.Equal(t, uint64(1), st.DeadlineMisses)
	assert.Equal(t, 2*time.Millisecond, st.MaxBlockTime)
	assert.NoError(t, s.Err(), "a slow block is counted, not fatal")
}

func TestSchedulerCacheMaintenance(t *testing.T) {
	var calls []string
	cache := CacheFuncs{
		InvalidateFunc: func(w []uint32) { calls = append(calls, "invalidate") },
		CleanFunc:      func(w []uint32) { calls = append(calls, "clean") },
	}
	s := newTestScheduler(t, func(rx, tx []uint32) error {
		calls = append(calls, "process")
		return addOne(rx, tx)
	}, WithCacheMaintainer(cache))

	require.NoError(t, s.Notify(EventHalfComplete))
	_, err := s.Poll()
	require.NoError(t, err)
	assert.Equal(t, []string{"invalidate", "process", "clean"}, calls)
}

func TestSchedulerOptions(t *testing.T) {
	rx, err := NewTransferBuffer(4)
	require.NoError(t, err)
	tx, err := NewTransferBuffer(8)
	require.NoError(t, err)

	_, err = New(rx, tx, addOne)
	require.Error(t, err)
	_, err = New(rx, rx, nil)
	require.Error(t, err)
	_, err = New(nil, rx, addOne)
	require.Error(t, err)
	_, err = New(rx, rx, addOne, WithPolicy(Policy(9)))
	require.Error(t, err)
	_, err = New(rx, rx, addOne, WithBlockPeriod(-1))
	require.Error(t, err)
	_, err = New(rx, rx, addOne, WithCacheMaintainer(nil))
	require.Error(t, err)
	_, err = New(rx, rx, addOne, WithLogger(nil))
	require.Error(t, err)
}

func TestSchedulerRun(t *testing.T) {
	s := newTestScheduler(t, addOne)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	for _, h := range []Half{HalfFirst, HalfSecond, HalfFirst} {
		require.NoError(t, s.Notify(EventFor(h)))
		require.NoError(t, s.WaitIdle(ctx, 0))
	}
	assert.Equal(t, uint64(3), s.Stats().Blocks)

	cancel()
	require.NoError(t, <-done)
}

func TestSchedulerRunStopsOnFault(t *testing.T) {
	s := newTestScheduler(t, addOne)
	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	s.Fault(ErrTransfer)
	s.Fault(errors.New("second fault is ignored"))
	require.ErrorIs(t, <-done, ErrTransfer)
	require.ErrorIs(t, s.WaitIdle(context.Background(), 0), ErrTransfer)
}

func TestSchedulerWaitIdleTimeout(t *testing.T) {
	s := newTestScheduler(t, addOne)
	require.NoError(t, s.WaitIdle(context.Background(), time.Millisecond))

	require.NoError(t, s.Notify(EventHalfComplete))
	err := s.WaitIdle(context.Background(), 5*time.Millisecond)
	require.ErrorIs(t, err, ErrDeadline)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, s.WaitIdle(ctx, 0), context.Canceled)
}
