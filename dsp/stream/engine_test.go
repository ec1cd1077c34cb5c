package stream

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runEngine runs the scheduler and engine to completion and returns the
// engine's error.
func runEngine(t *testing.T, s *Scheduler, e *Engine) error {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	err := e.Run(ctx)
	cancel()
	<-done
	return err
}

func TestEngineStreamsAllWords(t *testing.T) {
	s := newTestScheduler(t, addOne)
	in := []uint32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	sink := &SliceSink{}
	e, err := NewEngine(s, NewSliceSource(in), sink)
	require.NoError(t, err)

	require.NoError(t, runEngine(t, s, e))
	assert.Equal(t, []uint32{2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, sink.Words)
	assert.Equal(t, uint64(3), e.Halves())
	assert.Equal(t, uint64(3), s.Stats().Blocks)
	assert.Zero(t, s.Stats().Overruns)
}

func TestEngineEmptySource(t *testing.T) {
	s := newTestScheduler(t, addOne)
	sink := &SliceSink{}
	e, err := NewEngine(s, NewSliceSource(nil), sink)
	require.NoError(t, err)
	require.NoError(t, runEngine(t, s, e))
	assert.Empty(t, sink.Words)
}

func TestEngineLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	s := newTestScheduler(t, addOne)
	e, err := NewEngine(s, NewSliceSource([]uint32{1, 2}), &SliceSink{}, WithEngineLogger(log), WithEngineLogger(nil))
	require.NoError(t, err)
	require.NoError(t, runEngine(t, s, e))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "source exhausted", entry.Message)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
}

type failingSource struct{}

func (failingSource) ReadWords([]uint32) (int, error) { return 0, errors.New("bus error") }

type failingSink struct{}

func (failingSink) WriteWords([]uint32) error { return errors.New("bus error") }

func TestEngineTransferErrorsAreFatal(t *testing.T) {
	s := newTestScheduler(t, addOne)
	e, err := NewEngine(s, failingSource{}, &SliceSink{})
	require.NoError(t, err)
	require.ErrorIs(t, runEngine(t, s, e), ErrTransfer)
	require.ErrorIs(t, s.Err(), ErrTransfer)

	s = newTestScheduler(t, addOne)
	e, err = NewEngine(s, NewSliceSource([]uint32{1, 2, 3, 4}), failingSink{})
	require.NoError(t, err)
	require.ErrorIs(t, runEngine(t, s, e), ErrTransfer)
}

func TestEngineRealtimeDeadline(t *testing.T) {
	s := newTestScheduler(t, func(rx, tx []uint32) error {
		time.Sleep(50 * time.Millisecond)
		return addOne(rx, tx)
	})
	e, err := NewEngine(s, NewSliceSource(make([]uint32, 16)), &SliceSink{},
		WithRealtime(time.Millisecond))
	require.NoError(t, err)

	require.ErrorIs(t, runEngine(t, s, e), ErrDeadline)
	require.ErrorIs(t, s.Err(), ErrDeadline)
}

func TestNewEngineValidation(t *testing.T) {
	s := newTestScheduler(t, addOne)
	_, err := NewEngine(nil, NewSliceSource(nil), &SliceSink{})
	require.Error(t, err)
	_, err = NewEngine(s, nil, &SliceSink{})
	require.Error(t, err)
	_, err = NewEngine(s, NewSliceSource(nil), nil)
	require.Error(t, err)
}
