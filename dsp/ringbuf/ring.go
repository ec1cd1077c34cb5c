package ringbuf

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	// ErrNotPowerOfTwo is returned when a ring capacity is not a power of two.
	ErrNotPowerOfTwo = errors.New("ringbuf: capacity is not a power of two")
	// ErrInvalidStorage is returned for nil storage or a storage length that
	// does not match the requested capacity.
	ErrInvalidStorage = errors.New("ringbuf: invalid storage")
	// ErrFull is returned by Put when head - tail == capacity.
	ErrFull = errors.New("ringbuf: buffer full")
	// ErrEmpty is returned by Get when head == tail.
	ErrEmpty = errors.New("ringbuf: buffer empty")
)

// Ring is a fixed-capacity FIFO over caller-provided storage.
//
// Head and tail are free-running 64-bit counters; the slot of a counter is
// counter & (capacity-1). head is written only by the producer and tail only
// by the consumer, so one producer and one consumer may run in different
// goroutines without a lock.
type Ring[T any] struct {
	buf  []T
	mask uint64

	head atomic.Uint64
	tail atomic.Uint64
}

// New returns an empty ring backed by storage. capacity must be a power of
// two and len(storage) must equal capacity. storage is used in place and must
// not be touched by the caller afterwards.
func New[T any](capacity int, storage []T) (*Ring[T], error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrNotPowerOfTwo, capacity)
	}
	if storage == nil || len(storage) != capacity {
		return nil, fmt.Errorf("%w: storage length %d, capacity %d", ErrInvalidStorage, len(storage), capacity)
	}
	return &Ring[T]{buf: storage, mask: uint64(capacity - 1)}, nil
}

// Make allocates storage for a ring of the given capacity.
func Make[T any](capacity int) (*Ring[T], error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrNotPowerOfTwo, capacity)
	}
	return New(capacity, make([]T, capacity))
}

// Put appends v at the head. It never blocks; a full ring returns ErrFull
// and is left unchanged.
func (r *Ring[T]) Put(v T) error {
	head := r.head.Load()
	if head-r.tail.Load() == uint64(len(r.buf)) {
		return ErrFull
	}
	r.buf[head&r.mask] = v
	r.head.Store(head + 1)
	return nil
}

// Get removes and returns the element at the tail. An empty ring returns
// ErrEmpty and is left unchanged.
func (r *Ring[T]) Get() (T, error) {
	var zero T
	tail := r.tail.Load()
	if r.head.Load()-tail == 0 {
		return zero, ErrEmpty
	}
	v := r.buf[tail&r.mask]
	r.tail.Store(tail + 1)
	return v, nil
}

// Count returns head - tail.
func (r *Ring[T]) Count() int {
	return int(r.head.Load() - r.tail.Load())
}

// Cap returns the ring capacity.
func (r *Ring[T]) Cap() int { return len(r.buf) }

// Full reports whether Put would fail.
func (r *Ring[T]) Full() bool { return r.Count() == len(r.buf) }

// Empty reports whether Get would fail.
func (r *Ring[T]) Empty() bool { return r.Count() == 0 }

// Clear zeroes the storage and resets both counters.
// It must not run concurrently with Put or Get.
func (r *Ring[T]) Clear() {
	clear(r.buf)
	r.head.Store(0)
	r.tail.Store(0)
}
