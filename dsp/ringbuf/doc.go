// Package ringbuf provides a generic fixed-capacity circular FIFO.
//
// A [Ring] stores elements in a power-of-two sized slice and tracks them with
// free-running head and tail counters:
//
//	slot  = counter & (capacity-1)
//	count = head - tail          (0 <= count <= capacity)
//
// Put and Get never block; a full or empty ring is reported as [ErrFull] or
// [ErrEmpty] and leaves the ring untouched, so the caller decides whether to
// drop the sample or treat the condition as fatal.
//
// A [Table] hands out a bounded number of rings addressed by [Designator],
// one per named purpose (for example the delay line of the delay effect).
package ringbuf
