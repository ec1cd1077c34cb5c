package core

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 that can be stored by one goroutine while another
// loads it. The zero value holds 0.
type AtomicFloat struct {
	bits atomic.Uint64
}

// Load returns the current value.
func (a *AtomicFloat) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}

// Store sets the value.
func (a *AtomicFloat) Store(v float64) {
	a.bits.Store(math.Float64bits(v))
}
