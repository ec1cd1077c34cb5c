package ringbuf

import (
	"errors"
	"fmt"
)

var (
	// ErrTableFull is returned when every designator of a Table is in use.
	ErrTableFull = errors.New("ringbuf: no free ring buffer")
	// ErrUnknownDesignator is returned for designators never handed out.
	ErrUnknownDesignator = errors.New("ringbuf: unknown designator")
)

// Designator identifies one ring of a Table.
type Designator uint8

// Table is a fixed-size set of rings addressed by designator. The size is
// chosen once at construction; rings are never released.
type Table[T any] struct {
	rings []*Ring[T]
	limit int
}

// NewTable returns a table that can hold up to limit rings.
func NewTable[T any](limit int) (*Table[T], error) {
	if limit <= 0 || limit > 256 {
		return nil, fmt.Errorf("ring buffer table limit must be in [1, 256]: %d", limit)
	}
	return &Table[T]{rings: make([]*Ring[T], 0, limit), limit: limit}, nil
}

// Init creates a ring over storage and returns its designator.
func (t *Table[T]) Init(capacity int, storage []T) (Designator, error) {
	if len(t.rings) >= t.limit {
		return 0, fmt.Errorf("%w: limit %d", ErrTableFull, t.limit)
	}
	r, err := New(capacity, storage)
	if err != nil {
		return 0, err
	}
	t.rings = append(t.rings, r)
	return Designator(len(t.rings) - 1), nil
}

// Ring returns the ring registered under d.
func (t *Table[T]) Ring(d Designator) (*Ring[T], error) {
	if int(d) >= len(t.rings) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDesignator, d)
	}
	return t.rings[d], nil
}

// Len returns the number of rings in use.
func (t *Table[T]) Len() int { return len(t.rings) }

// Limit returns the maximum number of rings.
func (t *Table[T]) Limit() int { return t.limit }
