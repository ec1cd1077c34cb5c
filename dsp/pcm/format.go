package pcm

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrFormat is returned for an unusable wire format.
	ErrFormat = errors.New("pcm: invalid format")
	// ErrLength is returned when a block or raw slice has the wrong length.
	ErrLength = errors.New("pcm: length mismatch")
)

// Alignment describes where the significant bits sit inside a 32-bit word.
type Alignment int

const (
	// AlignRight stores the value in the low bits, upper bits zero.
	AlignRight Alignment = iota
	// AlignLeft stores the value in the high bits, lower bits zero.
	AlignLeft
)

func (a Alignment) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignLeft:
		return "left"
	default:
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
}

// Format is the wire representation of the transfer buffer: interleaved
// frames of Channels words, each carrying a Bits-wide two's complement value.
type Format struct {
	Bits      int
	Alignment Alignment
	// Channels is the number of interleaved slots per frame.
	Channels int
	// Channel selects the slot that carries the logical mono signal.
	Channel int
	// FullScale is the divisor mapping integers to [-1, 1).
	// Zero selects 2^(Bits-1).
	FullScale float64
}

// DefaultFormat is 24-bit right-aligned stereo, left channel used.
func DefaultFormat() Format {
	return Format{Bits: 24, Alignment: AlignRight, Channels: 2, Channel: 0}
}

// Validate reports whether f describes a usable format.
func (f Format) Validate() error {
	if f.Bits < 2 || f.Bits > 32 {
		return fmt.Errorf("%w: bits must be in [2, 32]: %d", ErrFormat, f.Bits)
	}
	if f.Alignment != AlignRight && f.Alignment != AlignLeft {
		return fmt.Errorf("%w: alignment %v", ErrFormat, f.Alignment)
	}
	if f.Channels < 1 {
		return fmt.Errorf("%w: channels must be >= 1: %d", ErrFormat, f.Channels)
	}
	if f.Channel < 0 || f.Channel >= f.Channels {
		return fmt.Errorf("%w: channel must be in [0, %d): %d", ErrFormat, f.Channels, f.Channel)
	}
	if f.FullScale < 0 || math.IsNaN(f.FullScale) || math.IsInf(f.FullScale, 0) {
		return fmt.Errorf("%w: full scale must be >= 0 and finite: %f", ErrFormat, f.FullScale)
	}
	return nil
}

// Divisor returns the full-scale divisor in effect.
func (f Format) Divisor() float64 {
	if f.FullScale > 0 {
		return f.FullScale
	}
	return float64(uint64(1) << (f.Bits - 1))
}

// Unpack extracts the signed value carried by w.
func (f Format) Unpack(w uint32) int32 {
	shift := 32 - f.Bits
	if f.Alignment == AlignLeft {
		return int32(w) >> shift
	}
	// Move the value's sign bit to bit 31 and shift back to sign-extend.
	return int32(w<<shift) >> shift
}

// Pack stores the low Bits of v into a word. Values outside the Bits range
// wrap; no clipping is applied.
func (f Format) Pack(v int64) uint32 {
	shift := 32 - f.Bits
	if f.Alignment == AlignLeft {
		return uint32(v) << shift
	}
	return uint32(v) << shift >> shift
}
