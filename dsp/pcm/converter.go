package pcm

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Converter moves one block between the interleaved fixed-point wire
// representation and a mono block of normalized samples. It owns a scratch
// block so that neither direction allocates.
type Converter struct {
	format    Format
	blockSize int
	divisor   float64
	inv       float64
	scratch   []float64
}

// NewConverter returns a converter for blocks of blockSize mono samples.
func NewConverter(format Format, blockSize int) (*Converter, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: block size must be > 0: %d", ErrLength, blockSize)
	}
	d := format.Divisor()
	return &Converter{
		format:    format,
		blockSize: blockSize,
		divisor:   d,
		inv:       1 / d,
		scratch:   make([]float64, blockSize),
	}, nil
}

// Format returns the wire format.
func (c *Converter) Format() Format { return c.format }

// BlockSize returns the number of mono samples per block.
func (c *Converter) BlockSize() int { return c.blockSize }

// RawLen returns the number of words one block occupies on the wire.
func (c *Converter) RawLen() int { return c.blockSize * c.format.Channels }

// Decode extracts the logical channel of raw into dst and scales it by
// 1/divisor. Unused channels are discarded.
func (c *Converter) Decode(dst []float64, raw []uint32) error {
	if len(dst) != c.blockSize || len(raw) != c.RawLen() {
		return fmt.Errorf("%w: decode dst %d raw %d, want %d and %d",
			ErrLength, len(dst), len(raw), c.blockSize, c.RawLen())
	}
	ch, stride := c.format.Channel, c.format.Channels
	for i := range dst {
		dst[i] = float64(c.format.Unpack(raw[i*stride+ch]))
	}
	vecmath.ScaleBlock(dst, dst, c.inv)
	return nil
}

// Encode scales src by the divisor, truncates toward zero and writes the
// value into every slot of each frame of raw. Out-of-range values wrap.
func (c *Converter) Encode(raw []uint32, src []float64) error {
	if len(src) != c.blockSize || len(raw) != c.RawLen() {
		return fmt.Errorf("%w: encode src %d raw %d, want %d and %d",
			ErrLength, len(src), len(raw), c.blockSize, c.RawLen())
	}
	vecmath.ScaleBlock(c.scratch, src, c.divisor)
	stride := c.format.Channels
	for i, v := range c.scratch {
		w := c.format.Pack(toInt(v))
		frame := raw[i*stride : (i+1)*stride]
		for k := range frame {
			frame[k] = w
		}
	}
	return nil
}

// DecodeSample converts one word to a normalized sample.
func (c *Converter) DecodeSample(w uint32) float64 {
	return float64(c.format.Unpack(w)) * c.inv
}

// EncodeSample converts one normalized sample to a word.
func (c *Converter) EncodeSample(v float64) uint32 {
	return c.format.Pack(toInt(v * c.divisor))
}

func toInt(v float64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	return int64(v)
}
