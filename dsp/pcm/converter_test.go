package pcm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnpackPack(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		word   uint32
		value  int32
	}{
		{name: "right positive", format: Format{Bits: 24, Alignment: AlignRight}, word: 0x000064, value: 100},
		{name: "right negative", format: Format{Bits: 24, Alignment: AlignRight}, word: 0xFFFF9C, value: -100},
		{name: "right max", format: Format{Bits: 24, Alignment: AlignRight}, word: 0x7FFFFF, value: 1<<23 - 1},
		{name: "right min", format: Format{Bits: 24, Alignment: AlignRight}, word: 0x800000, value: -(1 << 23)},
		{name: "left positive", format: Format{Bits: 24, Alignment: AlignLeft}, word: 0x00006400, value: 100},
		{name: "left negative", format: Format{Bits: 24, Alignment: AlignLeft}, word: 0xFFFF9C00, value: -100},
		{name: "16 bit right", format: Format{Bits: 16, Alignment: AlignRight}, word: 0x8000, value: -32768},
		{name: "32 bit", format: Format{Bits: 32, Alignment: AlignRight}, word: 0xFFFFFFFF, value: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.value, tt.format.Unpack(tt.word))
			assert.Equal(t, tt.word, tt.format.Pack(int64(tt.value)))
		})
	}
}

func TestPackWraps(t *testing.T) {
	f := Format{Bits: 24, Alignment: AlignRight}
	// One past the positive limit wraps to the most negative value.
	assert.Equal(t, int32(-(1 << 23)), f.Unpack(f.Pack(1<<23)))
}

func TestFormatValidate(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		ok     bool
	}{
		{name: "default", format: DefaultFormat(), ok: true},
		{name: "bits too small", format: Format{Bits: 1, Channels: 2}},
		{name: "bits too large", format: Format{Bits: 33, Channels: 2}},
		{name: "no channels", format: Format{Bits: 24}},
		{name: "channel out of range", format: Format{Bits: 24, Channels: 2, Channel: 2}},
		{name: "bad alignment", format: Format{Bits: 24, Channels: 2, Alignment: Alignment(7)}},
		{name: "negative full scale", format: Format{Bits: 24, Channels: 2, FullScale: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.format.Validate()
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestDivisor(t *testing.T) {
	assert.Equal(t, float64(1<<23), DefaultFormat().Divisor())

	f := DefaultFormat()
	f.FullScale = 1 << 24
	assert.Equal(t, float64(1<<24), f.Divisor())
}

func TestConverterPassThroughScenario(t *testing.T) {
	c, err := NewConverter(DefaultFormat(), 4)
	require.NoError(t, err)

	raw := []uint32{100, 100, 200, 200, 300, 300, 400, 400}
	mono := make([]float64, 4)
	require.NoError(t, c.Decode(mono, raw))

	div := float64(1 << 23)
	assert.Equal(t, []float64{100 / div, 200 / div, 300 / div, 400 / div}, mono)

	out := make([]uint32, 8)
	require.NoError(t, c.Encode(out, mono))
	assert.Equal(t, raw, out)
}

func TestConverterSelectsChannel(t *testing.T) {
	f := DefaultFormat()
	f.Channel = 1
	c, err := NewConverter(f, 2)
	require.NoError(t, err)

	mono := make([]float64, 2)
	require.NoError(t, c.Decode(mono, []uint32{1, 8, 2, 16}))
	div := f.Divisor()
	assert.Equal(t, []float64{8 / div, 16 / div}, mono)
}

func TestConverterNegativeRoundTrip(t *testing.T) {
	c, err := NewConverter(DefaultFormat(), 2)
	require.NoError(t, err)

	in := []float64{-0.5, 0.25}
	raw := make([]uint32, 4)
	require.NoError(t, c.Encode(raw, in))
	assert.Equal(t, uint32(0xC00000), raw[0])
	assert.Equal(t, uint32(0xC00000), raw[1])

	out := make([]float64, 2)
	require.NoError(t, c.Decode(out, raw))
	assert.Equal(t, in, out)
}

func TestConverterTruncates(t *testing.T) {
	c, err := NewConverter(Format{Bits: 8, Channels: 1}, 2)
	require.NoError(t, err)

	// 0.5/128 is half a step; truncation toward zero yields 0 and -0 -> 0.
	raw := make([]uint32, 2)
	require.NoError(t, c.Encode(raw, []float64{0.5 / 128, -1.5 / 128}))
	assert.Equal(t, int32(0), c.Format().Unpack(raw[0]))
	assert.Equal(t, int32(-1), c.Format().Unpack(raw[1]))
}

func TestConverterLengthErrors(t *testing.T) {
	c, err := NewConverter(DefaultFormat(), 4)
	require.NoError(t, err)

	require.ErrorIs(t, c.Decode(make([]float64, 3), make([]uint32, 8)), ErrLength)
	require.ErrorIs(t, c.Decode(make([]float64, 4), make([]uint32, 7)), ErrLength)
	require.ErrorIs(t, c.Encode(make([]uint32, 8), make([]float64, 5)), ErrLength)

	_, err = NewConverter(DefaultFormat(), 0)
	require.ErrorIs(t, err, ErrLength)
	_, err = NewConverter(Format{Bits: 24}, 4)
	require.ErrorIs(t, err, ErrFormat)
}

func TestSampleHelpers(t *testing.T) {
	c, err := NewConverter(DefaultFormat(), 1)
	require.NoError(t, err)

	w := c.EncodeSample(0.25)
	assert.Equal(t, uint32(1<<21), w)
	assert.Equal(t, 0.25, c.DecodeSample(w))
}
