// Package wavio connects WAV files to the pedal's transfer engine: a Reader
// produces raw interleaved words and a Writer consumes them.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-pedal/dsp/pcm"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	// ErrInvalidFile is returned when a file is not a readable PCM WAV file.
	ErrInvalidFile = errors.New("wavio: invalid wav file")
	// ErrUnsupportedBitDepth is returned for bit depths other than 16, 24
	// and 32.
	ErrUnsupportedBitDepth = errors.New("wavio: only 16, 24 and 32 bit depth is supported")
)

const pcmFormat = 1

func checkBitDepth(bits int) error {
	switch bits {
	case 16, 24, 32:
		return nil
	}
	return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
}

// rescale moves v from a from-bit integer to a to-bit integer.
func rescale(v int64, from, to int) int64 {
	if to >= from {
		return v << (to - from)
	}
	return v >> (from - to)
}

// Reader decodes a WAV file into words of a pcm.Format. File channels are
// mapped onto word slots by index; a file with fewer channels repeats its
// last channel, so mono input feeds every slot.
type Reader struct {
	file    io.Closer
	decoder *wav.Decoder
	format  pcm.Format
	buf     *audio.IntBuffer
	data    []int
	bits    int
}

// Open opens the WAV file at path for reading as words of f.
func Open(path string, f pcm.Format) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(file, f)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	r.file = file
	return r, nil
}

// NewReader decodes from rs. Close does not close rs.
func NewReader(rs io.ReadSeeker, f pcm.Format) (*Reader, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	d := wav.NewDecoder(rs)
	if !d.IsValidFile() {
		return nil, ErrInvalidFile
	}
	if d.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: audio format %d", ErrInvalidFile, d.WavAudioFormat)
	}
	bits := int(d.BitDepth)
	if err := checkBitDepth(bits); err != nil {
		return nil, err
	}

	return &Reader{
		decoder: d,
		format:  f,
		bits:    bits,
		buf: &audio.IntBuffer{
			Format:         d.Format(),
			SourceBitDepth: bits,
		},
	}, nil
}

// SampleRate returns the file's sample rate in Hz.
func (r *Reader) SampleRate() int { return int(r.decoder.SampleRate) }

// Channels returns the file's channel count.
func (r *Reader) Channels() int { return int(r.decoder.NumChans) }

// BitDepth returns the file's bit depth.
func (r *Reader) BitDepth() int { return r.bits }

// ReadWords implements stream.FrameSource. len(dst) must be a multiple of
// the format's channel count.
func (r *Reader) ReadWords(dst []uint32) (int, error) {
	slots := r.format.Channels
	if len(dst)%slots != 0 {
		return 0, fmt.Errorf("read %d words: not a multiple of %d channels", len(dst), slots)
	}
	frames := len(dst) / slots
	chans := r.Channels()

	need := frames * chans
	if cap(r.data) < need {
		r.data = make([]int, need)
	}
	data := r.data[:need]

	// The decoder may return short reads before the end of the data chunk.
	n := 0
	for n < need {
		r.buf.Data = data[n:]
		m, err := r.decoder.PCMBuffer(r.buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, err
		}
		if m == 0 {
			break
		}
		n += m
	}

	got := n / chans
	for i := range got {
		frame := data[i*chans : (i+1)*chans]
		for k := range slots {
			v := frame[min(k, chans-1)]
			dst[i*slots+k] = r.format.Pack(rescale(int64(v), r.bits, r.format.Bits))
		}
	}

	words := got * slots
	switch {
	case got == 0:
		return 0, io.EOF
	case got < frames:
		return words, io.ErrUnexpectedEOF
	}
	return words, nil
}

// Close closes the file opened by Open.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// Writer encodes words of a pcm.Format into a WAV file with one channel per
// word slot.
type Writer struct {
	file    io.Closer
	encoder *wav.Encoder
	format  pcm.Format
	buf     *audio.IntBuffer
	bits    int
}

// Create creates the WAV file at path.
func Create(path string, f pcm.Format, sampleRate, bitDepth int) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(file, f, sampleRate, bitDepth)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	w.file = file
	return w, nil
}

// NewWriter encodes into ws. Close finalizes the header but does not close
// ws.
func NewWriter(ws io.WriteSeeker, f pcm.Format, sampleRate, bitDepth int) (*Writer, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := checkBitDepth(bitDepth); err != nil {
		return nil, err
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0: %d", sampleRate)
	}

	return &Writer{
		encoder: wav.NewEncoder(ws, sampleRate, bitDepth, f.Channels, pcmFormat),
		format:  f,
		bits:    bitDepth,
		buf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: f.Channels,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteWords implements stream.FrameSink.
func (w *Writer) WriteWords(src []uint32) error {
	if len(src)%w.format.Channels != 0 {
		return fmt.Errorf("write %d words: not a multiple of %d channels", len(src), w.format.Channels)
	}
	if cap(w.buf.Data) < len(src) {
		w.buf.Data = make([]int, len(src))
	}
	w.buf.Data = w.buf.Data[:len(src)]
	for i, word := range src {
		w.buf.Data[i] = int(rescale(int64(w.format.Unpack(word)), w.format.Bits, w.bits))
	}
	return w.encoder.Write(w.buf)
}

// Close finalizes the WAV header and closes the file opened by Create.
func (w *Writer) Close() error {
	if err := w.encoder.Close(); err != nil {
		return err
	}
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}
