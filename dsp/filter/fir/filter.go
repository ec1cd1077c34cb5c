package fir

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrNoTaps is returned for an empty coefficient set.
var ErrNoTaps = errors.New("fir: no coefficients")

// Filter implements a direct-form FIR filter whose tap-delay state carries
// over between blocks. The state holds the len(coeffs)-1 most recent inputs.
type Filter struct {
	coeffs []float64
	state  []float64
	pos    int // slot of the most recent input in state
}

// New creates a FIR filter from the given coefficient slice.
// The coefficients are copied. The filter order is len(coeffs)-1.
func New(coeffs []float64) (*Filter, error) {
	if len(coeffs) == 0 {
		return nil, ErrNoTaps
	}
	c := make([]float64, len(coeffs))
	copy(c, coeffs)
	return &Filter{
		coeffs: c,
		state:  make([]float64, len(coeffs)-1),
	}, nil
}

// ProcessSample filters one input sample.
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
func (f *Filter) ProcessSample(x float64) float64 {
	y := f.coeffs[0] * x
	m := len(f.state)
	if m == 0 {
		return y
	}
	p := f.pos
	for k := 1; k <= m; k++ {
		y += f.coeffs[k] * f.state[p]
		p--
		if p < 0 {
			p = m - 1
		}
	}
	// The oldest input is no longer needed; x takes its slot.
	f.pos++
	if f.pos >= m {
		f.pos = 0
	}
	f.state[f.pos] = x
	return y
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// ProcessBlockTo filters src into dst. Both slices must have the same length;
// dst may alias src.
func (f *Filter) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the tap-delay state.
func (f *Filter) Reset() {
	clear(f.state)
	f.pos = 0
}

// Order returns the filter order (len(coeffs) - 1).
func (f *Filter) Order() int {
	return len(f.coeffs) - 1
}

// StateLen returns the number of past inputs carried between blocks.
func (f *Filter) StateLen() int {
	return len(f.state)
}

// Coefficients returns a copy of the filter coefficients.
func (f *Filter) Coefficients() []float64 {
	c := make([]float64, len(f.coeffs))
	copy(c, f.coeffs)
	return c
}

// Response computes the complex frequency response H(e^{-jw}) at the given
// frequency (Hz) and sample rate (Hz).
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	var h complex128
	for k, c := range f.coeffs {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}

// MagnitudeResponse returns |H| on the fftSize/2+1 bins from DC to Nyquist,
// computed with a zero-padded FFT of the coefficients. fftSize must be a
// power of two not smaller than the number of taps.
func (f *Filter) MagnitudeResponse(fftSize int) ([]float64, error) {
	if fftSize < len(f.coeffs) || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("fir: fft size must be a power of two >= %d: %d", len(f.coeffs), fftSize)
	}

	in := make([]complex128, fftSize)
	for i, c := range f.coeffs {
		in[i] = complex(c, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("fir: create fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("fir: forward fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)
	return mag, nil
}
