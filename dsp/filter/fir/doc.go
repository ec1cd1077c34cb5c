// Package fir provides a direct-form FIR filter runtime.
//
// A [Filter] applies a fixed coefficient set to a stream processed in
// blocks. The len(coeffs)-1 most recent inputs are kept between calls, so
// splitting a signal into blocks yields the same output as filtering it in
// one pass.
//
// The pedal's coefficient set is [LowpassTaps37]. [Filter.MagnitudeResponse]
// evaluates any coefficient set on an FFT grid for inspection.
package fir
