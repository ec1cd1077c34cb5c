// Package pcm converts between the transfer engine's wire representation and
// normalized floating-point sample blocks.
//
// On the wire every frame holds [Format.Channels] 32-bit words with a
// [Format.Bits]-wide two's complement value, right- or left-aligned. The
// processing side sees a single logical channel scaled into [-1, 1) by the
// full-scale divisor (2^(Bits-1) unless configured).
//
// Decoding keeps only the configured channel; encoding duplicates the mono
// result into every slot of the frame. No clipping is performed before
// emission: values beyond full scale wrap under the integer conversion.
package pcm
