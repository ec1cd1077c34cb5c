// Package modulation provides the pedal's LFO-driven effects.
//
//   - Tremolo: sine LFO amplitude modulation.
//   - RingModulator: bipolar carrier multiply with a selectable Waveform and
//     dry/wet blend.
//
// Both implement effects.Effect and keep their oscillator phase in [0, 2π)
// across blocks.
package modulation
