// Package effects provides the pedal's block effects and their common
// parameter contract.
//
// Every effect is bound to a source and a destination block when it is
// created and implements [Effect]. Process reads the whole source block and
// writes the destination block in strict index order, so the two may be the
// same slice. Process never allocates.
//
// Parameters are declared with a [ParamSpec] whose [Range] may have open or
// closed bounds. Update validates against that range and leaves the effect
// unchanged on failure. Parameter values are stored atomically, so a control
// goroutine may update them while the audio goroutine processes a block.
//
// Effects in this package:
//   - Bypass: pass-through.
//   - Delay: single-echo delay on a ring buffer.
//   - Filter: fixed-coefficient FIR low-pass.
//   - Overdrive: piecewise soft clipper.
//   - Fuzz: exponential waveshaper with per-block peak normalization.
//
// Tremolo and the ring modulator live in the modulation subpackage.
package effects
