package effectchain

import (
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-pedal/dsp/effects"
)

// Rack owns one instance of every effect, all bound to the same source and
// destination blocks, and dispatches each block to the active one.
//
// The active kind may be changed from another goroutine; the change applies
// from the next Process call. A kind that names no effect, including values
// outside the known range, processes as bypass.
type Rack struct {
	slots  [kindCount]effects.Effect
	active atomic.Uint32
}

// NewRack builds every effect in registry against ctx. params supplies
// initial parameter values per kind and may be nil. Kinds without a
// factory fall back to bypass; params naming such a kind, or naming any
// parameter of bypass, are rejected.
func NewRack(ctx Context, registry *Registry, params map[Kind]Params) (*Rack, error) {
	bypass, err := effects.NewBypass(ctx.Src, ctx.Dst)
	if err != nil {
		return nil, err
	}

	if err := Configure(KindBypass.String(), bypass, params[KindBypass]); err != nil {
		return nil, err
	}

	r := &Rack{}
	r.slots[KindBypass] = bypass

	for _, k := range Kinds() {
		if k == KindBypass || registry == nil {
			continue
		}

		factory := registry.Lookup(k)
		if factory == nil {
			continue
		}

		fx, err := factory(ctx)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", k, err)
		}

		if err := Configure(k.String(), fx, params[k]); err != nil {
			return nil, err
		}

		r.slots[k] = fx
	}

	for k, p := range params {
		if len(p) > 0 && (!k.Valid() || r.slots[k] == nil) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, k)
		}
	}

	return r, nil
}

// SetActive selects the effect for subsequent blocks.
func (r *Rack) SetActive(k Kind) { r.active.Store(uint32(k)) }

// Active returns the selected kind as stored, which may be unknown.
func (r *Rack) Active() Kind { return Kind(r.active.Load()) }

// Process runs one block through the active effect.
func (r *Rack) Process() {
	r.dispatch(r.Active()).Process()
}

func (r *Rack) dispatch(k Kind) effects.Effect {
	switch k {
	case KindDelay, KindOverdrive, KindFuzz, KindTremolo, KindRingMod, KindFilter:
		if fx := r.slots[k]; fx != nil {
			return fx
		}
	case KindBypass:
	}

	return r.slots[KindBypass]
}

// Effect returns the instance for k.
func (r *Rack) Effect(k Kind) (effects.Effect, error) {
	if !k.Valid() || r.slots[k] == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, k)
	}

	return r.slots[k], nil
}

// Update forwards a parameter update to the effect of kind k.
func (r *Rack) Update(k Kind, p effects.Param, value float64) error {
	fx, err := r.Effect(k)
	if err != nil {
		return err
	}

	return fx.Update(p, value)
}

// Reset clears the running state of every effect.
func (r *Rack) Reset() {
	for _, fx := range r.slots {
		if fx != nil {
			fx.Reset()
		}
	}
}
