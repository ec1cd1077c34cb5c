package effectchain

import (
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/effects/modulation"
)

// DefaultRegistry returns a Registry with every built-in effect.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(KindDelay, func(ctx Context) (effects.Effect, error) {
		var opts []effects.DelayOption
		if ctx.DelayLine != nil {
			opts = append(opts, effects.WithDelayLine(ctx.DelayLine))
		}

		return bind(effects.NewDelay(ctx.SampleRate, ctx.Src, ctx.Dst, opts...))
	})
	r.MustRegister(KindOverdrive, func(ctx Context) (effects.Effect, error) {
		return bind(effects.NewOverdrive(ctx.Src, ctx.Dst))
	})
	r.MustRegister(KindFuzz, func(ctx Context) (effects.Effect, error) {
		return bind(effects.NewFuzz(ctx.Src, ctx.Dst))
	})
	r.MustRegister(KindTremolo, func(ctx Context) (effects.Effect, error) {
		return bind(modulation.NewTremolo(ctx.Src, ctx.Dst))
	})
	r.MustRegister(KindRingMod, func(ctx Context) (effects.Effect, error) {
		return bind(modulation.NewRingModulator(ctx.Src, ctx.Dst))
	})
	r.MustRegister(KindFilter, func(ctx Context) (effects.Effect, error) {
		return bind(effects.NewFilter(ctx.Src, ctx.Dst))
	})

	return r
}

// bind converts a constructor result without producing a typed nil.
func bind[T effects.Effect](fx T, err error) (effects.Effect, error) {
	if err != nil {
		return nil, err
	}

	return fx, nil
}
