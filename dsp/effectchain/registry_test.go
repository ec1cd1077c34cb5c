package effectchain

import (
	"testing"

	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bypassFactory(ctx Context) (effects.Effect, error) {
	return bind(effects.NewBypass(ctx.Src, ctx.Dst))
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	t.Run("registers and looks up factory", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		require.NoError(t, r.Register(KindFuzz, bypassFactory))
		assert.NotNil(t, r.Lookup(KindFuzz))
		assert.Nil(t, r.Lookup(KindDelay))
	})

	t.Run("rejects bypass and unknown kinds", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		require.ErrorIs(t, r.Register(KindBypass, bypassFactory), ErrUnknownEffect)
		require.ErrorIs(t, r.Register(Kind(42), bypassFactory), ErrUnknownEffect)
	})

	t.Run("rejects nil factory", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		require.Error(t, r.Register(KindFuzz, nil))
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		require.NoError(t, r.Register(KindFuzz, bypassFactory))
		require.ErrorIs(t, r.Register(KindFuzz, bypassFactory), errDuplicateEffect)
		assert.Panics(t, func() { r.MustRegister(KindFuzz, bypassFactory) })
	})
}

func TestDefaultRegistryCoversEveryKind(t *testing.T) {
	r := DefaultRegistry()
	buf := make([]float64, 16)
	ctx := Context{SampleRate: 48000, Src: buf, Dst: buf}

	for _, k := range Kinds() {
		if k == KindBypass {
			continue
		}
		f := r.Lookup(k)
		require.NotNil(t, f, k.String())
		fx, err := f(ctx)
		require.NoError(t, err, k.String())
		require.NotNil(t, fx)
	}
}

func TestDefaultRegistryPropagatesErrors(t *testing.T) {
	r := DefaultRegistry()
	fx, err := r.Lookup(KindDelay)(Context{SampleRate: 48000})
	require.ErrorIs(t, err, effects.ErrNilBuffer)
	assert.Nil(t, fx)
}
