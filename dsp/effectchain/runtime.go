package effectchain

import "github.com/cwbudde/algo-pedal/dsp/effects"

// Factory builds one effect bound to the context's blocks.
type Factory func(ctx Context) (effects.Effect, error)
