package effectchain

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-pedal/dsp/effects"
)

// Params holds initial parameter values for one effect.
type Params map[effects.Param]float64

// Configure validates every value in params against fx and then applies
// them. Nothing is applied if any value is rejected.
func Configure(name string, fx effects.Effect, params Params) error {
	specs := fx.Params()
	keys := make([]effects.Param, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b effects.Param) int { return cmp.Compare(a, b) })

	for _, k := range keys {
		if err := effects.CheckParam(name, specs, k, params[k]); err != nil {
			return err
		}
	}
	for _, k := range keys {
		if err := fx.Update(k, params[k]); err != nil {
			return fmt.Errorf("configure %s: %w", name, err)
		}
	}

	return nil
}
