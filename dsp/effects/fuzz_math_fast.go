//go:build fastmath

package effects

import approx "github.com/meko-christian/algo-approx"

// fuzzExp uses a fast exponential approximation.
func fuzzExp(x float64) float64 {
	return approx.FastExp(x)
}
