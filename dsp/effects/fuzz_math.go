//go:build !fastmath

package effects

import "math"

func fuzzExp(x float64) float64 {
	return math.Exp(x)
}
