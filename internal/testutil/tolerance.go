package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireNear fails t unless got and want have the same length and every
// pair differs by at most eps.
func RequireNear(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	d, err := MaxAbsDiff(got, want)
	if err != nil {
		t.Fatal(err)
	}
	if d > eps {
		i := argMaxDiff(got, want)
		t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], d, eps)
	}
}

// RequireFinite fails t if any sample is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireBounded fails t if any sample is non-finite or exceeds limit in
// magnitude.
func RequireBounded(t testing.TB, data []float64, limit float64) {
	t.Helper()
	RequireFinite(t, data)
	for i, v := range data {
		if math.Abs(v) > limit {
			t.Fatalf("index %d: |%v| exceeds %v", i, v, limit)
		}
	}
}

// MaxAbsDiff returns the largest absolute difference between a and b.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		maxDiff = math.Max(maxDiff, math.Abs(a[i]-b[i]))
	}
	return maxDiff, nil
}

func argMaxDiff(a, b []float64) int {
	idx, best := 0, -1.0
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > best {
			idx, best = i, d
		}
	}
	return idx
}
