package core

// PeakAbs returns max |x| over buf, or 0 for an empty slice.
func PeakAbs(buf []float64) float64 {
	var peak float64
	for _, x := range buf {
		if x < 0 {
			x = -x
		}
		if x > peak {
			peak = x
		}
	}
	return peak
}
