// Package level measures signal levels of processed blocks.
package level

import (
	"math"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"gonum.org/v1/gonum/floats"
)

// ClipLevel is the magnitude at or above which a normalized sample no longer
// fits the wire format.
const ClipLevel = 1.0

// Stats summarizes the samples seen by a Meter.
type Stats struct {
	Samples int
	Peak    float64
	PeakDB  float64
	RMS     float64
	RMSDB   float64
	DC      float64
	// Clipped counts samples with |x| >= ClipLevel.
	Clipped int
}

// Meter accumulates level statistics across blocks. It is not safe for
// concurrent use.
type Meter struct {
	n       int
	sum     float64
	sumSq   float64
	peak    float64
	clipped int
}

// NewMeter returns an empty meter.
func NewMeter() *Meter {
	return &Meter{}
}

// Update adds a block.
func (m *Meter) Update(block []float64) {
	if len(block) == 0 {
		return
	}
	m.n += len(block)
	m.sum += floats.Sum(block)
	m.sumSq += floats.Dot(block, block)

	peak := math.Max(math.Abs(floats.Max(block)), math.Abs(floats.Min(block)))
	if peak > m.peak {
		m.peak = peak
	}
	if peak >= ClipLevel {
		for _, x := range block {
			if math.Abs(x) >= ClipLevel {
				m.clipped++
			}
		}
	}
}

// Result returns the statistics so far. An empty meter reports -Inf dB.
func (m *Meter) Result() Stats {
	if m.n == 0 {
		return Stats{PeakDB: math.Inf(-1), RMSDB: math.Inf(-1)}
	}
	nf := float64(m.n)
	rms := math.Sqrt(m.sumSq / nf)
	return Stats{
		Samples: m.n,
		Peak:    m.peak,
		PeakDB:  core.LinearToDB(m.peak),
		RMS:     rms,
		RMSDB:   core.LinearToDB(rms),
		DC:      m.sum / nf,
		Clipped: m.clipped,
	}
}

// Reset clears all accumulated data.
func (m *Meter) Reset() {
	*m = Meter{}
}
