package effectchain

import "github.com/cwbudde/algo-pedal/dsp/ringbuf"

// Context provides what effect factories need to bind an effect.
type Context struct {
	SampleRate float64
	// Src and Dst are the blocks every effect of a rack is bound to.
	Src, Dst []float64
	// DelayLine, when set, is handed to the delay instead of a private line.
	DelayLine *ringbuf.Ring[float64]
}
