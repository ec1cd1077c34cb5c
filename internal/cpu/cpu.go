// Package cpu reports the SIMD extensions of the host, which decide the
// kernels the vector math library runs the effects on. Block timings are
// only comparable between hosts with the same level.
package cpu

import "sync"

// SIMDLevel is the widest vector extension available.
type SIMDLevel int

const (
	SIMDNone SIMDLevel = iota
	SIMDSSE2
	SIMDAVX
	SIMDAVX2
	SIMDAVX512
	SIMDNEON
)

var levelNames = [...]string{
	SIMDNone:   "none",
	SIMDSSE2:   "SSE2",
	SIMDAVX:    "AVX",
	SIMDAVX2:   "AVX2",
	SIMDAVX512: "AVX-512",
	SIMDNEON:   "NEON",
}

func (s SIMDLevel) String() string {
	if s >= 0 && int(s) < len(levelNames) {
		return levelNames[s]
	}
	return "unknown"
}

// Features describes the host.
type Features struct {
	HasSSE2   bool
	HasAVX    bool
	HasAVX2   bool
	HasAVX512 bool
	HasNEON   bool

	Architecture string
}

// Level returns the widest extension in f.
func (f Features) Level() SIMDLevel {
	switch {
	case f.HasAVX512:
		return SIMDAVX512
	case f.HasAVX2:
		return SIMDAVX2
	case f.HasAVX:
		return SIMDAVX
	case f.HasSSE2:
		return SIMDSSE2
	case f.HasNEON:
		return SIMDNEON
	}
	return SIMDNone
}

func (f Features) String() string {
	return f.Architecture + "/" + f.Level().String()
}

var (
	detected   Features
	detectOnce sync.Once
)

// Detect returns the host features. Detection runs once.
func Detect() Features {
	detectOnce.Do(func() { detected = detectFeatures() })
	return detected
}
