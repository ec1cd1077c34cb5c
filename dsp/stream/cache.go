package stream

// CacheMaintainer brackets CPU access to memory shared with the transfer
// engine. Invalidate runs before the CPU reads words the engine wrote;
// Clean runs after the CPU wrote words the engine will read.
type CacheMaintainer interface {
	Invalidate(words []uint32)
	Clean(words []uint32)
}

// NonCacheable is the maintainer for transfer buffers placed in a region
// that is not cached. Both operations do nothing.
type NonCacheable struct{}

func (NonCacheable) Invalidate([]uint32) {}
func (NonCacheable) Clean([]uint32)      {}

// CacheFuncs adapts a pair of functions to CacheMaintainer. A nil function
// is skipped.
type CacheFuncs struct {
	InvalidateFunc func(words []uint32)
	CleanFunc      func(words []uint32)
}

func (c CacheFuncs) Invalidate(words []uint32) {
	if c.InvalidateFunc != nil {
		c.InvalidateFunc(words)
	}
}

func (c CacheFuncs) Clean(words []uint32) {
	if c.CleanFunc != nil {
		c.CleanFunc(words)
	}
}
