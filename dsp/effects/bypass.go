package effects

import "fmt"

// Bypass copies the source block to the destination unchanged.
type Bypass struct {
	src, dst []float64
}

// NewBypass binds a pass-through to src and dst.
func NewBypass(src, dst []float64) (*Bypass, error) {
	if err := CheckBlocks(src, dst); err != nil {
		return nil, err
	}
	return &Bypass{src: src, dst: dst}, nil
}

// Process copies one block.
func (b *Bypass) Process() { copy(b.dst, b.src) }

// Update always fails; Bypass has no parameters.
func (b *Bypass) Update(p Param, _ float64) error {
	return fmt.Errorf("%w: bypass has no %s", ErrUnknownParam, p)
}

// Value always fails; Bypass has no parameters.
func (b *Bypass) Value(p Param) (float64, error) {
	return 0, fmt.Errorf("%w: bypass has no %s", ErrUnknownParam, p)
}

// Params returns nil.
func (b *Bypass) Params() []ParamSpec { return nil }

// Reset does nothing.
func (b *Bypass) Reset() {}
