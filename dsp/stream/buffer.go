package stream

import "fmt"

// Half identifies one of the two regions of a TransferBuffer.
type Half uint8

const (
	HalfFirst Half = iota
	HalfSecond
)

func (h Half) String() string {
	if h == HalfFirst {
		return "first"
	}
	return "second"
}

// Other returns the opposite half.
func (h Half) Other() Half { return h ^ 1 }

// TransferBuffer is the raw word storage shared with the transfer engine:
// two equal halves laid out back to back.
type TransferBuffer struct {
	words []uint32
	half  int
}

// NewTransferBuffer allocates a buffer whose halves hold halfLen words each.
func NewTransferBuffer(halfLen int) (*TransferBuffer, error) {
	if halfLen <= 0 {
		return nil, fmt.Errorf("transfer buffer half length must be > 0: %d", halfLen)
	}
	return &TransferBuffer{words: make([]uint32, 2*halfLen), half: halfLen}, nil
}

// Half returns the words of region h. The slice aliases the buffer.
func (b *TransferBuffer) Half(h Half) []uint32 {
	off := int(h&1) * b.half
	return b.words[off : off+b.half : off+b.half]
}

// HalfLen returns the number of words per half.
func (b *TransferBuffer) HalfLen() int { return b.half }

// Words returns the whole buffer.
func (b *TransferBuffer) Words() []uint32 { return b.words }
