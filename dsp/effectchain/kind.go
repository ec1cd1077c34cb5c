package effectchain

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the effect selected for processing. The numbering follows the
// pedal's menu order.
type Kind uint8

const (
	KindBypass Kind = iota
	KindDelay
	KindOverdrive
	KindFuzz
	KindTremolo
	KindRingMod
	KindFilter

	kindCount
)

var kindNames = [kindCount]string{
	KindBypass:    "none",
	KindDelay:     "delay",
	KindOverdrive: "overdrive",
	KindFuzz:      "fuzz",
	KindTremolo:   "tremolo",
	KindRingMod:   "ringmod",
	KindFilter:    "filter",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Valid reports whether k names a known effect.
func (k Kind) Valid() bool { return k < kindCount }

// Kinds returns every known kind in menu order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind maps an effect name (case-insensitive) or menu index to a Kind.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, s) {
			return Kind(i), nil
		}
	}
	if strings.EqualFold(s, "bypass") {
		return KindBypass, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < int(kindCount) {
		return Kind(n), nil
	}
	return KindBypass, fmt.Errorf("%w: %q", ErrUnknownEffect, s)
}
