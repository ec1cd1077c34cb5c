//go:build arm64

package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

func detectFeatures() Features {
	return Features{
		HasNEON:      cpu.ARM64.HasASIMD,
		Architecture: runtime.GOARCH,
	}
}
