package core

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultSampleRate is the fixed pipeline rate in Hz.
	DefaultSampleRate = 48000
	// DefaultBlockSize is the number of mono samples per processing block.
	DefaultBlockSize = 64
)

// ProcessorConfig defines the processing settings fixed for a pipeline's lifetime.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the 48 kHz / 64-sample configuration.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: DefaultSampleRate,
		BlockSize:  DefaultBlockSize,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// Validate reports whether the configuration can drive a pipeline.
func (c ProcessorConfig) Validate() error {
	if c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("sample rate must be > 0 and finite: %f", c.SampleRate)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("block size must be > 0: %d", c.BlockSize)
	}
	return nil
}

// BlockPeriod returns the time one block of samples lasts at the sample rate.
// This is the processing deadline of every block.
func (c ProcessorConfig) BlockPeriod() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(c.BlockSize) / c.SampleRate * float64(time.Second))
}

// MsToSamples converts milliseconds to a whole number of samples, truncating.
func (c ProcessorConfig) MsToSamples(ms float64) int {
	return int(ms * c.SampleRate / 1000)
}
