package pedal

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effectchain"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/pcm"
	"github.com/cwbudde/algo-pedal/dsp/stream"
	"github.com/sirupsen/logrus"
)

// ringTableLimit is the number of ring buffers the pedal may create. The
// delay line is the only one.
const ringTableLimit = 1

// Config holds everything fixed when a Pedal is built.
type Config struct {
	Processor core.ProcessorConfig
	Format    pcm.Format
	Policy    stream.Policy
	Cache     stream.CacheMaintainer
	// Realtime bounds each block's wait by the block period when rendering.
	Realtime bool
	// Effect is the kind selected at startup.
	Effect effectchain.Kind
	// Params are initial parameter values per effect kind.
	Params map[effectchain.Kind]effectchain.Params
	Logger logrus.FieldLogger
}

// DefaultConfig returns the startup configuration: 48 kHz, 64-sample
// blocks, 24-bit stereo words, pass-through selected, a 400 ms delay with
// blend and feedback 0.4, and a tremolo at rate 0.7 and depth 0.8.
func DefaultConfig() Config {
	return Config{
		Processor: core.DefaultProcessorConfig(),
		Format:    pcm.DefaultFormat(),
		Policy:    stream.PolicyReject,
		Cache:     stream.NonCacheable{},
		Effect:    effectchain.KindBypass,
		Params: map[effectchain.Kind]effectchain.Params{
			effectchain.KindDelay: {
				effects.ParamDelayTime: 400,
				effects.ParamBlend:     0.4,
				effects.ParamFeedback:  0.4,
			},
			effectchain.KindTremolo: {
				effects.ParamRate:  0.7,
				effects.ParamDepth: 0.8,
			},
		},
	}
}

// Option mutates a Config.
type Option func(*Config) error

// WithSampleRate sets the processing sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(c *Config) error {
		core.WithSampleRate(sampleRate)(&c.Processor)
		if c.Processor.SampleRate != sampleRate {
			return fmt.Errorf("sample rate must be > 0 and finite: %f", sampleRate)
		}
		return c.Processor.Validate()
	}
}

// WithBlockSize sets the number of mono samples per block.
func WithBlockSize(n int) Option {
	return func(c *Config) error {
		core.WithBlockSize(n)(&c.Processor)
		if c.Processor.BlockSize != n {
			return fmt.Errorf("block size must be > 0: %d", n)
		}
		return nil
	}
}

// WithFormat sets the wire format of the transfer buffers.
func WithFormat(f pcm.Format) Option {
	return func(c *Config) error {
		if err := f.Validate(); err != nil {
			return err
		}
		c.Format = f
		return nil
	}
}

// WithPolicy sets the overrun policy of the scheduler.
func WithPolicy(p stream.Policy) Option {
	return func(c *Config) error {
		if p > stream.PolicyFatal {
			return fmt.Errorf("unknown overrun policy: %d", p)
		}
		c.Policy = p
		return nil
	}
}

// WithCacheMaintainer sets the cache strategy for the transfer buffers.
func WithCacheMaintainer(m stream.CacheMaintainer) Option {
	return func(c *Config) error {
		if m == nil {
			return errors.New("nil cache maintainer")
		}
		c.Cache = m
		return nil
	}
}

// WithRealtime makes Render enforce the block period as a deadline.
func WithRealtime(on bool) Option {
	return func(c *Config) error {
		c.Realtime = on
		return nil
	}
}

// WithEffect selects the effect active at startup.
func WithEffect(k effectchain.Kind) Option {
	return func(c *Config) error {
		if !k.Valid() {
			return fmt.Errorf("%w: %s", effectchain.ErrUnknownEffect, k)
		}
		c.Effect = k
		return nil
	}
}

// WithParam sets the initial value of one effect parameter. It is
// validated when the pedal is built.
func WithParam(k effectchain.Kind, p effects.Param, value float64) Option {
	return func(c *Config) error {
		if !k.Valid() {
			return fmt.Errorf("%w: %s", effectchain.ErrUnknownEffect, k)
		}
		if c.Params == nil {
			c.Params = make(map[effectchain.Kind]effectchain.Params)
		}
		if c.Params[k] == nil {
			c.Params[k] = effectchain.Params{}
		}
		c.Params[k][p] = value
		return nil
	}
}

// WithLogger sets the logger for the pedal and its scheduler.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Config) error {
		if l == nil {
			return errors.New("nil logger")
		}
		c.Logger = l
		return nil
	}
}
