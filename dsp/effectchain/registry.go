package effectchain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEffect is returned for a kind or name with no effect.
	ErrUnknownEffect = errors.New("unknown effect type")

	errDuplicateEffect = errors.New("duplicate effect type")
)

// Registry maps effect kinds to their factories.
type Registry struct {
	factories map[Kind]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[Kind]Factory)}
}

// Register adds a factory for the given kind. KindBypass is built in and
// cannot be registered.
func (r *Registry) Register(kind Kind, factory Factory) error {
	if !kind.Valid() || kind == KindBypass {
		return fmt.Errorf("%w: %s", ErrUnknownEffect, kind)
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, kind)
	}

	r.factories[kind] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(kind Kind, factory Factory) {
	err := r.Register(kind, factory)
	if err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// Lookup returns the factory for the given kind, or nil.
func (r *Registry) Lookup(kind Kind) Factory {
	return r.factories[kind]
}
