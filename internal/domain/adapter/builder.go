package adapter

import (
	"errors"

	"github.com/zjrosen/lattice/internal/domain/ifspec"
)

// Builder errors
var (
	ErrNilRegistry = errors.New("registration registry cannot be nil")
	ErrNoProvided  = errors.New("registration must name a provided spec")
	ErrNilValue    = errors.New("registration value cannot be nil")
)

// Builder provides a fluent API for composing registrations. Register with
// a nil value is the unregistration path and stays on the Registry itself;
// the builder only creates entries.
type Builder struct {
	registry *Registry
	required []ifspec.Spec
	provided ifspec.Spec
	name     string
	value    any
}

// NewBuilder creates a registration builder bound to a registry.
func NewBuilder(registry *Registry) *Builder {
	return &Builder{registry: registry}
}

// For sets the required specs the registration adapts from. Omitting it
// yields a null adapter (empty required sequence).
func (b *Builder) For(specs ...ifspec.Spec) *Builder {
	b.required = specs
	return b
}

// Provides sets the spec the registration adapts to.
func (b *Builder) Provides(spec ifspec.Spec) *Builder {
	b.provided = spec
	return b
}

// Named sets the name qualifier. The default is the empty string.
func (b *Builder) Named(name string) *Builder {
	b.name = name
	return b
}

// Value sets the registered value, typically a Factory.
func (b *Builder) Value(value any) *Builder {
	b.value = value
	return b
}

// Factory sets a factory function as the registered value.
func (b *Builder) Factory(fn func(objs ...any) any) *Builder {
	b.value = FactoryFunc(fn)
	return b
}

// Register validates the registration and writes it into the adapter trie.
func (b *Builder) Register() error {
	if err := b.validate(); err != nil {
		return err
	}
	if b.provided == nil {
		return ErrNoProvided
	}
	b.registry.Register(b.required, b.provided, b.name, b.value)
	return nil
}

// Subscribe validates the registration and appends it to the subscription
// trie. A nil provided spec designates a handler.
func (b *Builder) Subscribe() error {
	if err := b.validate(); err != nil {
		return err
	}
	b.registry.Subscribe(b.required, b.provided, b.value)
	return nil
}

func (b *Builder) validate() error {
	if b.registry == nil {
		return ErrNilRegistry
	}
	if b.value == nil {
		return ErrNilValue
	}
	return nil
}
