package pipeline

import (
	"github.com/aretw0/graft/pkg/feature"
	"github.com/aretw0/graft/pkg/registry"
)

// Factory creates the builder for one feature instance.
type Factory func(bc *Context, inst feature.Instance) (Builder, error)

// InternalFactory creates a builder that runs once per build regardless of features.
type InternalFactory func(bc *Context) Builder

type internalBuilder struct {
	name    string
	factory InternalFactory
}

// Registry maps feature kinds to builder factories.
type Registry struct {
	features *registry.Registry[feature.Kind, Factory]
	internal []internalBuilder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{features: registry.New[feature.Kind, Factory]()}
}

// Register binds a kind to its factory. Registering a kind twice is an error.
func (r *Registry) Register(kind feature.Kind, f Factory) error {
	return r.features.Register(kind, f)
}

// RegisterInternal adds a builder instantiated once per build.
func (r *Registry) RegisterInternal(name string, f InternalFactory) {
	r.internal = append(r.internal, internalBuilder{name: name, factory: f})
}

// Lookup returns the factory for kind.
func (r *Registry) Lookup(kind feature.Kind) (Factory, bool) {
	return r.features.Lookup(kind)
}

// Kinds lists the registered kinds in registration order.
func (r *Registry) Kinds() []feature.Kind {
	return r.features.Keys()
}
