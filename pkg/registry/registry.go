// Package registry provides a process-scoped, explicitly constructed keyed registry.
package registry

import (
	"fmt"
	"sync"
)

// Registry maps keys to values. Keys are listed in registration order.
type Registry[K comparable, V any] struct {
	mu     sync.RWMutex
	values map[K]V
	order  []K
}

// New creates a new empty registry.
func New[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		values: make(map[K]V),
	}
}

// Register adds a value. Registering a key twice is an error, so two
// components can never silently replace each other.
func (r *Registry[K, V]) Register(key K, v V) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.values[key]; exists {
		return fmt.Errorf("registry: %v already registered", key)
	}
	r.values[key] = v
	r.order = append(r.order, key)
	return nil
}

// MustRegister is Register for static wiring; it panics on duplicates.
func (r *Registry[K, V]) MustRegister(key K, v V) {
	if err := r.Register(key, v); err != nil {
		panic(err)
	}
}

// Lookup returns the value registered for key.
func (r *Registry[K, V]) Lookup(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok
}

// Keys returns every registered key in registration order.
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]K(nil), r.order...)
}

// Len returns the number of registered keys.
func (r *Registry[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
