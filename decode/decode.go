// Package decode provides the pluggable decoder registry that converts
// snapshot content into typed Go values.
//
// Factories are keyed by target type plus an optional format string.
// Lookup tries the exact (type, format) pair, then the format-free entry
// for the type, and finally falls back to a reflection-based decoder that
// handles structs, maps, slices and scalar widening.
package decode

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
)

// Source is the content handle passed to factories. It is implemented by
// the snapshot type; factories read the deep-immutable raw content
// through Value.
type Source interface {
	Value() any
}

// Factory converts source content into one target type. The format string
// it receives is the one the caller requested, which may differ from the
// one it was registered under when it was registered format-free.
type Factory func(src Source, format string) (any, error)

type factoryKey struct {
	typ    reflect.Type
	format string
}

// Registry is a set of conversion factories. The zero value is not usable;
// construct with NewRegistry or use Default. Each registry has a distinct
// identity: snapshots bound to different registries never merge caches.
type Registry struct {
	id uint64

	mu        sync.RWMutex
	factories map[factoryKey]Factory
}

var registryID atomic.Uint64

func NewRegistry() *Registry {
	return &Registry{
		id:        registryID.Add(1),
		factories: map[factoryKey]Factory{},
	}
}

// ID returns the registry's process-unique identity.
func (r *Registry) ID() uint64 {
	return r.id
}

// Register installs a factory for the given target type and format.
// An empty format registers the factory as the type's default, used for
// any requested format without a more specific entry.
func (r *Registry) Register(t reflect.Type, format string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[factoryKey{typ: t, format: format}] = f
}

// RegisterFor is the typed form of Registry.Register.
func RegisterFor[T any](r *Registry, format string, f func(src Source, format string) (T, error)) {
	r.Register(reflect.TypeFor[T](), format, func(src Source, fm string) (any, error) {
		return f(src, fm)
	})
}

func (r *Registry) lookup(t reflect.Type, format string) Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.factories[factoryKey{typ: t, format: format}]; ok {
		return f
	}
	if format != "" {
		if f, ok := r.factories[factoryKey{typ: t}]; ok {
			return f
		}
	}
	return nil
}

// Convert produces a value of type t from src. The result's dynamic type
// is guaranteed assignable to t. Failures are reported as *ConversionError.
func (r *Registry) Convert(src Source, t reflect.Type, format string) (any, error) {
	if f := r.lookup(t, format); f != nil {
		v, err := f(src, format)
		if err != nil {
			return nil, &ConversionError{Type: t, Format: format, Err: err}
		}
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || !rv.Type().AssignableTo(t) {
			return nil, &ConversionError{
				Type: t, Format: format,
				Err: errors.New("factory returned a value of the wrong type"),
			}
		}
		return v, nil
	}
	dst := reflect.New(t)
	if err := assign(src.Value(), dst.Elem(), ""); err != nil {
		return nil, &ConversionError{Type: t, Format: format, Err: err}
	}
	return dst.Elem().Interface(), nil
}
