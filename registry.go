package rtti

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Registry is a concurrency safe factory mapping type names to descriptors.
// Types are added during a controlled startup phase, either directly or through Install,
// and constructed by name afterwards.
type Registry struct {
	types   *hashMap[*Descriptor]
	mu      sync.Mutex
	sealed  atomic.Bool
	options *registryOpts
}

type registryOpts struct {
	replace bool
}

// RegistryOpt is an option for configuring a Registry
type RegistryOpt func(*registryOpts)

// WithReplace makes registering a taken name overwrite the existing descriptor instead of failing
func WithReplace() RegistryOpt {
	return func(opts *registryOpts) {
		opts.replace = true
	}
}

// NewRegistry creates an empty registry holding only the Interface root descriptor
func NewRegistry(opts ...RegistryOpt) *Registry {
	options := &registryOpts{}
	for _, opt := range opts {
		opt(options)
	}
	r := &Registry{
		types:   newHashMap[*Descriptor](),
		options: options,
	}
	r.types.Set(Interface.Name(), Interface)
	return r
}

// Register adds the descriptor under its name.
// Registering the same descriptor twice is a no-op; registering a different descriptor under a taken
// name returns ErrDuplicateType unless the registry was created WithReplace.
func (r *Registry) Register(d *Descriptor) error {
	if d == nil {
		return ErrNilDescriptor
	}
	if d.name == "" {
		return ErrInvalidName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Sealed() {
		return fmt.Errorf("%w: cannot register %s", ErrSealed, d.name)
	}
	if existing, ok := r.types.Get(d.name); ok {
		if existing == d {
			return nil
		}
		if !r.options.replace {
			return fmt.Errorf("%w: %s", ErrDuplicateType, d.name)
		}
		debugF("replacing type %s", d.name)
	}
	r.types.Set(d.name, d)
	debugF("registered type %s", d)
	return nil
}

// Define creates a descriptor and registers it in one step
func (r *Registry) Define(name string, construct Constructor, parent *Descriptor) (*Descriptor, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	d := NewDescriptor(name, construct, parent)
	if err := r.Register(d); err != nil {
		return nil, err
	}
	return d, nil
}

// MustDefine is like Define but panics on error. Useful from package level variables and init blocks.
func (r *Registry) MustDefine(name string, construct Constructor, parent *Descriptor) *Descriptor {
	d, err := r.Define(name, construct, parent)
	if err != nil {
		panic(err)
	}
	return d
}

// Lookup returns the descriptor registered under name
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	return r.types.Get(name)
}

// Has returns true if a descriptor is registered under name
func (r *Registry) Has(name string) bool {
	_, ok := r.types.Get(name)
	return ok
}

// Len returns the number of registered types, the Interface root included
func (r *Registry) Len() int {
	return r.types.Len()
}

// Names returns all registered names in lexicographic order
func (r *Registry) Names() []string {
	return r.types.Keys()
}

// Descriptors returns all registered descriptors ordered by name
func (r *Registry) Descriptors() []*Descriptor {
	return r.types.Values()
}

// Create constructs a new instance of the type registered under name.
func (r *Registry) Create(name string) (Object, error) {
	d, ok := r.types.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return d.New()
}

// CreateAs constructs the type registered under name and asserts it to T.
func CreateAs[T Object](r *Registry, name string) (T, error) {
	obj, err := r.Create(name)
	if err != nil {
		return *new(T), err
	}
	t, ok := obj.(T)
	if !ok {
		return *new(T), fmt.Errorf("%w: %s produced %T, want %T", ErrTypeMismatch, name, obj, *new(T))
	}
	return t, nil
}

// DerivedFrom returns every registered descriptor that is base or derives from it, ordered by name.
// It panics if base is nil.
func (r *Registry) DerivedFrom(base *Descriptor) []*Descriptor {
	var derived []*Descriptor
	for _, d := range r.types.Values() {
		if d.IsDerivedFrom(base) {
			derived = append(derived, d)
		}
	}
	return derived
}

// Seal prevents further registrations. It is idempotent and safe for concurrent use.
// Returns true if this call changed the state from unsealed to sealed.
func (r *Registry) Seal() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	changed := !r.sealed.Swap(true)
	if changed {
		debugF("registry sealed with %d types", r.Len())
	}
	return changed
}

// Sealed returns true if the registry no longer accepts registrations
func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

// Validate checks that every ancestor of every registered type is itself registered under its name.
// All problems are reported, joined.
func (r *Registry) Validate() error {
	var errs []error
	for _, d := range r.types.Values() {
		d.Ancestors(func(ancestor *Descriptor) bool {
			registered, ok := r.types.Get(ancestor.name)
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("%w: %s extends %s which is not registered", ErrUnregisteredParent, d.name, ancestor.name))
			case registered != ancestor:
				errs = append(errs, fmt.Errorf("%w: %s extends a %s that differs from the registered one", ErrUnregisteredParent, d.name, ancestor.name))
			}
			return true
		})
	}
	return errors.Join(errs...)
}

// Module registers a group of related types into a registry.
type Module interface {
	Register(r *Registry) error
}

// ModuleFunc adapts a function to the Module interface
type ModuleFunc func(r *Registry) error

// Register calls f(r)
func (f ModuleFunc) Register(r *Registry) error {
	return f(r)
}

// Install registers the modules one after another in argument order and validates the resulting registry.
// A module may Define types extending descriptors that an earlier module defined.
// Installation stops at the first failing module or when ctx is done.
func (r *Registry) Install(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.Register(r); err != nil {
			return err
		}
	}
	debugF("installed %d modules, %d types registered", len(modules), r.Len())
	return r.Validate()
}
