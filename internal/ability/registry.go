package ability

import (
	"sync"

	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
)

type registration struct {
	name    string
	ordinal int
}

// Registry maps ability names to types and back. It is built once at
// startup, before any entity exists, and handed to whatever needs names.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Type
	byType map[*Type]registration
	order  []*Type
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Type),
		byType: make(map[*Type]registration),
	}
}

// Register binds name to t. Registering the same type under the same name
// again is a no-op; any other reuse of the name or the type is an error.
func (r *Registry) Register(name string, t *Type) (*Type, error) {
	if name == "" {
		return nil, apperr.InvalidArgument("ability name cannot be empty")
	}
	if t == nil {
		return nil, apperr.InvalidArgumentf("ability %q has a nil type", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byName[name]; ok {
		if existing == t {
			return t, nil
		}
		return nil, apperr.AlreadyExistsf("ability name %q is already bound to another type", name).
			WithMeta("name", name)
	}

	if reg, ok := r.byType[t]; ok {
		return nil, apperr.AlreadyExistsf("ability type is already registered as %q", reg.name).
			WithMeta("name", reg.name)
	}

	r.byName[name] = t
	r.byType[t] = registration{name: name, ordinal: len(r.order)}
	r.order = append(r.order, t)

	return t, nil
}

// MustRegister registers t and panics on a configuration error
func (r *Registry) MustRegister(name string, t *Type) *Type {
	registered, err := r.Register(name, t)
	if err != nil {
		panic(err)
	}
	return registered
}

// Get looks a type up by name
func (r *Registry) Get(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byName[name]
	return t, ok
}

// Name looks the name of a registered type up
func (r *Registry) Name(t *Type) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.byType[t]
	return reg.name, ok
}

// Ordinal returns the registration position of t
func (r *Registry) Ordinal(t *Type) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.byType[t]
	return reg.ordinal, ok
}

// Names returns all names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.order))
	for _, t := range r.order {
		names = append(names, r.byType[t].name)
	}
	return names
}

// Types returns all types in registration order
func (r *Registry) Types() []*Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]*Type, len(r.order))
	copy(types, r.order)
	return types
}

// Len returns the number of registered types
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}
