package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/specialistvlad/confjson/internal/conferr"
	"github.com/specialistvlad/confjson/internal/visitation"
)

// Resolver turns a qualified type name back into its descriptor.
type Resolver interface {
	Resolve(name string) (*Type, error)
}

// Property is a single named element a configuration type declares.
type Property struct {
	Name string
	// Configuration is the qualified type name for sub-configuration
	// properties and empty for items.
	Configuration string
	Metadata      *visitation.Metadata
}

// IsSubConfiguration reports whether the property holds a nested configuration.
func (p *Property) IsSubConfiguration() bool {
	return p.Configuration != ""
}

// Type describes a configuration type by its qualified name.
type Type struct {
	Name        string
	Description string
	Properties  []*Property
}

// NewType creates a Type with the given properties.
func NewType(name string, props ...*Property) *Type {
	return &Type{Name: name, Properties: props}
}

// Property returns the property declared under name.
func (t *Type) Property(name string) (*Property, error) {
	for _, p := range t.Properties {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: type '%s' has no property '%s'", conferr.ErrPropertyNotFound, t.Name, name)
}

// Registry holds every configuration type known to an application instance.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Type
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		types: make(map[string]*Type),
	}
}

// Register adds a configuration type. Names must be unique and non-empty,
// and a type may not declare the same property twice.
func (r *Registry) Register(t *Type) error {
	if t == nil || t.Name == "" {
		return fmt.Errorf("configuration type must have a name")
	}
	seen := make(map[string]struct{}, len(t.Properties))
	for _, p := range t.Properties {
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("type '%s' declares property '%s' more than once", t.Name, p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[t.Name]; exists {
		return fmt.Errorf("configuration type '%s' already registered", t.Name)
	}
	slog.Debug("Registering configuration type.", "type", t.Name, "properties", len(t.Properties))
	r.types[t.Name] = t
	return nil
}

// MustRegister is like Register but panics on error. It is meant for types
// declared in Go at init time.
func (r *Registry) MustRegister(types ...*Type) {
	for _, t := range types {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
}

// Resolve implements Resolver.
func (r *Registry) Resolve(name string) (*Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: no configuration type named '%s'", conferr.ErrTypeResolution, name)
	}
	return t, nil
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
