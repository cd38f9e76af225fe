package tree

import (
	"fmt"

	"github.com/specialistvlad/confjson/internal/value"
	"github.com/specialistvlad/confjson/internal/visitation"
)

// Configuration is one node of a configuration tree.
type Configuration struct {
	Type    string
	Entries []*Entry
}

// Entry is a named element of a Configuration. Exactly one of Value or
// Child is meaningful: entries with a non-nil Child are sub-configurations.
type Entry struct {
	Name     string
	Value    value.Value
	Child    *Configuration
	Metadata *visitation.Metadata
}

// IsSubConfiguration reports whether the entry holds a nested configuration.
func (e *Entry) IsSubConfiguration() bool {
	return e.Child != nil
}

// New creates an empty configuration of the given type.
func New(typeName string) *Configuration {
	return &Configuration{Type: typeName}
}

// Add sets an item entry, converting v with value.FromGo. An existing entry
// with the same name is replaced in place.
func (c *Configuration) Add(name string, v any, md *visitation.Metadata) error {
	val, err := value.FromGo(v)
	if err != nil {
		return fmt.Errorf("entry '%s': %w", name, err)
	}
	c.set(&Entry{Name: name, Value: val, Metadata: md})
	return nil
}

// AddChild sets a sub-configuration entry.
func (c *Configuration) AddChild(name string, child *Configuration, md *visitation.Metadata) {
	c.set(&Entry{Name: name, Child: child, Metadata: md})
}

// Get returns the entry stored under name.
func (c *Configuration) Get(name string) (*Entry, bool) {
	for _, e := range c.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

func (c *Configuration) set(e *Entry) {
	for i, existing := range c.Entries {
		if existing.Name == e.Name {
			c.Entries[i] = e
			return
		}
	}
	c.Entries = append(c.Entries, e)
}

// AsMap flattens the tree into nested maps of native Go values.
func (c *Configuration) AsMap() map[string]any {
	out := make(map[string]any, len(c.Entries))
	for _, e := range c.Entries {
		if e.IsSubConfiguration() {
			out[e.Name] = e.Child.AsMap()
			continue
		}
		out[e.Name] = e.Value.Interface()
	}
	return out
}
