package tree

import (
	"fmt"

	"github.com/specialistvlad/confjson/internal/visitation"
)

// BuildOption configures Build.
type BuildOption func(*builder)

// WithTypeCheck makes Build verify every item against the type declared in
// its metadata.
func WithTypeCheck() BuildOption {
	return func(b *builder) { b.checkTypes = true }
}

type builder struct {
	checkTypes bool
}

// Build reconstructs a Configuration from src, descending into every
// sub-configuration.
func Build(src visitation.Visitable, opts ...BuildOption) (*Configuration, error) {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b.build(src)
}

func (b *builder) build(src visitation.Visitable) (*Configuration, error) {
	c := New(src.ConfigurationType())
	for el, err := range src.Elements() {
		if err != nil {
			return nil, err
		}
		switch e := el.(type) {
		case *visitation.Item:
			if b.checkTypes {
				if err := e.Metadata.Check(e.Value); err != nil {
					return nil, fmt.Errorf("item '%s' of '%s': %w", e.Name, c.Type, err)
				}
			}
			c.Entries = append(c.Entries, &Entry{Name: e.Name, Value: e.Value, Metadata: e.Metadata})
		case *visitation.SubConfiguration:
			child, err := b.build(e.Configuration)
			if err != nil {
				return nil, err
			}
			c.Entries = append(c.Entries, &Entry{Name: e.Name, Child: child, Metadata: e.Metadata})
		default:
			return nil, fmt.Errorf("unknown element type %T", el)
		}
	}
	return c, nil
}
