package tree

import (
	"fmt"

	"github.com/specialistvlad/confjson/internal/visitation"
)

// Walk describes c to v as one complete traversal.
func Walk(c *Configuration, v visitation.Visitor) error {
	if err := v.Begin(c.Type); err != nil {
		return err
	}
	if err := walkEntries(c, v); err != nil {
		return err
	}
	return v.End()
}

func walkEntries(c *Configuration, v visitation.Visitor) error {
	for _, e := range c.Entries {
		if !e.IsSubConfiguration() {
			if err := v.Item(e.Name, e.Value, e.Metadata); err != nil {
				return err
			}
			continue
		}
		if err := v.BeginSubConfiguration(e.Name, e.Child.Type, e.Metadata); err != nil {
			return err
		}
		if err := walkEntries(e.Child, v); err != nil {
			return fmt.Errorf("in '%s': %w", e.Name, err)
		}
		if err := v.EndSubConfiguration(); err != nil {
			return err
		}
	}
	return nil
}
