package registry

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/confjson/internal/ctxlog"
	"github.com/zclconf/go-cty/cty/convert"
)

// Validate checks that every sub-configuration property refers to a
// registered type and that every declared default converts to its
// property's type. All problems are reported together.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var result *multierror.Error

	for _, name := range r.Names() {
		t, _ := r.Resolve(name)
		for _, p := range t.Properties {
			if p.IsSubConfiguration() {
				if _, err := r.Resolve(p.Configuration); err != nil {
					result = multierror.Append(result, fmt.Errorf("type '%s', property '%s': %w", t.Name, p.Name, err))
				}
				if p.Metadata != nil && p.Metadata.Default != nil {
					result = multierror.Append(result, fmt.Errorf("type '%s', property '%s': sub-configurations cannot declare a default", t.Name, p.Name))
				}
				continue
			}

			md := p.Metadata
			if md == nil || md.Default == nil {
				continue
			}
			if !md.HasType() {
				logger.Warn("Property has type 'any', which disables default type checking.", "type", t.Name, "property", p.Name)
				continue
			}
			if _, err := convert.Convert(*md.Default, md.Type); err != nil {
				result = multierror.Append(result, fmt.Errorf("type '%s', property '%s': default is not a valid %s: %w",
					t.Name, p.Name, md.Type.FriendlyName(), err))
			}
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}
	logger.Debug("Registry validation passed.", "types", len(r.Names()))
	return nil
}
