// This file contains the logic for translating decoded HCL blocks into the
// registry's type descriptors.

package manifest

import (
	"context"
	"fmt"

	"github.com/specialistvlad/confjson/internal/registry"
	"github.com/specialistvlad/confjson/internal/visitation"
	"github.com/zclconf/go-cty/cty"
)

// translateConfiguration converts a `configuration` block into a registry type.
func translateConfiguration(ctx context.Context, b *configurationBlock) (*registry.Type, error) {
	t := &registry.Type{
		Name:        b.Name,
		Description: b.Description,
		Properties:  make([]*registry.Property, 0, len(b.Properties)),
	}
	for _, pb := range b.Properties {
		p, err := translateProperty(ctx, pb, b.Name)
		if err != nil {
			return nil, err
		}
		t.Properties = append(t.Properties, p)
	}
	return t, nil
}

// translateProperty processes a single `property` block, handling its type,
// default value and nested configuration reference.
func translateProperty(ctx context.Context, pb *propertyBlock, owner string) (*registry.Property, error) {
	parsedType, err := propertyType(ctx, owner, pb)
	if err != nil {
		return nil, err
	}

	var defaultVal *cty.Value
	isOptional := pb.Optional
	if pb.Default != nil {
		val, diags := pb.Default.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid default value for property '%s' in configuration '%s': %w", pb.Name, owner, diags)
		}
		if !val.IsNull() {
			defaultVal = &val
			isOptional = true
		}
	}

	if pb.Configuration != "" && parsedType != cty.DynamicPseudoType {
		return nil, fmt.Errorf("in configuration '%s', property '%s': 'type' and 'configuration' are mutually exclusive", owner, pb.Name)
	}

	return &registry.Property{
		Name:          pb.Name,
		Configuration: pb.Configuration,
		Metadata: &visitation.Metadata{
			Description: pb.Description,
			Type:        parsedType,
			Default:     defaultVal,
			Optional:    isOptional,
		},
	}, nil
}
