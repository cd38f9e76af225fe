// This file contains the logic for parsing HCL type expressions (e.g., `string`,
// `list(number)`) into their corresponding cty.Type objects.

package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/confjson/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// primitiveTypes maps the bare type keywords a property may declare.
var primitiveTypes = map[string]cty.Type{
	"string": cty.String,
	"number": cty.Number,
	"bool":   cty.Bool,
	"any":    cty.DynamicPseudoType,
}

// collectionTypes maps the single-argument type constructors.
var collectionTypes = map[string]func(cty.Type) cty.Type{
	"list": cty.List,
	"set":  cty.Set,
	"map":  cty.Map,
}

// propertyType resolves the `type` attribute of a property block. An omitted
// attribute means any. Errors name the configuration, the property and the
// source range of the offending expression.
func propertyType(ctx context.Context, owner string, pb *propertyBlock) (cty.Type, error) {
	if pb.Type == nil || isStaticNull(pb.Type) {
		ctxlog.FromContext(ctx).Debug("Property declares no type, defaulting to any.", "configuration", owner, "property", pb.Name)
		return cty.DynamicPseudoType, nil
	}
	ty, err := typeExprToCtyType(pb.Type)
	if err != nil {
		return cty.DynamicPseudoType, fmt.Errorf("in configuration '%s', property '%s': %w", owner, pb.Name, err)
	}
	return ty, nil
}

// isStaticNull reports the placeholder gohcl stores for an absent optional
// expression.
func isStaticNull(expr hcl.Expression) bool {
	if _, ok := expr.(hclsyntax.Expression); ok {
		return false
	}
	val, diags := expr.Value(nil)
	return !diags.HasErrors() && val.IsNull()
}

func typeExprToCtyType(expr hcl.Expression) (cty.Type, error) {
	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		construct, ok := collectionTypes[v.Name]
		if !ok {
			return cty.DynamicPseudoType, fmt.Errorf("%s: unknown type constructor function %q", v.NameRange, v.Name)
		}
		if len(v.Args) != 1 {
			return cty.DynamicPseudoType, fmt.Errorf("%s: %s() requires exactly one argument, got %d", v.Range(), v.Name, len(v.Args))
		}
		elem, err := typeExprToCtyType(v.Args[0])
		if err != nil {
			return cty.DynamicPseudoType, err
		}
		if elem == cty.DynamicPseudoType {
			return cty.DynamicPseudoType, fmt.Errorf("%s: collection types cannot contain type 'any'", v.Args[0].Range())
		}
		return construct(elem), nil

	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return cty.DynamicPseudoType, fmt.Errorf("%s: type keyword must be a single identifier", v.Range())
		}
		name := v.Traversal.RootName()
		ty, ok := primitiveTypes[name]
		if !ok {
			return cty.DynamicPseudoType, fmt.Errorf("%s: unknown primitive type %q", v.Range(), name)
		}
		return ty, nil
	}
	return cty.DynamicPseudoType, fmt.Errorf("%s: unsupported expression for type definition: %T", expr.Range(), expr)
}
