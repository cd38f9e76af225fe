package visitation

import (
	"fmt"

	"github.com/specialistvlad/confjson/internal/conferr"
	"github.com/specialistvlad/confjson/internal/value"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Metadata describes one property of a configuration type. Writers and
// readers pass it through untouched.
type Metadata struct {
	Description string
	Type        cty.Type // cty.NilType or cty.DynamicPseudoType when undeclared
	Default     *cty.Value
	Optional    bool
}

// HasType reports whether the property declares a concrete value type.
func (m *Metadata) HasType() bool {
	if m == nil || m.Type == cty.NilType {
		return false
	}
	return !m.Type.Equals(cty.DynamicPseudoType)
}

// Check reports whether v converts to the declared type. Null values and
// undeclared types always pass. Non-finite numbers fail with
// conferr.ErrUnsupportedType.
func (m *Metadata) Check(v value.Value) error {
	if !m.HasType() || v.IsNull() {
		return nil
	}
	ctyVal, err := v.ToCty()
	if err != nil {
		return err
	}
	if _, err := convert.Convert(ctyVal, m.Type); err != nil {
		return fmt.Errorf("%w: cannot convert %s to %s: %v", conferr.ErrTypeMismatch, v, m.Type.FriendlyName(), err)
	}
	return nil
}
