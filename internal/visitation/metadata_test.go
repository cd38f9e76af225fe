package visitation

import (
	"math"
	"testing"

	"github.com/specialistvlad/confjson/internal/conferr"
	"github.com/specialistvlad/confjson/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"
)

func TestMetadata_HasType(t *testing.T) {
	var nilMeta *Metadata
	assert.False(t, nilMeta.HasType())
	assert.False(t, (&Metadata{}).HasType())
	assert.False(t, (&Metadata{Type: cty.DynamicPseudoType}).HasType())
	assert.True(t, (&Metadata{Type: cty.String}).HasType())
	assert.True(t, (&Metadata{Type: cty.List(cty.Number)}).HasType())
}

func TestMetadata_Check(t *testing.T) {
	testCases := []struct {
		name    string
		meta    *Metadata
		val     value.Value
		wantErr bool
	}{
		{"nil metadata", nil, value.String("x"), false},
		{"undeclared type", &Metadata{}, value.Bool(true), false},
		{"null always passes", &Metadata{Type: cty.Number}, value.Null(), false},
		{"int as number", &Metadata{Type: cty.Number}, value.Int(5), false},
		{"double as number", &Metadata{Type: cty.Number}, value.Double(0.5), false},
		{"numeric string as number", &Metadata{Type: cty.Number}, value.String("12"), false},
		{"word as number", &Metadata{Type: cty.Number}, value.String("twelve"), true},
		{"bool as number", &Metadata{Type: cty.Number}, value.Bool(true), true},
		{"sequence as list", &Metadata{Type: cty.List(cty.String)}, value.Sequence(value.String("a"), value.String("b")), false},
		{"empty sequence as list", &Metadata{Type: cty.List(cty.String)}, value.Sequence(), false},
		{"scalar as list", &Metadata{Type: cty.List(cty.String)}, value.String("a"), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.meta.Check(tc.val)
			if tc.wantErr {
				assert.ErrorIs(t, err, conferr.ErrTypeMismatch)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMetadata_CheckRejectsNonFiniteNumbers(t *testing.T) {
	md := &Metadata{Type: cty.Number}
	for _, v := range []value.Value{
		value.Double(math.NaN()),
		value.Float(float32(math.Inf(1))),
	} {
		assert.NotPanics(t, func() {
			assert.ErrorIs(t, md.Check(v), conferr.ErrUnsupportedType)
		})
	}

	list := &Metadata{Type: cty.List(cty.Number)}
	assert.ErrorIs(t, list.Check(value.Sequence(value.Double(math.Inf(-1)))), conferr.ErrUnsupportedType)
}
