package jsonconf_test

import (
	"math"
	"sync"
	"testing"

	"github.com/specialistvlad/confjson/internal/conferr"
	"github.com/specialistvlad/confjson/internal/jsonconf"
	"github.com/specialistvlad/confjson/internal/registry"
	"github.com/specialistvlad/confjson/internal/testutil"
	"github.com/specialistvlad/confjson/internal/value"
	"github.com/specialistvlad/confjson/internal/visitation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// newTestRegistry declares "Config" with every property the tests write.
func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	props := []*registry.Property{
		{Name: "x", Metadata: &visitation.Metadata{Type: cty.Number}},
		{Name: "y", Metadata: &visitation.Metadata{Type: cty.String}},
		{Name: "child", Configuration: "Config", Metadata: &visitation.Metadata{Description: "nested"}},
		{Name: "tags", Metadata: &visitation.Metadata{Type: cty.List(cty.String)}},
	}
	for _, name := range []string{"null", "string", "boolean", "int", "long", "double", "float", "nested"} {
		props = append(props, &registry.Property{Name: name, Metadata: &visitation.Metadata{}})
	}
	require.NoError(t, reg.Register(registry.NewType("Config", props...)))
	return reg
}

func collect(t *testing.T, v visitation.Visitable) []visitation.Element {
	t.Helper()
	var out []visitation.Element
	for el, err := range v.Elements() {
		require.NoError(t, err)
		out = append(out, el)
	}
	return out
}

func firstError(v visitation.Visitable) error {
	for _, err := range v.Elements() {
		if err != nil {
			return err
		}
	}
	return nil
}

func TestReader_ExampleDocument(t *testing.T) {
	reg := newTestRegistry(t)
	cfgType, err := reg.Resolve("Config")
	require.NoError(t, err)
	xProp, _ := cfgType.Property("x")
	childProp, _ := cfgType.Property("child")
	yProp, _ := cfgType.Property("y")

	r, err := jsonconf.ParseReader([]byte(exampleDocument), reg)
	require.NoError(t, err)
	assert.Equal(t, "Config", r.ConfigurationType())
	assert.Same(t, cfgType, r.Type())

	elements := collect(t, r)
	require.Len(t, elements, 2)

	item, ok := elements[0].(*visitation.Item)
	require.True(t, ok, "first element should be an item, got %T", elements[0])
	assert.Equal(t, "x", item.Name)
	assert.True(t, value.Int(5).Equal(item.Value), "got %s", item.Value)
	assert.Same(t, xProp.Metadata, item.Metadata)

	sub, ok := elements[1].(*visitation.SubConfiguration)
	require.True(t, ok, "second element should be a sub-configuration, got %T", elements[1])
	assert.Equal(t, "child", sub.Name)
	assert.Same(t, childProp.Metadata, sub.Metadata)
	assert.Equal(t, "Config", sub.Configuration.ConfigurationType())

	childElements := collect(t, sub.Configuration)
	require.Len(t, childElements, 1)
	y := childElements[0].(*visitation.Item)
	assert.Equal(t, "y", y.Name)
	assert.True(t, value.String("hi").Equal(y.Value))
	assert.Same(t, yProp.Metadata, y.Metadata)
}

func TestReader_OverWriterResult(t *testing.T) {
	reg := newTestRegistry(t)
	w := jsonconf.NewWriter(testutil.Context(t))
	writeExample(t, w)
	node, err := w.Result()
	require.NoError(t, err)

	r, err := jsonconf.NewReader(node, reg)
	require.NoError(t, err)
	elements := collect(t, r)
	require.Len(t, elements, 2)
	assert.True(t, value.Int(5).Equal(elements[0].(*visitation.Item).Value))
}

func TestReader_RoundTripsEveryKind(t *testing.T) {
	reg := newTestRegistry(t)
	w := jsonconf.NewWriter(testutil.Context(t))
	require.NoError(t, w.Begin("Config"))
	require.NoError(t, w.Item("null", nil, nil))
	require.NoError(t, w.Item("string", "abc", nil))
	require.NoError(t, w.Item("boolean", true, nil))
	require.NoError(t, w.Item("int", math.MinInt32, nil))
	require.NoError(t, w.Item("long", int64(1)<<40, nil))
	require.NoError(t, w.Item("double", 3.14, nil))
	require.NoError(t, w.Item("float", float32(1.1), nil))
	require.NoError(t, w.Item("tags", []string{"a", "b"}, nil))
	require.NoError(t, w.Item("nested", [][]int32{{1}, {}}, nil))
	require.NoError(t, w.End())

	data, err := w.MarshalJSON()
	require.NoError(t, err)
	r, err := jsonconf.ParseReader(data, reg)
	require.NoError(t, err)

	want := []struct {
		name string
		v    value.Value
	}{
		{"null", value.Null()},
		{"string", value.String("abc")},
		{"boolean", value.Bool(true)},
		{"int", value.Int(math.MinInt32)},
		{"long", value.Long(1 << 40)},
		{"double", value.Double(3.14)},
		{"float", value.Float(1.1)},
		{"tags", value.Sequence(value.String("a"), value.String("b"))},
		{"nested", value.Sequence(value.Sequence(value.Int(1)), value.Sequence())},
	}
	got := collect(t, r)
	require.Len(t, got, len(want))
	for i, w := range want {
		item, ok := got[i].(*visitation.Item)
		require.True(t, ok)
		assert.Equal(t, w.name, item.Name)
		assert.True(t, w.v.Equal(item.Value), "%s: want %s, got %s", w.name, w.v, item.Value)
	}
}

func TestReader_LongPrecision(t *testing.T) {
	reg := newTestRegistry(t)

	for _, n := range []int64{1<<53 + 1, math.MaxInt64, math.MinInt64} {
		w := jsonconf.NewWriter(testutil.Context(t))
		require.NoError(t, w.Begin("Config"))
		require.NoError(t, w.Item("long", n, nil))
		require.NoError(t, w.End())
		data, err := w.MarshalJSON()
		require.NoError(t, err)

		r, err := jsonconf.ParseReader(data, reg)
		require.NoError(t, err)
		got := collect(t, r)
		require.Len(t, got, 1)
		item := got[0].(*visitation.Item)
		assert.True(t, value.Long(n).Equal(item.Value), "want Long(%d), got %s", n, item.Value)
	}
}

func TestReader_NumberForms(t *testing.T) {
	reg := newTestRegistry(t)
	testCases := []struct {
		name string
		item string
		want value.Value
	}{
		{"exponent long", `{"type":"Long","value":1e3}`, value.Long(1000)},
		{"integral double", `{"type":"Double","value":2}`, value.Double(2)},
		{"negative int", `{"type":"Int","value":-7}`, value.Int(-7)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := jsonconf.ParseReader([]byte(`{"type":"Config","body":{"x":`+tc.item+`}}`), reg)
			require.NoError(t, err)
			got := collect(t, r)
			require.Len(t, got, 1)
			assert.True(t, tc.want.Equal(got[0].(*visitation.Item).Value), "got %s", got[0].(*visitation.Item).Value)
		})
	}
}

func TestReader_DuplicateKeys(t *testing.T) {
	reg := newTestRegistry(t)
	doc := []byte(`{"type":"Config","body":{"x":{"type":"Int","value":1},"y":{"type":"String","value":"s"},"x":{"type":"Int","value":2}}}`)

	r, err := jsonconf.ParseReader(doc, reg)
	require.NoError(t, err)
	got := collect(t, r)
	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].ElementName(), "first position is kept")
	assert.True(t, value.Int(2).Equal(got[0].(*visitation.Item).Value), "last value wins")

	_, err = jsonconf.ParseReader(doc, reg, jsonconf.RejectDuplicateNames())
	require.ErrorIs(t, err, conferr.ErrDuplicateElement)
	assert.Contains(t, err.Error(), "'x'")

	_, err = jsonconf.ParseReader([]byte(`{"type":"Config","type":"Config","body":{}}`), reg, jsonconf.RejectDuplicateNames())
	assert.ErrorIs(t, err, conferr.ErrDuplicateElement)
}

func TestReader_PreservesStoredOrder(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(registry.NewType("T",
		&registry.Property{Name: "a"}, &registry.Property{Name: "b"}, &registry.Property{Name: "c"})))

	doc := `{"type":"T","body":{"c":{"type":"Int","value":3},"a":{"type":"Int","value":1},"b":{"type":"Int","value":2}}}`
	r, err := jsonconf.ParseReader([]byte(doc), reg)
	require.NoError(t, err)

	for range 2 { // each call to Elements starts over
		var names []string
		for _, el := range collect(t, r) {
			names = append(names, el.ElementName())
		}
		assert.Equal(t, []string{"c", "a", "b"}, names)
	}
}

func TestReader_Errors(t *testing.T) {
	reg := newTestRegistry(t)

	t.Run("unrecognised kind tag", func(t *testing.T) {
		r, err := jsonconf.ParseReader([]byte(`{"type":"Config","body":{"x":{"type":"Frobnicate","value":1}}}`), reg)
		require.NoError(t, err)
		err = firstError(r)
		require.ErrorIs(t, err, conferr.ErrUnrecognisedType)
		assert.Contains(t, err.Error(), "Frobnicate")
	})

	t.Run("property not found", func(t *testing.T) {
		r, err := jsonconf.ParseReader([]byte(`{"type":"Config","body":{"missing":{"type":"Int","value":1}}}`), reg)
		require.NoError(t, err)
		assert.ErrorIs(t, firstError(r), conferr.ErrPropertyNotFound)
	})

	t.Run("unknown root type", func(t *testing.T) {
		_, err := jsonconf.ParseReader([]byte(`{"type":"Nope","body":{}}`), reg)
		assert.ErrorIs(t, err, conferr.ErrTypeResolution)
	})

	t.Run("unknown nested type", func(t *testing.T) {
		r, err := jsonconf.ParseReader([]byte(`{"type":"Config","body":{"child":{"type":"Nope","body":{}}}}`), reg)
		require.NoError(t, err)
		assert.ErrorIs(t, firstError(r), conferr.ErrTypeResolution)
	})

	t.Run("elements before the failure are yielded", func(t *testing.T) {
		r, err := jsonconf.ParseReader([]byte(`{"type":"Config","body":{"x":{"type":"Int","value":1},"y":{"type":"Frobnicate","value":1},"child":{"type":"Config","body":{}}}}`), reg)
		require.NoError(t, err)
		var names []string
		var gotErr error
		for el, err := range r.Elements() {
			if err != nil {
				gotErr = err
				continue
			}
			names = append(names, el.ElementName())
		}
		assert.Equal(t, []string{"x"}, names)
		assert.ErrorIs(t, gotErr, conferr.ErrUnrecognisedType)
	})

	malformed := []struct {
		name string
		doc  string
	}{
		{"not json", `{"type":`},
		{"not an object", `[1,2]`},
		{"missing type", `{"body":{}}`},
		{"missing body", `{"type":"Config"}`},
		{"body is not an object", `{"type":"Config","body":[]}`},
		{"empty input", ``},
		{"trailing data", `{"type":"Config","body":{}} {}`},
		{"unterminated body", `{"type":"Config","body":{"x":{"type":"Int","value":1}`},
	}
	for _, tc := range malformed {
		t.Run("construct: "+tc.name, func(t *testing.T) {
			_, err := jsonconf.ParseReader([]byte(tc.doc), reg)
			assert.ErrorIs(t, err, conferr.ErrMalformedDocument)
		})
	}

	badElements := []struct {
		name string
		body string
	}{
		{"scalar entry", `{"x":5}`},
		{"neither body nor value", `{"x":{"type":"Int"}}`},
		{"int out of range", `{"x":{"type":"Int","value":3000000000}}`},
		{"fractional int", `{"x":{"type":"Long","value":1.5}}`},
		{"string holding a number", `{"y":{"type":"String","value":1}}`},
		{"sequence of scalars", `{"tags":["a"]}`},
		{"double overflow", `{"x":{"type":"Double","value":1e400}}`},
		{"float overflow", `{"x":{"type":"Float","value":1e39}}`},
		{"long overflow", `{"x":{"type":"Long","value":9223372036854775808}}`},
	}
	for _, tc := range badElements {
		t.Run("element: "+tc.name, func(t *testing.T) {
			r, err := jsonconf.ParseReader([]byte(`{"type":"Config","body":`+tc.body+`}`), reg)
			require.NoError(t, err)
			assert.ErrorIs(t, firstError(r), conferr.ErrMalformedDocument)
		})
	}
}

func TestReader_ConcurrentUse(t *testing.T) {
	reg := newTestRegistry(t)
	r, err := jsonconf.ParseReader([]byte(exampleDocument), reg)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for el, err := range r.Elements() {
				if err != nil {
					t.Error(err)
					return
				}
				if sub, ok := el.(*visitation.SubConfiguration); ok {
					for _, err := range sub.Configuration.Elements() {
						if err != nil {
							t.Error(err)
						}
					}
				}
			}
		}()
	}
	wg.Wait()
}
