package value

import (
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/specialistvlad/confjson/internal/conferr"
	"github.com/zclconf/go-cty/cty"
)

// FromGo converts a native Go value into a Value.
//
// Integers narrower than 64 bits become Int, 64-bit integers become Long and
// a plain int is Int when it fits 32 bits. Slices and arrays become
// Sequences of their converted elements. Values already in the model and
// cty.Values are accepted as well. Anything else fails with
// conferr.ErrUnsupportedType.
func FromGo(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		if err := x.Validate(); err != nil {
			return Value{}, err
		}
		return x, nil
	case cty.Value:
		return FromCty(x)
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case int8:
		return Int(int32(x)), nil
	case int16:
		return Int(int32(x)), nil
	case int32:
		return Int(x), nil
	case uint8:
		return Int(int32(x)), nil
	case uint16:
		return Int(int32(x)), nil
	case int:
		return fromInt64(int64(x)), nil
	case int64:
		return Long(x), nil
	case uint32:
		return Long(int64(x)), nil
	case uint:
		return fromUint64(uint64(x), v)
	case uint64:
		return fromUint64(x, v)
	case float32:
		return fromFloat(float64(x), v, KindFloat)
	case float64:
		return fromFloat(x, v, KindDouble)
	}
	return fromReflect(reflect.ValueOf(v))
}

// fromReflect handles named basic types and containers.
func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return Int(int32(rv.Int())), nil
	case reflect.Int:
		return fromInt64(rv.Int()), nil
	case reflect.Int64:
		return Long(rv.Int()), nil
	case reflect.Uint8, reflect.Uint16:
		return Int(int32(rv.Uint())), nil
	case reflect.Uint32:
		return Long(int64(rv.Uint())), nil
	case reflect.Uint, reflect.Uint64:
		return fromUint64(rv.Uint(), rv.Interface())
	case reflect.Float32:
		return fromFloat(rv.Float(), rv.Interface(), KindFloat)
	case reflect.Float64:
		return fromFloat(rv.Float(), rv.Interface(), KindDouble)
	case reflect.Slice, reflect.Array:
		elems := make([]Value, rv.Len())
		for i := range elems {
			e, err := FromGo(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = e
		}
		return Value{kind: KindSequence, seq: elems}, nil
	case reflect.Invalid:
		return Null(), nil
	}
	return Value{}, fmt.Errorf("%w: can't write type %s", conferr.ErrUnsupportedType, rv.Type())
}

func fromInt64(i int64) Value {
	if i >= math.MinInt32 && i <= math.MaxInt32 {
		return Int(int32(i))
	}
	return Long(i)
}

func fromFloat(f float64, orig any, kind Kind) (Value, error) {
	if err := checkFinite(f, orig); err != nil {
		return Value{}, err
	}
	return Value{kind: kind, f: f}, nil
}

// checkFinite rejects NaN and infinities, which JSON cannot represent.
func checkFinite(f float64, orig any) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %T value %v is not a finite number", conferr.ErrUnsupportedType, orig, f)
	}
	return nil
}

func fromUint64(u uint64, orig any) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, fmt.Errorf("%w: %T value %d overflows Long", conferr.ErrUnsupportedType, orig, u)
	}
	return Long(int64(u)), nil
}

// FromCty converts a known cty value into a Value. Numbers become Int or Long
// when they are exact integers and Double otherwise.
func FromCty(v cty.Value) (Value, error) {
	if !v.IsKnown() {
		return Value{}, fmt.Errorf("%w: unknown cty value", conferr.ErrUnsupportedType)
	}
	if v.IsNull() {
		return Null(), nil
	}
	ty := v.Type()
	switch {
	case ty.Equals(cty.String):
		return String(v.AsString()), nil
	case ty.Equals(cty.Bool):
		return Bool(v.True()), nil
	case ty.Equals(cty.Number):
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return fromInt64(i), nil
			}
		}
		f, _ := bf.Float64()
		return fromFloat(f, v, KindDouble)
	case ty.IsListType(), ty.IsSetType(), ty.IsTupleType():
		elems := make([]Value, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			e, err := FromCty(ev)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, e)
		}
		return Value{kind: KindSequence, seq: elems}, nil
	}
	return Value{}, fmt.Errorf("%w: can't write cty type %s", conferr.ErrUnsupportedType, ty.FriendlyName())
}

// ToCty converts v into its cty equivalent. Sequences become tuples so that
// mixed element kinds survive; cty's convert package can narrow them to a
// list or set type afterwards. Values failing Validate are rejected.
func (v Value) ToCty() (cty.Value, error) {
	if err := v.Validate(); err != nil {
		return cty.NilVal, err
	}
	return v.toCty(), nil
}

func (v Value) toCty() cty.Value {
	switch v.kind {
	case KindString:
		return cty.StringVal(v.str)
	case KindBoolean:
		return cty.BoolVal(v.b)
	case KindInt, KindLong:
		return cty.NumberIntVal(v.i)
	case KindFloat, KindDouble:
		return cty.NumberFloatVal(v.f)
	case KindSequence:
		if len(v.seq) == 0 {
			return cty.EmptyTupleVal
		}
		elems := make([]cty.Value, len(v.seq))
		for i, e := range v.seq {
			elems[i] = e.toCty()
		}
		return cty.TupleVal(elems)
	}
	return cty.NullVal(cty.DynamicPseudoType)
}
