package jsonconf

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/iancoleman/orderedmap"
	"github.com/specialistvlad/confjson/internal/conferr"
	"github.com/specialistvlad/confjson/internal/value"
)

// asObject accepts both forms orderedmap produces: pointers for maps built
// in memory and values for maps nested inside unmarshalled documents.
func asObject(raw any) (*orderedmap.OrderedMap, bool) {
	switch o := raw.(type) {
	case *orderedmap.OrderedMap:
		return o, o != nil
	case orderedmap.OrderedMap:
		return &o, true
	}
	return nil, false
}

// decodeSequence decodes a bare array of encoded items.
func decodeSequence(arr []any) (value.Value, error) {
	elems := make([]value.Value, len(arr))
	for i, raw := range arr {
		e, err := decodeElementValue(raw)
		if err != nil {
			return value.Value{}, fmt.Errorf("sequence element %d: %w", i, err)
		}
		elems[i] = e
	}
	return value.Sequence(elems...), nil
}

func decodeElementValue(raw any) (value.Value, error) {
	if arr, ok := raw.([]any); ok {
		return decodeSequence(arr)
	}
	obj, ok := asObject(raw)
	if !ok {
		return value.Value{}, fmt.Errorf("%w: expected item object, got %T", conferr.ErrMalformedDocument, raw)
	}
	return decodePrimitiveObject(obj)
}

// decodePrimitiveObject dispatches on an item's type tag.
func decodePrimitiveObject(obj *orderedmap.OrderedMap) (value.Value, error) {
	rawTag, _ := obj.Get(keyType)
	tag, ok := rawTag.(string)
	if !ok {
		return value.Value{}, fmt.Errorf("%w: item has no string 'type'", conferr.ErrMalformedDocument)
	}
	raw, ok := obj.Get(keyValue)
	if !ok {
		return value.Value{}, fmt.Errorf("%w: item has no 'value'", conferr.ErrMalformedDocument)
	}
	kind, err := value.ParseKind(tag)
	if err != nil {
		return value.Value{}, err
	}

	switch kind {
	case value.KindNull:
		return value.Null(), nil
	case value.KindString:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, badValue(tag, raw)
		}
		return value.String(s), nil
	case value.KindBoolean:
		b, ok := raw.(bool)
		if !ok {
			return value.Value{}, badValue(tag, raw)
		}
		return value.Bool(b), nil
	case value.KindFloat:
		f, ok := toFloat(raw)
		if !ok || math.IsInf(float64(float32(f)), 0) {
			return value.Value{}, badValue(tag, raw)
		}
		return value.Float(float32(f)), nil
	case value.KindDouble:
		f, ok := toFloat(raw)
		if !ok {
			return value.Value{}, badValue(tag, raw)
		}
		return value.Double(f), nil
	case value.KindInt:
		i, ok := toInt(raw)
		if !ok || i < math.MinInt32 || i > math.MaxInt32 {
			return value.Value{}, badValue(tag, raw)
		}
		return value.Int(int32(i)), nil
	case value.KindLong:
		i, ok := toInt(raw)
		if !ok {
			return value.Value{}, badValue(tag, raw)
		}
		return value.Long(i), nil
	}
	return value.Value{}, fmt.Errorf("%w %s", conferr.ErrUnrecognisedType, tag)
}

func badValue(tag string, raw any) error {
	return fmt.Errorf("%w: %v (%T) is not a valid %s", conferr.ErrMalformedDocument, raw, raw, tag)
}

// toFloat accepts the numeric forms found in parsed JSON and in documents
// built directly by a Writer. Non-finite results are rejected.
func toFloat(raw any) (float64, bool) {
	var f float64
	switch n := raw.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case int:
		f = float64(n)
	default:
		return 0, false
	}
	return f, !math.IsNaN(f) && !math.IsInf(f, 0)
}

// toInt is like toFloat but rejects numbers with a fractional part. Integer
// text is parsed exactly; exponent forms such as 1e3 are accepted only while
// they are exactly representable as a float64.
func toInt(raw any) (int64, bool) {
	switch n := raw.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, ok := toFloat(n)
		if !ok {
			return 0, false
		}
		return floatToInt(f)
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return floatToInt(n)
	}
	return 0, false
}

const maxExactFloatInt = 1 << 53

func floatToInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < -maxExactFloatInt || f > maxExactFloatInt {
		return 0, false
	}
	return int64(f), true
}
