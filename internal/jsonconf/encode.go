package jsonconf

import (
	"github.com/iancoleman/orderedmap"
	"github.com/specialistvlad/confjson/internal/value"
)

const (
	keyType  = "type"
	keyBody  = "body"
	keyValue = "value"
)

// encodeItem converts a runtime value into its encoded item form.
func encodeItem(v any) (any, error) {
	val, err := value.FromGo(v)
	if err != nil {
		return nil, err
	}
	return encodeValue(val), nil
}

// encodeValue returns a tagged item object for scalars and an array of
// encoded items for sequences.
func encodeValue(v value.Value) any {
	if v.Kind() == value.KindSequence {
		elems, _ := v.Elements()
		arr := make([]any, len(elems))
		for i, e := range elems {
			arr[i] = encodeValue(e)
		}
		return arr
	}
	if !v.Kind().IsScalar() {
		panic("jsonconf: unhandled value kind " + v.Kind().String())
	}
	item := orderedmap.New()
	item.Set(keyType, v.Kind().Tag())
	item.Set(keyValue, v.Interface())
	return item
}
