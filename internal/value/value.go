package value

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/confjson/internal/conferr"
)

// Value is an immutable typed primitive or a sequence of them. The zero Value
// is Null.
type Value struct {
	kind Kind
	str  string
	b    bool
	i    int64
	f    float64
	seq  []Value
}

// Null returns the absent value.
func Null() Value { return Value{} }

// String returns a String value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns a Boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Int returns a 32-bit integer value.
func Int(i int32) Value { return Value{kind: KindInt, i: int64(i)} }

// Long returns a 64-bit integer value.
func Long(i int64) Value { return Value{kind: KindLong, i: i} }

// Float returns a single precision floating-point value.
func Float(f float32) Value { return Value{kind: KindFloat, f: float64(f)} }

// Double returns a double precision floating-point value.
func Double(f float64) Value { return Value{kind: KindDouble, f: f} }

// Sequence returns an ordered sequence of values. The slice is copied.
func Sequence(elems ...Value) Value {
	seq := make([]Value, len(elems))
	copy(seq, elems)
	return Value{kind: KindSequence, seq: seq}
}

// Validate reports conferr.ErrUnsupportedType when v, or any element of a
// Sequence, is a NaN or infinite number.
func (v Value) Validate() error {
	switch v.kind {
	case KindFloat, KindDouble:
		return checkFinite(v.f, v.Interface())
	case KindSequence:
		for i, e := range v.seq {
			if err := e.Validate(); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
	}
	return nil
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the absent value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string held by v.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.str, nil
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBoolean {
		return false, v.mismatch(KindBoolean)
	}
	return v.b, nil
}

// AsInt64 returns the integer held by an Int or Long value.
func (v Value) AsInt64() (int64, error) {
	if v.kind != KindInt && v.kind != KindLong {
		return 0, v.mismatch(KindLong)
	}
	return v.i, nil
}

// AsFloat64 returns the number held by a Float or Double value.
func (v Value) AsFloat64() (float64, error) {
	if v.kind != KindFloat && v.kind != KindDouble {
		return 0, v.mismatch(KindDouble)
	}
	return v.f, nil
}

// Elements returns a copy of the values in a Sequence.
func (v Value) Elements() ([]Value, error) {
	if v.kind != KindSequence {
		return nil, v.mismatch(KindSequence)
	}
	out := make([]Value, len(v.seq))
	copy(out, v.seq)
	return out, nil
}

// Len returns the number of elements of a Sequence, 0 otherwise.
func (v Value) Len() int {
	return len(v.seq)
}

// Interface returns the native Go form of v: nil, string, bool, int32, int64,
// float32, float64 or []any for sequences.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindString:
		return v.str
	case KindBoolean:
		return v.b
	case KindInt:
		return int32(v.i)
	case KindLong:
		return v.i
	case KindFloat:
		return float32(v.f)
	case KindDouble:
		return v.f
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, e := range v.seq {
			out[i] = e.Interface()
		}
		return out
	}
	panic(fmt.Sprintf("value: unknown kind %d", v.kind))
}

// Equal reports whether v and o hold the same kind and contents.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == o.str
	case KindBoolean:
		return v.b == o.b
	case KindInt, KindLong:
		return v.i == o.i
	case KindFloat, KindDouble:
		return v.f == o.f
	case KindSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders v for logs and test failures, e.g. Int(5) or
// Sequence[String("a"), null].
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return fmt.Sprintf("String(%q)", v.str)
	case KindSequence:
		parts := make([]string, len(v.seq))
		for i, e := range v.seq {
			parts[i] = e.String()
		}
		return "Sequence[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%s(%v)", v.kind.Tag(), v.Interface())
	}
}

func (v Value) mismatch(want Kind) error {
	return fmt.Errorf("%w: value is %s, not %s", conferr.ErrTypeMismatch, v.kind, want)
}
