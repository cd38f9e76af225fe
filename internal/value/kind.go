package value

import (
	"fmt"

	"github.com/specialistvlad/confjson/internal/conferr"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindBoolean
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindSequence
)

var kindTags = [...]string{
	KindNull:     "null",
	KindString:   "String",
	KindBoolean:  "Boolean",
	KindInt:      "Int",
	KindLong:     "Long",
	KindFloat:    "Float",
	KindDouble:   "Double",
	KindSequence: "Sequence",
}

// Tag returns the wire tag written in the "type" field of an encoded item.
// Sequences are encoded as bare arrays and never carry a tag on the wire.
func (k Kind) Tag() string {
	if int(k) < len(kindTags) {
		return kindTags[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) String() string { return k.Tag() }

// IsScalar reports whether values of this kind encode as a tagged item.
func (k Kind) IsScalar() bool {
	return k <= KindDouble
}

// ParseKind maps a wire tag back to its scalar Kind.
func ParseKind(tag string) (Kind, error) {
	for k := KindNull; k <= KindDouble; k++ {
		if kindTags[k] == tag {
			return k, nil
		}
	}
	return KindNull, fmt.Errorf("%w %s", conferr.ErrUnrecognisedType, tag)
}
