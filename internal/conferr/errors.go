package conferr

import "errors"

var (
	// ErrInvalidSequence is returned when visitor callbacks arrive out of
	// protocol order.
	ErrInvalidSequence = errors.New("invalid visitor call sequence")

	// ErrNotReady is returned when a writer's result is requested before the
	// traversal has ended.
	ErrNotReady = errors.New("writer not ended")

	// ErrUnsupportedType is returned when a runtime value cannot be encoded.
	ErrUnsupportedType = errors.New("unsupported value type")

	// ErrUnrecognisedType is returned when a decoded item carries an unknown
	// kind tag.
	ErrUnrecognisedType = errors.New("unrecognised type")

	// ErrPropertyNotFound is returned when an encoded element has no matching
	// property on its configuration type.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrTypeResolution is returned when a qualified type name cannot be
	// resolved to a registered configuration type.
	ErrTypeResolution = errors.New("type resolution failure")

	// ErrMalformedDocument is returned when an encoded document does not have
	// the node or item shape.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrDuplicateElement is returned by strict writers when an element name
	// is written twice under the same node.
	ErrDuplicateElement = errors.New("duplicate element")

	// ErrTypeMismatch is returned when a value cannot be converted to the type
	// declared by its property.
	ErrTypeMismatch = errors.New("type mismatch")
)
