package jsonconf

import (
	"fmt"
	"iter"

	"github.com/iancoleman/orderedmap"
	"github.com/specialistvlad/confjson/internal/conferr"
	"github.com/specialistvlad/confjson/internal/registry"
	"github.com/specialistvlad/confjson/internal/visitation"
)

// Reader is a visitation.Visitable over one encoded node. It never modifies
// the document and is safe for concurrent use.
type Reader struct {
	typ   *registry.Type
	body  *orderedmap.OrderedMap
	types registry.Resolver
}

var _ visitation.Visitable = (*Reader)(nil)

// NewReader wraps an encoded node, resolving its type through types.
func NewReader(node *orderedmap.OrderedMap, types registry.Resolver) (*Reader, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: nil node", conferr.ErrMalformedDocument)
	}
	rawType, _ := node.Get(keyType)
	typeName, ok := rawType.(string)
	if !ok {
		return nil, fmt.Errorf("%w: node has no string 'type'", conferr.ErrMalformedDocument)
	}
	rawBody, _ := node.Get(keyBody)
	body, ok := asObject(rawBody)
	if !ok {
		return nil, fmt.Errorf("%w: node '%s' has no object 'body'", conferr.ErrMalformedDocument, typeName)
	}
	t, err := types.Resolve(typeName)
	if err != nil {
		return nil, err
	}
	return &Reader{typ: t, body: body, types: types}, nil
}

// ParseReader parses JSON text and wraps its root node. Numbers keep their
// exact text until an item is decoded, so Long values round trip losslessly.
func ParseReader(data []byte, types registry.Resolver, opts ...ParseOption) (*Reader, error) {
	doc, err := parseDocument(data, opts...)
	if err != nil {
		return nil, err
	}
	node, ok := asObject(doc)
	if !ok {
		return nil, fmt.Errorf("%w: document root is %T, not an object", conferr.ErrMalformedDocument, doc)
	}
	return NewReader(node, types)
}

// ConfigurationType returns the qualified name of the node's type.
func (r *Reader) ConfigurationType() string {
	return r.typ.Name
}

// Type returns the resolved descriptor of the node's type.
func (r *Reader) Type() *registry.Type {
	return r.typ
}

// Elements yields the node's body in stored order. Nested nodes are exposed
// as sub-configurations wrapping a new Reader; everything else is decoded
// into an Item. Decoding is lazy: each element is decoded when reached.
func (r *Reader) Elements() iter.Seq2[visitation.Element, error] {
	return func(yield func(visitation.Element, error) bool) {
		for _, name := range r.body.Keys() {
			el, err := r.element(name)
			if err != nil {
				yield(nil, fmt.Errorf("element '%s' of '%s': %w", name, r.typ.Name, err))
				return
			}
			if !yield(el, nil) {
				return
			}
		}
	}
}

func (r *Reader) element(name string) (visitation.Element, error) {
	prop, err := r.typ.Property(name)
	if err != nil {
		return nil, err
	}
	raw, _ := r.body.Get(name)

	if arr, ok := raw.([]any); ok {
		seq, err := decodeSequence(arr)
		if err != nil {
			return nil, err
		}
		return &visitation.Item{Name: name, Value: seq, Metadata: prop.Metadata}, nil
	}

	obj, ok := asObject(raw)
	if !ok {
		return nil, fmt.Errorf("%w: expected node or item object, got %T", conferr.ErrMalformedDocument, raw)
	}
	if _, isNode := obj.Get(keyBody); isNode {
		child, err := NewReader(obj, r.types)
		if err != nil {
			return nil, err
		}
		return &visitation.SubConfiguration{Name: name, Configuration: child, Metadata: prop.Metadata}, nil
	}
	if _, isItem := obj.Get(keyValue); !isItem {
		return nil, fmt.Errorf("%w: object has neither 'body' nor 'value'", conferr.ErrMalformedDocument)
	}
	v, err := decodePrimitiveObject(obj)
	if err != nil {
		return nil, err
	}
	return &visitation.Item{Name: name, Value: v, Metadata: prop.Metadata}, nil
}
