package jsonconf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/iancoleman/orderedmap"
	"github.com/specialistvlad/confjson/internal/conferr"
)

// ParseOption configures ParseReader.
type ParseOption func(*parser)

// RejectDuplicateNames makes parsing fail with conferr.ErrDuplicateElement
// when an object repeats a key. By default the last occurrence wins and keeps
// the position of the first.
func RejectDuplicateNames() ParseOption {
	return func(p *parser) { p.rejectDuplicates = true }
}

// parser reads JSON text token by token into ordered objects. Numbers stay
// json.Number so that 64-bit integers survive exactly.
type parser struct {
	dec              *json.Decoder
	rejectDuplicates bool
}

func parseDocument(data []byte, opts ...ParseOption) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	p := &parser{dec: dec}
	for _, opt := range opts {
		opt(p)
	}

	doc, err := p.value()
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after the document", conferr.ErrMalformedDocument)
	}
	return doc, nil
}

func (p *parser) token() (json.Token, error) {
	tok, err := p.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w: %v", conferr.ErrMalformedDocument, err)
	}
	return tok, nil
}

// value returns a string, json.Number, bool, nil, []any or
// *orderedmap.OrderedMap.
func (p *parser) value() (any, error) {
	tok, err := p.token()
	if err != nil {
		return nil, err
	}
	switch tok {
	case json.Delim('{'):
		return p.object()
	case json.Delim('['):
		return p.array()
	}
	return tok, nil
}

func (p *parser) object() (*orderedmap.OrderedMap, error) {
	obj := orderedmap.New()
	for p.dec.More() {
		tok, err := p.token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key %v is not a string", conferr.ErrMalformedDocument, tok)
		}
		if _, exists := obj.Get(key); exists && p.rejectDuplicates {
			return nil, fmt.Errorf("%w: key '%s' appears more than once", conferr.ErrDuplicateElement, key)
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	if _, err := p.token(); err != nil { // '}'
		return nil, err
	}
	return obj, nil
}

func (p *parser) array() ([]any, error) {
	arr := []any{}
	for p.dec.More() {
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	if _, err := p.token(); err != nil { // ']'
		return nil, err
	}
	return arr, nil
}

// cloneNode deep-copies the objects and arrays of an encoded document.
// Scalars are immutable and shared.
func cloneNode(raw any) any {
	switch n := raw.(type) {
	case *orderedmap.OrderedMap:
		out := orderedmap.New()
		for _, k := range n.Keys() {
			v, _ := n.Get(k)
			out.Set(k, cloneNode(v))
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			out[i] = cloneNode(e)
		}
		return out
	}
	return raw
}
