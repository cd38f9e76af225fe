package jsonconf

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/iancoleman/orderedmap"
	"github.com/specialistvlad/confjson/internal/conferr"
	"github.com/specialistvlad/confjson/internal/ctxlog"
	"github.com/specialistvlad/confjson/internal/visitation"
)

// frame is one level of the writer's stack. Every open node owns two
// frames: the wrapper holding its "type" (and, for nested nodes, the name it
// is attached under) and the body accumulating its elements.
type frame struct {
	name   string
	fields *orderedmap.OrderedMap
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithStrictNames makes the writer reject an element name already written
// under the same node instead of overwriting it.
func WithStrictNames() WriterOption {
	return func(w *Writer) { w.strict = true }
}

// Writer is a visitation.Visitor that builds an encoded document. It can be
// reused for any number of sequential traversals but must not be shared
// between concurrent ones.
type Writer struct {
	logger *slog.Logger
	strict bool
	stack  []frame
	result *orderedmap.OrderedMap
}

var _ visitation.Visitor = (*Writer)(nil)

// NewWriter creates a Writer logging through the context's logger.
func NewWriter(ctx context.Context, opts ...WriterOption) *Writer {
	w := &Writer{logger: ctxlog.FromContext(ctx)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Begin starts a traversal of a root configuration, discarding any previous
// result or unfinished traversal.
func (w *Writer) Begin(typeName string) error {
	w.result = nil
	w.reset()
	w.pushNode("", typeName)
	w.logger.Debug("Writer traversal started.", "type", typeName)
	return nil
}

// Item encodes v and records it under name in the open node.
func (w *Writer) Item(name string, v any, _ *visitation.Metadata) error {
	if len(w.stack) == 0 {
		return w.outOfSequence("Item")
	}
	encoded, err := encodeItem(v)
	if err != nil {
		w.abandon()
		return fmt.Errorf("item '%s': %w", name, err)
	}
	if err := w.checkName(name); err != nil {
		w.abandon()
		return err
	}
	w.top().Set(name, encoded)
	return nil
}

// BeginSubConfiguration opens a nested node that is attached under name when
// it is closed.
func (w *Writer) BeginSubConfiguration(name, typeName string, _ *visitation.Metadata) error {
	if len(w.stack) == 0 {
		return w.outOfSequence("BeginSubConfiguration")
	}
	if err := w.checkName(name); err != nil {
		w.abandon()
		return err
	}
	w.pushNode(name, typeName)
	return nil
}

// EndSubConfiguration closes the innermost nested node.
func (w *Writer) EndSubConfiguration() error {
	if len(w.stack) < 4 {
		w.abandon()
		return w.outOfSequence("EndSubConfiguration")
	}
	node, name := w.popNode()
	w.top().Set(name, node)
	return nil
}

// End closes the root node and stores the finished document.
func (w *Writer) End() error {
	if len(w.stack) != 2 {
		w.abandon()
		return w.outOfSequence("End")
	}
	node, _ := w.popNode()
	w.result = node
	w.logger.Debug("Writer traversal finished.", "elements", len(bodyOf(node).Keys()))
	return nil
}

// Result returns a copy of the document produced by the last completed
// traversal. Changing the copy does not affect the writer.
func (w *Writer) Result() (*orderedmap.OrderedMap, error) {
	if w.result == nil {
		return nil, conferr.ErrNotReady
	}
	return cloneNode(w.result).(*orderedmap.OrderedMap), nil
}

// MarshalJSON renders the finished document as compact JSON.
func (w *Writer) MarshalJSON() ([]byte, error) {
	if w.result == nil {
		return nil, conferr.ErrNotReady
	}
	return json.Marshal(w.result)
}

// String returns the JSON text of the finished document, or a placeholder
// when there is none.
func (w *Writer) String() string {
	b, err := w.MarshalJSON()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(b)
}

func (w *Writer) pushNode(name, typeName string) {
	wrapper := orderedmap.New()
	wrapper.Set(keyType, typeName)
	w.stack = append(w.stack, frame{name: name, fields: wrapper}, frame{fields: orderedmap.New()})
}

// popNode merges the top two frames into a finished node.
func (w *Writer) popNode() (*orderedmap.OrderedMap, string) {
	n := len(w.stack)
	body, wrapper := w.stack[n-1], w.stack[n-2]
	wrapper.fields.Set(keyBody, body.fields)
	clear(w.stack[n-2:])
	w.stack = w.stack[:n-2]
	return wrapper.fields, wrapper.name
}

func (w *Writer) top() *orderedmap.OrderedMap {
	return w.stack[len(w.stack)-1].fields
}

func (w *Writer) checkName(name string) error {
	if !w.strict {
		return nil
	}
	if _, exists := w.top().Get(name); exists {
		return fmt.Errorf("%w: '%s' written twice", conferr.ErrDuplicateElement, name)
	}
	return nil
}

func (w *Writer) reset() {
	clear(w.stack)
	w.stack = w.stack[:0]
}

// abandon drops an unfinished traversal so nothing built so far can be
// observed. Later callbacks fail until the next Begin.
func (w *Writer) abandon() {
	if len(w.stack) > 0 {
		w.logger.Debug("Writer traversal abandoned.", "depth", len(w.stack)/2)
	}
	w.reset()
}

func (w *Writer) outOfSequence(call string) error {
	return fmt.Errorf("%w: %s called without a matching open configuration", conferr.ErrInvalidSequence, call)
}

func bodyOf(node *orderedmap.OrderedMap) *orderedmap.OrderedMap {
	raw, _ := node.Get(keyBody)
	body, _ := asObject(raw)
	return body
}
