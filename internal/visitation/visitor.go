package visitation

import "iter"

// Visitor receives the description of a configuration tree, one callback at a
// time. Implementations return conferr.ErrInvalidSequence for callbacks that
// arrive out of order.
type Visitor interface {
	// Begin declares the root configuration's type and starts a traversal.
	Begin(typeName string) error
	// Item records a scalar or sequence valued element under the open node.
	Item(name string, v any, md *Metadata) error
	// BeginSubConfiguration opens a nested node under the open node.
	BeginSubConfiguration(name, typeName string, md *Metadata) error
	// EndSubConfiguration closes the most recently opened nested node.
	EndSubConfiguration() error
	// End closes the root node and finishes the traversal.
	End() error
}

// Visitable exposes an encoded configuration so that a builder can rebuild
// it. Each call to Elements yields a fresh sequence in stored order; a
// non-nil error ends the sequence.
type Visitable interface {
	ConfigurationType() string
	Elements() iter.Seq2[Element, error]
}
