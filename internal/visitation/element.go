package visitation

import "github.com/specialistvlad/confjson/internal/value"

// Element is either an *Item or a *SubConfiguration.
type Element interface {
	ElementName() string
	ElementMetadata() *Metadata
	isElement()
}

// Item is a decoded scalar or sequence element.
type Item struct {
	Name     string
	Value    value.Value
	Metadata *Metadata
}

func (i *Item) ElementName() string        { return i.Name }
func (i *Item) ElementMetadata() *Metadata { return i.Metadata }
func (*Item) isElement()                   {}

// SubConfiguration is a nested configuration element.
type SubConfiguration struct {
	Name          string
	Configuration Visitable
	Metadata      *Metadata
}

func (s *SubConfiguration) ElementName() string        { return s.Name }
func (s *SubConfiguration) ElementMetadata() *Metadata { return s.Metadata }
func (*SubConfiguration) isElement()                   {}
