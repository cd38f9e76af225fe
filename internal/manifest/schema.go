package manifest

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Configurations []*configurationBlock `hcl:"configuration,block"`
	Remain         hcl.Body              `hcl:",remain"`
}

// configurationBlock represents a `configuration` block declaring one type.
type configurationBlock struct {
	Name        string           `hcl:"name,label"`
	Description string           `hcl:"description,optional"`
	Properties  []*propertyBlock `hcl:"property,block"`
}

// propertyBlock represents a single `property` within a configuration type.
// Items declare a type, sub-configurations name their nested configuration
// type instead.
type propertyBlock struct {
	Name          string         `hcl:"name,label"`
	Type          hcl.Expression `hcl:"type,optional"`
	Description   string         `hcl:"description,optional"`
	Default       hcl.Expression `hcl:"default,optional"`
	Optional      bool           `hcl:"optional,optional"`
	Configuration string         `hcl:"configuration,optional"`
}
