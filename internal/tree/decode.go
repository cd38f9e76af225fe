package tree

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode binds c onto out, a pointer to a struct whose fields carry `conf`
// tags naming entries. Nested structs receive sub-configurations.
func Decode(c *Configuration, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "conf",
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(c.AsMap()); err != nil {
		return fmt.Errorf("failed to decode configuration '%s': %w", c.Type, err)
	}
	return nil
}
