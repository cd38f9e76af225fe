// Package registry maps qualified configuration type names to their
// descriptors.
//
// A Type lists the properties a configuration declares, each with the
// metadata that readers attach to decoded elements. The registry is populated
// when configuration types are defined, either in Go via Register or from
// HCL manifests through the manifest package, and is then validated once so
// that nested type references and default values are known to be sound
// before any document is decoded.
package registry
