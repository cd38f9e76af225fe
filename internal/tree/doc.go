// Package tree is a generic, format-agnostic in-memory configuration model.
//
// A Configuration is a qualified type name plus an ordered list of entries,
// each either a typed value or a nested Configuration. Walk drives any
// visitation.Visitor over a tree and Build rebuilds a tree from any
// visitation.Visitable, which makes the package the bridge between
// application code and the encoders in jsonconf. Decode binds a tree onto
// tagged Go structs.
package tree
