// Package jsonconf encodes configuration trees as JSON documents and reads
// them back.
//
// Writer implements visitation.Visitor and accumulates the callbacks of one
// traversal into a document of nested nodes:
//
//	{"type": "<qualified type>", "body": {"<name>": <item or node>, ...}}
//
// Items carry their kind alongside the value so that numbers keep their
// width across JSON:
//
//	{"type": "Int", "value": 5}
//
// Sequences are written as a bare array of such items. Reader implements
// visitation.Visitable over a parsed document and resolves each node's type
// through a registry to attach property metadata to the elements it yields.
// Body order is preserved in both directions.
package jsonconf
