// Package visitation defines the two dual protocols used to move a
// configuration tree in and out of an encoded form.
//
// A Visitor is pushed a fixed callback sequence describing a tree:
//
//	Begin(type) (Item | BeginSubConfiguration ... EndSubConfiguration)* End
//
// A Visitable is pulled from: it names its configuration type and yields its
// elements, each either an Item or a SubConfiguration wrapping another
// Visitable. Neither protocol knows how the tree is stored.
package visitation
