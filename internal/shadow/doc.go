// Package shadow builds the key-path index the cleaner works on.
//
// A Tree mirrors every mapping key of a parsed YAML document with a Node
// that points back at the document nodes involved: the key scalar, the value,
// and, depending on the value's kind, the same value again as Mapping or
// Alias. The index never copies document content; deleting through it
// mutates the document that will later be serialized.
//
// Anchors maps anchor names to the mapping nodes that declare them. It is
// built by the same walk and only shrinks afterwards, as groups are pruned.
//
// Both structures belong to a single clean operation and are discarded once
// the document has been serialized.
package shadow
