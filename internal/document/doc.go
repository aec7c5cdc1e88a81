// Package document adapts gopkg.in/yaml.v3 nodes to the node model used by
// the locale cleaner.
//
// A parsed locale file is a stream of YAML documents, each a tree of
// *yaml.Node values. The cleaner never builds nodes of its own; it only
// removes key/value pairs from mappings and rewrites scalar text, so this
// package exposes exactly that surface:
//
//   - Parse and Encode for whole streams
//   - Kind, an explicit enumeration of node kinds used for switch dispatch
//   - DeletePair for identity-based removal of a mapping entry
//   - AliasName for the anchor an alias points at
//
// Encoding never wraps long lines: the yaml.v3 emitter starts with an
// unbounded line width, so translation strings stay on one line.
package document
