package document

import "gopkg.in/yaml.v3"

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind is the kind of a document node.
type Kind int

const (
	KindUnknown Kind = iota // nil node or a kind yaml.v3 added later
	KindDocument
	KindMapping
	KindSequence
	KindScalar
	KindAlias
)

// KindOf returns the Kind of n. A nil node is KindUnknown.
func KindOf(n *yaml.Node) Kind {
	if n == nil {
		return KindUnknown
	}

	switch n.Kind {
	case yaml.DocumentNode:
		return KindDocument
	case yaml.MappingNode:
		return KindMapping
	case yaml.SequenceNode:
		return KindSequence
	case yaml.ScalarNode:
		return KindScalar
	case yaml.AliasNode:
		return KindAlias
	default:
		return KindUnknown
	}
}
