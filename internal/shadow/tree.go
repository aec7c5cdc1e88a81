package shadow

import (
	"gopkg.in/yaml.v3"

	"github.com/carlhashmi/translations-manager/internal/common"
	"github.com/carlhashmi/translations-manager/internal/document"
)

// Node mirrors one mapping key of the document.
type Node struct {
	// Path is the key path from the document root; empty for the root.
	Path []string
	// Key is the scalar naming this entry; nil for the synthetic root.
	Key *yaml.Node
	// Value is the node stored under Key.
	Value *yaml.Node
	// Mapping is Value when Value is a mapping.
	Mapping *yaml.Node
	// Alias is Value when Value is an alias.
	Alias *yaml.Node
	// Duplicate is set when the key occurs more than once in its mapping.
	// Such entries are left as written and have no children.
	Duplicate bool

	children map[string]*Node
	order    []string
}

func newNode(path []string) *Node {
	return &Node{
		Path:     path,
		children: make(map[string]*Node),
	}
}

// Name returns the last key of the node's path.
func (n *Node) Name() string {
	name, _ := common.Last(n.Path)
	return name
}

// Len returns the number of child keys.
func (n *Node) Len() int {
	return len(n.order)
}

// Child returns the child stored under key.
func (n *Node) Child(key string) (*Node, bool) {
	c, ok := n.children[key]
	return c, ok
}

// Children returns the child nodes in document order. The returned slice is
// a snapshot, so callers may remove children while iterating over it.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.order))
	for _, key := range n.order {
		out = append(out, n.children[key])
	}

	return out
}

// Remove drops the child stored under key and reports whether it existed.
func (n *Node) Remove(key string) bool {
	if _, ok := n.children[key]; !ok {
		return false
	}

	delete(n.children, key)

	for i, k := range n.order {
		if k == key {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}

	return true
}

// Scalar returns the value node when it is a scalar.
func (n *Node) Scalar() (*yaml.Node, bool) {
	if document.KindOf(n.Value) != document.KindScalar {
		return nil, false
	}

	return n.Value, true
}

func (n *Node) child(key string) *Node {
	if c, ok := n.children[key]; ok {
		return c
	}

	c := newNode(common.Append(n.Path, key))
	n.children[key] = c
	n.order = append(n.order, key)

	return c
}

// Tree is the shadow index of one YAML document.
type Tree struct {
	// Root is the synthetic root. When the document is a mapping, Root.Value
	// and Root.Mapping point at it so top-level keys have a parent container.
	Root *Node
	// Duplicates lists key paths that occurred more than once in a mapping.
	Duplicates [][]string
}

// NewTree returns a tree holding only the synthetic root.
func NewTree() *Tree {
	return &Tree{Root: newNode(nil)}
}

// Resolve returns the node for path, creating empty nodes for any missing
// segment on the way down.
func (t *Tree) Resolve(path []string) *Node {
	n := t.Root
	for _, key := range path {
		n = n.child(key)
	}

	return n
}

// Lookup returns the node for path without creating anything.
func (t *Tree) Lookup(path ...string) (*Node, bool) {
	n := t.Root
	for _, key := range path {
		c, ok := n.Child(key)
		if !ok {
			return nil, false
		}

		n = c
	}

	return n, true
}

// Walk calls fn for every node below the root in pre-order, children in
// document order.
func (t *Tree) Walk(fn func(*Node)) {
	var walk func(*Node)

	walk = func(n *Node) {
		for _, c := range n.Children() {
			fn(c)
			walk(c)
		}
	}

	walk(t.Root)
}

// Build indexes doc, a document node or a bare root node. It does not modify
// the document.
func Build(doc *yaml.Node) (*Tree, Anchors) {
	b := &builder{
		tree:    NewTree(),
		anchors: make(Anchors),
	}

	root := document.Root(doc)

	switch document.KindOf(root) {
	case document.KindMapping:
		b.tree.Root.Value = root
		b.tree.Root.Mapping = root
		b.anchors.Declare(root)
		b.walkMapping(root, nil)
	case document.KindSequence, document.KindDocument:
		b.scan(root)
	case document.KindScalar, document.KindAlias, document.KindUnknown:
	}

	return b.tree, b.anchors
}

type builder struct {
	tree    *Tree
	anchors Anchors
}

func (b *builder) walkMapping(m *yaml.Node, path []string) {
	seen := make(map[string]bool, len(m.Content)/2)

	for i := 0; i+1 < len(m.Content); i += 2 {
		key, value := m.Content[i], m.Content[i+1]
		p := common.Append(path, key.Value)

		n := b.tree.Resolve(p)
		n.Key = key
		n.Value = value
		n.Mapping = nil
		n.Alias = nil

		switch document.KindOf(value) {
		case document.KindMapping:
			n.Mapping = value
		case document.KindAlias:
			n.Alias = value
		case document.KindSequence, document.KindScalar, document.KindDocument, document.KindUnknown:
		}

		if seen[key.Value] {
			// All pairs under a repeated key stay as written, so the subtree
			// built from an earlier pair is dropped.
			b.tree.Duplicates = append(b.tree.Duplicates, p)
			n.Duplicate = true
			n.children = make(map[string]*Node)
			n.order = nil

			b.scan(value)

			continue
		}

		seen[key.Value] = true

		if n.Mapping != nil {
			b.anchors.Declare(value)
			b.walkMapping(value, p)
		} else {
			b.scan(value)
		}
	}
}

// scan registers anchors of mappings that are not reachable through mapping
// keys alone, such as list items. No shadow nodes are created for them.
func (b *builder) scan(n *yaml.Node) {
	switch document.KindOf(n) {
	case document.KindMapping:
		b.anchors.Declare(n)

		for _, c := range n.Content {
			b.scan(c)
		}
	case document.KindSequence, document.KindDocument:
		for _, c := range n.Content {
			b.scan(c)
		}
	case document.KindScalar, document.KindAlias, document.KindUnknown:
	}
}
