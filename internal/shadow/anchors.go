package shadow

import (
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/carlhashmi/translations-manager/internal/document"
)

// Anchors maps anchor names to the live mapping nodes declaring them, in
// document order. A name may be declared more than once; every alias binds
// to the declaration preceding it.
type Anchors map[string][]*yaml.Node

// Declare registers n under its anchor name, if it has one.
func (a Anchors) Declare(n *yaml.Node) {
	if document.KindOf(n) != document.KindMapping || n.Anchor == "" {
		return
	}

	a[n.Anchor] = append(a[n.Anchor], n)
}

// Has reports whether any live container declares name.
func (a Anchors) Has(name string) bool {
	return len(a[name]) > 0
}

// Resolves reports whether alias still points at a live container. The
// check is by identity of the node the alias was bound to when parsed, so a
// later declaration of the same name does not keep it alive.
func (a Anchors) Resolves(alias *yaml.Node) bool {
	name := document.AliasName(alias)
	if name == "" {
		return false
	}

	if alias.Alias == nil {
		return a.Has(name)
	}

	return slices.Contains(a[name], alias.Alias)
}

// Retract removes the declaration made by n and reports whether it was
// registered. Other declarations of the same name stay registered.
func (a Anchors) Retract(n *yaml.Node) bool {
	if n == nil || n.Anchor == "" {
		return false
	}

	owners := a[n.Anchor]

	i := slices.Index(owners, n)
	if i < 0 {
		return false
	}

	owners = slices.Delete(owners, i, i+1)
	if len(owners) == 0 {
		delete(a, n.Anchor)
	} else {
		a[n.Anchor] = owners
	}

	return true
}

// Names returns the registered anchor names, sorted.
func (a Anchors) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
