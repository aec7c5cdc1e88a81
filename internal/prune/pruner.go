package prune

import (
	"io"
	"log/slog"

	"github.com/carlhashmi/translations-manager/internal/common"
	"github.com/carlhashmi/translations-manager/internal/diagnostic"
	"github.com/carlhashmi/translations-manager/internal/document"
	"github.com/carlhashmi/translations-manager/internal/shadow"
)

// Options configures a pruning pass.
type Options struct {
	// Logger receives one debug record per removed key. Nil discards.
	Logger *slog.Logger
}

// Result summarizes a pruning pass.
type Result struct {
	// Removed is the number of deleted keys, not counting keys deleted
	// implicitly together with an enclosing group.
	Removed int
	// Diagnostics holds one info entry per deleted key.
	Diagnostics diagnostic.Diagnostics
}

// Run prunes tree and the document it indexes. Deleted groups retract their
// anchors from anchors.
func Run(tree *shadow.Tree, anchors shadow.Anchors, opts Options) Result {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	p := &pruner{
		anchors: anchors,
		log:     log,
	}

	p.visit(tree.Root)

	return p.result
}

type pruner struct {
	anchors shadow.Anchors
	log     *slog.Logger
	result  Result
}

func (p *pruner) visit(parent *shadow.Node) {
	for _, child := range parent.Children() {
		p.visit(child)

		if reason := p.classify(child); reason != ReasonAlive {
			p.remove(parent, child, reason)
		}
	}
}

// classify decides whether n is dead. Only nodes that stand for a single
// real mapping entry can be removed.
func (p *pruner) classify(n *shadow.Node) Reason {
	if n.Key == nil || n.Duplicate {
		return ReasonAlive
	}

	switch document.KindOf(n.Value) {
	case document.KindMapping:
		if n.Len() == 0 {
			return ReasonEmptyGroup
		}
	case document.KindScalar:
		if n.Value.Value == "" {
			return ReasonEmptyValue
		}
	case document.KindAlias:
		if !p.anchors.Resolves(n.Alias) {
			return ReasonDanglingAlias
		}
	case document.KindSequence, document.KindDocument, document.KindUnknown:
	}

	return ReasonAlive
}

func (p *pruner) remove(parent, child *shadow.Node, reason Reason) {
	document.DeletePair(parent.Mapping, child.Key, child.Value)
	parent.Remove(child.Name())

	if reason == ReasonEmptyGroup {
		p.anchors.Retract(child.Mapping)
	}

	path := common.KeyPath(child.Path)

	p.result.Removed++
	p.result.Diagnostics.AddInfo(reason.Code(), reason.String(), "", path)
	p.log.Debug("prune.removed", "key", path, "reason", reason.Code())
}
