// Package prune deletes dead keys from a shadow-indexed YAML document.
//
// A key is dead when its translation is the empty string, when its group has
// no surviving keys, or when it is an alias to an anchor whose group has
// been removed. Pruning is a single post-order pass: children are settled
// before their parent is examined, so emptiness cascades upward within the
// same pass.
//
// An alias is judged against the anchors still registered when it is
// visited. A group removed later in the pass does not revisit aliases that
// were already kept.
package prune
