// Package normalize rewrites the whitespace of translation strings.
//
// Multi-line values lose the indentation shared by all of their non-empty
// lines, runs of blank lines shrink to a single blank line, and a blank line
// at the very start or end of a value is dropped. The rewrite only touches
// scalar values of surviving keys; the document structure is unchanged.
package normalize
