package cleaner

import (
	"bytes"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/carlhashmi/translations-manager/internal/common"
	"github.com/carlhashmi/translations-manager/internal/diagnostic"
	"github.com/carlhashmi/translations-manager/internal/document"
	"github.com/carlhashmi/translations-manager/internal/logger"
	"github.com/carlhashmi/translations-manager/internal/normalize"
	"github.com/carlhashmi/translations-manager/internal/prune"
	"github.com/carlhashmi/translations-manager/internal/shadow"
)

// Options configures a clean operation.
type Options struct {
	// Indent is the number of spaces per nesting level in the output.
	Indent int
	// Logger receives debug records for every change; nil uses logger.L().
	Logger *slog.Logger
}

// DefaultOptions returns the default clean options.
func DefaultOptions() Options {
	return Options{Indent: document.DefaultIndent}
}

// Report describes what a clean operation changed.
type Report struct {
	// Path is the cleaned file, empty for in-memory input.
	Path string
	// Documents is the number of YAML documents in the stream.
	Documents int
	// Removed is the number of deleted keys.
	Removed int
	// Rewritten is the number of translations whose whitespace changed.
	Rewritten int
	// Changed reports whether the output differs from the input bytes.
	Changed bool
	// Source is the input that was cleaned.
	Source []byte
	// Diagnostics lists every change and warning.
	Diagnostics diagnostic.Diagnostics
}

// Attach records path as the source of the report and its diagnostics.
func (r *Report) Attach(path string) {
	r.Path = path
	r.Diagnostics.SetFile(path)
}

// Clean returns src with dead keys removed and translations normalized.
// src itself is never modified.
func Clean(src []byte, opts Options) ([]byte, *Report, error) {
	log := opts.Logger
	if log == nil {
		log = logger.L()
	}

	docs, err := document.Parse(src)
	if err != nil {
		return nil, nil, &Error{Op: "parse", Err: err}
	}

	report := &Report{Documents: len(docs)}

	for _, doc := range docs {
		cleanDocument(doc, log, report)
	}

	out, err := document.Encode(docs, document.EncodeOptions{Indent: opts.Indent})
	if err != nil {
		return nil, nil, &Error{Op: "encode", Err: err}
	}

	// Aliases inside lists and repeated keys are not pruned and may still
	// name a removed anchor.
	if _, err := document.Parse(out); err != nil {
		return nil, nil, &Error{Op: "verify", Err: err}
	}

	report.Source = src
	report.Changed = !bytes.Equal(src, out)

	return out, report, nil
}

// cleanDocument prunes and normalizes one document in place. The shadow tree
// and anchor registry are private to this call.
func cleanDocument(doc *yaml.Node, log *slog.Logger, report *Report) {
	tree, anchors := shadow.Build(doc)

	log.Debug("cleaner.indexed", "keys", tree.Root.Len(), "anchors", anchors.Names())

	for _, dup := range tree.Duplicates {
		msg := "key defined more than once; left unchanged"
		if n, ok := tree.Lookup(dup...); ok && n.Key != nil {
			msg = fmt.Sprintf("key defined more than once (again at line %d); left unchanged", n.Key.Line)
		}

		report.Diagnostics.AddWarning(diagnostic.CodeDuplicateKey, msg, "", common.KeyPath(dup))
	}

	pruned := prune.Run(tree, anchors, prune.Options{Logger: log})
	report.Removed += pruned.Removed
	report.Diagnostics.Merge(pruned.Diagnostics)

	normalized := normalize.Run(tree, normalize.Options{Logger: log})
	report.Rewritten += normalized.Rewritten
	report.Diagnostics.Merge(normalized.Diagnostics)
}
