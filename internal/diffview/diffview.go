// Package diffview renders line diffs between a locale file and its cleaned
// form.
package diffview

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines shown around a change.
const DefaultContext = 2

// Line is one line of a rendered diff.
type Line struct {
	Op   diffpatch.Operation
	Text string
}

// Lines computes a line-level diff of before and after.
func Lines(before, after string) []Line {
	dmp := diffpatch.New()

	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []Line

	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		for _, l := range strings.Split(text, "\n") {
			out = append(out, Line{Op: d.Type, Text: l})
		}
	}

	return out
}

// Printer writes diffs. Colors follow color.NoColor.
type Printer struct {
	// Context is the number of unchanged lines kept around each change.
	Context int

	header *color.Color
	insert *color.Color
	remove *color.Color
	elided *color.Color
}

// NewPrinter returns a Printer with DefaultContext.
func NewPrinter() *Printer {
	return &Printer{
		Context: DefaultContext,
		header:  color.New(color.Bold),
		insert:  color.New(color.FgGreen),
		remove:  color.New(color.FgRed),
		elided:  color.New(color.FgCyan),
	}
}

// Print writes the diff of before and after for path to w. It reports
// whether there was any difference; nothing is written when there is none.
func (p *Printer) Print(w io.Writer, path string, before, after []byte) (bool, error) {
	if string(before) == string(after) {
		return false, nil
	}

	lines := Lines(string(before), string(after))
	keep := p.visible(lines)

	if _, err := p.header.Fprintf(w, "--- %s\n+++ %s (cleaned)\n", path, path); err != nil {
		return true, err
	}

	skipped := false

	for i, l := range lines {
		if !keep[i] {
			skipped = true
			continue
		}

		if skipped {
			if _, err := p.elided.Fprintln(w, "@@"); err != nil {
				return true, err
			}

			skipped = false
		}

		var err error

		switch l.Op {
		case diffpatch.DiffInsert:
			_, err = p.insert.Fprintln(w, "+"+l.Text)
		case diffpatch.DiffDelete:
			_, err = p.remove.Fprintln(w, "-"+l.Text)
		case diffpatch.DiffEqual:
			_, err = fmt.Fprintln(w, " "+l.Text)
		}

		if err != nil {
			return true, err
		}
	}

	return true, nil
}

// visible marks changed lines and the unchanged lines within Context of them.
func (p *Printer) visible(lines []Line) []bool {
	keep := make([]bool, len(lines))

	for i, l := range lines {
		if l.Op == diffpatch.DiffEqual {
			continue
		}

		lo := max(0, i-p.Context)
		hi := min(len(lines)-1, i+p.Context)

		for j := lo; j <= hi; j++ {
			keep[j] = true
		}
	}

	return keep
}
