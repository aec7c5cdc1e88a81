package normalize

import (
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/carlhashmi/translations-manager/internal/common"
	"github.com/carlhashmi/translations-manager/internal/diagnostic"
	"github.com/carlhashmi/translations-manager/internal/shadow"
)

var (
	blankRun  = regexp.MustCompile(`\n{3,}`)
	edgeBlank = regexp.MustCompile(`\A\n\n|\n\n\z`)
)

// Value applies Unindent and then CollapseBlankLines.
func Value(s string) string {
	return CollapseBlankLines(Unindent(s))
}

// Unindent strips the smallest leading-space indentation shared by the
// non-empty lines of a multi-line string. Empty lines stay empty. Single-line
// strings, and strings whose lines after the first are all empty, are
// returned unchanged. Only spaces count as indentation.
func Unindent(s string) string {
	lines := strings.Split(s, "\n")
	if contentLines(lines) <= 1 {
		return s
	}

	indent := -1

	for _, line := range lines {
		if line == "" {
			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " "))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	if indent <= 0 {
		return s
	}

	prefix := strings.Repeat(" ", indent)
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}

// CollapseBlankLines caps runs of line breaks at two and then shortens a
// leading or trailing pair of line breaks to one.
func CollapseBlankLines(s string) string {
	s = blankRun.ReplaceAllString(s, "\n\n")
	return edgeBlank.ReplaceAllString(s, "\n")
}

// contentLines counts lines ignoring trailing empty ones.
func contentLines(lines []string) int {
	n := len(lines)
	for n > 0 && lines[n-1] == "" {
		n--
	}

	return n
}

// Options configures a normalization pass.
type Options struct {
	// Logger receives one debug record per rewritten value. Nil discards.
	Logger *slog.Logger
}

// Result summarizes a normalization pass.
type Result struct {
	// Rewritten is the number of values whose text changed.
	Rewritten int
	// Diagnostics holds one info entry per rewritten value.
	Diagnostics diagnostic.Diagnostics
}

// Run rewrites every scalar value indexed by tree in place.
func Run(tree *shadow.Tree, opts Options) Result {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var result Result

	tree.Walk(func(n *shadow.Node) {
		if n.Key == nil || n.Duplicate {
			return
		}

		scalar, ok := n.Scalar()
		if !ok {
			return
		}

		rewritten := Value(scalar.Value)
		if rewritten == scalar.Value {
			return
		}

		scalar.Value = rewritten

		path := common.KeyPath(n.Path)

		result.Rewritten++
		result.Diagnostics.AddInfo(diagnostic.CodeNormalizedValue, "whitespace normalized", "", path)
		log.Debug("normalize.rewritten", "key", path)
	})

	return result
}
