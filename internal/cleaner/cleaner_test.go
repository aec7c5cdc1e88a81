package cleaner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/carlhashmi/translations-manager/internal/diagnostic"
	"github.com/carlhashmi/translations-manager/internal/document"
)

const localeFixture = `en:
  common: &common
    hello: Hello
    goodbye: ""
    empty_group:
      orphan: ""
  errors: &errors
    missing: ""
    blank:
  inherited: *errors
  shared: *common
  messages:
    welcome: |2

        Welcome aboard,



        we are glad you are here.

    footer: "Line one\n\n\n\nLine two"
  list:
    - one
    - two
  long: Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam.
`

func clean(t *testing.T, src string) (string, *Report) {
	t.Helper()

	out, report, err := Clean([]byte(src), DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, report)

	return string(out), report
}

// valueAt returns the node stored under path in the first document of src.
func valueAt(t *testing.T, src string, path ...string) (*yaml.Node, bool) {
	t.Helper()

	docs, err := document.Parse([]byte(src))
	require.NoError(t, err)
	require.NotEmpty(t, docs)

	n := document.Root(docs[0])
	for _, key := range path {
		if document.KindOf(n) != document.KindMapping {
			return nil, false
		}

		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == key {
				next = n.Content[i+1]
			}
		}

		if next == nil {
			return nil, false
		}

		n = next
	}

	return n, true
}

func TestCleanEmptyValue(t *testing.T) {
	out, report := clean(t, "en:\n  common:\n    hello: \"Hi\"\n    goodbye: \"\"\n")

	assert.Equal(t, "en:\n  common:\n    hello: \"Hi\"\n", out)
	assert.Equal(t, 1, report.Removed)
	assert.True(t, report.Changed)
}

func TestCleanCascadingEmptyGroups(t *testing.T) {
	out, report := clean(t, "en:\n  common:\n    empty_group:\n      orphan: \"\"\n")

	assert.Equal(t, "{}\n", out)
	assert.Equal(t, 3, report.Diagnostics.Count(diagnostic.CodeEmptyGroup))
	assert.Equal(t, 1, report.Diagnostics.Count(diagnostic.CodeEmptyValue))
}

func TestCleanDanglingReference(t *testing.T) {
	out, report := clean(t, `en:
  base: &base
    a: ""
  derived: *base
  other: kept
`)

	assert.Equal(t, "en:\n  other: kept\n", out)
	assert.Equal(t, []diagnostic.Diagnostic{{
		Severity: diagnostic.DiagnosticInfo,
		Code:     diagnostic.CodeDanglingAlias,
		Message:  "reference to a removed anchor",
		KeyPath:  "en.derived",
	}}, report.Diagnostics.ByCode(diagnostic.CodeDanglingAlias))
}

func TestCleanDeindent(t *testing.T) {
	out, _ := clean(t, "en:\n  text: \"  line one\\n    line two\\n  line three\"\n")

	v, ok := valueAt(t, out, "en", "text")
	require.True(t, ok)
	assert.Equal(t, "line one\n  line two\nline three", v.Value)
}

func TestCleanBlankLines(t *testing.T) {
	out, report := clean(t, "en:\n  a: \"a\\n\\n\\n\\nb\"\n  b: \"\\n\\ntext\\n\\n\"\n")

	a, ok := valueAt(t, out, "en", "a")
	require.True(t, ok)
	assert.Equal(t, "a\n\nb", a.Value)

	b, ok := valueAt(t, out, "en", "b")
	require.True(t, ok)
	assert.Equal(t, "\ntext\n", b.Value)

	assert.Equal(t, 2, report.Rewritten)
}

func TestCleanFixture(t *testing.T) {
	out, report := clean(t, localeFixture)

	for _, path := range [][]string{
		{"en", "common", "goodbye"},
		{"en", "common", "empty_group"},
		{"en", "errors"},
		{"en", "inherited"},
	} {
		_, ok := valueAt(t, out, path...)
		assert.False(t, ok, strings.Join(path, "."))
	}

	shared, ok := valueAt(t, out, "en", "shared")
	require.True(t, ok)
	assert.Equal(t, document.KindAlias, document.KindOf(shared))

	welcome, ok := valueAt(t, out, "en", "messages", "welcome")
	require.True(t, ok)
	assert.Equal(t, "\nWelcome aboard,\n\nwe are glad you are here.\n", welcome.Value)

	footer, ok := valueAt(t, out, "en", "messages", "footer")
	require.True(t, ok)
	assert.Equal(t, "Line one\n\nLine two", footer.Value)

	assert.Contains(t, out, "  long: Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam.\n")

	assert.Equal(t, 7, report.Removed)
	assert.Equal(t, 2, report.Rewritten)
	assertClean(t, out)
}

func TestCleanIdempotent(t *testing.T) {
	first, _ := clean(t, localeFixture)
	second, report := clean(t, first)

	assert.Equal(t, first, second)
	assert.False(t, report.Changed)
	assert.Equal(t, 0, report.Removed)
	assert.Equal(t, 0, report.Rewritten)
}

func TestCleanStream(t *testing.T) {
	out, report := clean(t, "en:\n  a: \"\"\n  b: B\n---\nde:\n  a: A\n  b: \"\"\n")

	assert.Equal(t, "en:\n  b: B\n---\nde:\n  a: A\n", out)
	assert.Equal(t, 2, report.Documents)
	assert.Equal(t, 2, report.Removed)
}

func TestCleanAnchorsArePerDocument(t *testing.T) {
	// yaml.v3 resolves aliases per document, so the same anchor name may be
	// used independently in each document.
	out, _ := clean(t, "a: &x\n  k: v\nb: *x\n---\na: &x\n  k: \"\"\nb: *x\n")

	assert.Equal(t, "a: &x\n  k: v\nb: *x\n---\n{}\n", out)
}

func TestCleanEmptyInput(t *testing.T) {
	out, report := clean(t, "")

	assert.Empty(t, out)
	assert.Equal(t, 0, report.Documents)
	assert.False(t, report.Changed)
}

func TestCleanDuplicateKeyWarning(t *testing.T) {
	_, report := clean(t, "en:\n  hello: Hi\n  hello: Hallo\n")

	require.Len(t, report.Diagnostics.Warnings, 1)
	assert.Equal(t, diagnostic.CodeDuplicateKey, report.Diagnostics.Warnings[0].Code)
	assert.Equal(t, "en.hello", report.Diagnostics.Warnings[0].KeyPath)
	assert.Contains(t, report.Diagnostics.Warnings[0].Message, "line 3")
}

func TestCleanKeepsContentUnderDuplicateKeys(t *testing.T) {
	out, report := clean(t, "en:\n  g:\n    x: live\n  g: \"\"\n  other: \"\"\n")

	assert.Equal(t, "en:\n  g:\n    x: live\n  g: \"\"\n", out)
	assert.Equal(t, 1, report.Removed)
	assert.Equal(t, 1, report.Diagnostics.Count(diagnostic.CodeDuplicateKey))
}

func TestCleanRedeclaredAnchor(t *testing.T) {
	src := "a: &x\n  k: \"\"\nref: *x\nb: &x\n  k: v\n"

	out, report := clean(t, src)

	assert.Equal(t, "b: &x\n  k: v\n", out)
	assert.Equal(t, []string{"ref"}, func() []string {
		var paths []string
		for _, d := range report.Diagnostics.ByCode(diagnostic.CodeDanglingAlias) {
			paths = append(paths, d.KeyPath)
		}

		return paths
	}())
	assertClean(t, out)
}

func TestCleanRedeclaredAnchorProperties(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "earlier declaration removed", src: "a: &x\n  k: \"\"\nref: *x\nb: &x\n  k: v\nlater: *x\n"},
		{name: "later declaration removed", src: "a: &x\n  k: v\nref: *x\nb: &x\n  k: \"\"\nlater: *x\n"},
		{name: "both removed", src: "a: &x\n  k: \"\"\nref: *x\nb: &x\n  k: \"\"\nlater: *x\nkept: v\n"},
		{name: "nested redeclaration", src: "en:\n  a: &x\n    k: \"\"\n  ref: *x\n  b:\n    c: &x\n      k: v\n    ref: *x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := clean(t, tt.src)
			assertClean(t, out)

			again, report := clean(t, out)
			assert.Equal(t, out, again)
			assert.Equal(t, 0, report.Removed)
		})
	}
}

func TestCleanRefusesUnresolvableOutput(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "alias in a list", src: "a: &x\n  k: \"\"\nlist:\n  - *x\n"},
		{name: "alias under a repeated key", src: "a: &x\n  k: \"\"\nd: *x\nd: kept\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, report, err := Clean([]byte(tt.src), DefaultOptions())
			require.Error(t, err)

			var cerr *Error
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, "verify", cerr.Op)
			assert.Nil(t, out)
			assert.Nil(t, report)
		})
	}
}

func TestCleanLeadingBlankLinesInLiteral(t *testing.T) {
	// The encoder may pick a different block header on the first pass than
	// on later ones; the second pass is a fixed point.
	first, _ := clean(t, "a: |\n\n\n    text\n")
	second, _ := clean(t, first)
	third, report := clean(t, second)

	assert.Equal(t, second, third)
	assert.False(t, report.Changed)

	v, ok := valueAt(t, second, "a")
	require.True(t, ok)
	assert.Contains(t, v.Value, "text")
	assert.False(t, strings.HasPrefix(v.Value, "\n\n"))
}

func TestCleanIndentOption(t *testing.T) {
	out, _, err := Clean([]byte("en:\n  common:\n    hello: Hi\n"), Options{Indent: 4})
	require.NoError(t, err)

	assert.Equal(t, "en:\n    common:\n        hello: Hi\n", string(out))
}

func TestCleanDoesNotModifyInput(t *testing.T) {
	src := []byte("en:\n  a: \"\"\n  b: \"  x\\n  y\"\n")
	orig := append([]byte(nil), src...)

	_, report, err := Clean(src, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, orig, src)
	assert.Equal(t, orig, report.Source)
}

func TestCleanParseError(t *testing.T) {
	out, report, err := Clean([]byte("en:\n  a: [broken\n"), DefaultOptions())
	require.Error(t, err)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "parse", cerr.Op)
	assert.Nil(t, out)
	assert.Nil(t, report)
}

// assertClean checks the properties every cleaned document must have.
func assertClean(t *testing.T, out string) {
	t.Helper()

	docs, err := document.Parse([]byte(out))
	require.NoError(t, err)

	for _, doc := range docs {
		anchors := make(map[string]bool)

		var collect func(n *yaml.Node)
		collect = func(n *yaml.Node) {
			if document.KindOf(n) == document.KindMapping && n.Anchor != "" {
				anchors[n.Anchor] = true
			}

			for _, c := range n.Content {
				collect(c)
			}
		}
		collect(doc)

		var check func(n *yaml.Node, path string)
		check = func(n *yaml.Node, path string) {
			for i := 0; i+1 < len(n.Content); i += 2 {
				key, value := n.Content[i].Value, n.Content[i+1]
				p := path + "." + key

				switch document.KindOf(value) {
				case document.KindScalar:
					assert.NotEmpty(t, value.Value, p)
					assert.NotContains(t, value.Value, "\n\n\n", p)
					assert.False(t, strings.HasPrefix(value.Value, "\n\n"), p)
					assert.False(t, strings.HasSuffix(value.Value, "\n\n"), p)
				case document.KindMapping:
					assert.NotEmpty(t, value.Content, p)
					check(value, p)
				case document.KindAlias:
					assert.True(t, anchors[document.AliasName(value)], p)

					if assert.NotNil(t, value.Alias, p) {
						assert.Equal(t, document.KindMapping, document.KindOf(value.Alias), p)
						assert.Equal(t, document.AliasName(value), value.Alias.Anchor, p)
					}
				case document.KindSequence, document.KindDocument, document.KindUnknown:
				}
			}
		}

		if root := document.Root(doc); document.KindOf(root) == document.KindMapping {
			check(root, "")
		}
	}
}
