package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DefaultIndent is the indentation used when EncodeOptions.Indent is unset.
const DefaultIndent = 2

// EncodeOptions controls serialization of a document stream.
type EncodeOptions struct {
	// Indent is the number of spaces per nesting level (0 = DefaultIndent).
	Indent int
}

// Parse decodes every YAML document in data. The returned nodes are owned by
// the caller; data is not retained.
func Parse(data []byte) ([]*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docs []*yaml.Node

	for {
		var doc yaml.Node

		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}

		docs = append(docs, &doc)
	}

	return docs, nil
}

// Encode serializes docs as one YAML stream, separating documents with "---".
// An empty stream encodes to no bytes.
func Encode(docs []*yaml.Node, opts EncodeOptions) ([]byte, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	indent := opts.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)

	for i, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode document %d: %w", i, err)
		}
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish YAML stream: %w", err)
	}

	return buf.Bytes(), nil
}

// Root returns the top-level content node of a document node, or the node
// itself when it is not a document. It returns nil for an empty document.
func Root(n *yaml.Node) *yaml.Node {
	if KindOf(n) != KindDocument {
		return n
	}

	if len(n.Content) == 0 {
		return nil
	}

	return n.Content[0]
}

// DeletePair removes the entry whose key and value are exactly the given
// nodes (compared by identity) from mapping. It reports whether an entry was
// removed.
func DeletePair(mapping, key, value *yaml.Node) bool {
	if KindOf(mapping) != KindMapping {
		return false
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i] != key || mapping.Content[i+1] != value {
			continue
		}

		mapping.Content = append(mapping.Content[:i], mapping.Content[i+2:]...)

		return true
	}

	return false
}

// AliasName returns the anchor name an alias node refers to, or "" when n is
// not an alias.
func AliasName(n *yaml.Node) string {
	if KindOf(n) != KindAlias {
		return ""
	}

	return n.Value
}
