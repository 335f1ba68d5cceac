package reader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thomas6m/Unique-Extractor/dataset"
)

// readYAML loads a generic YAML document. A mapping becomes one row, a
// sequence one row per element. Nested mappings are flattened into
// dotted-path column names (parent.child); sequences of mappings into
// parent[i].child. The tabular representation has no nested-value concept,
// so the flattening happens here.
//
// Decoding goes through yaml.Node rather than a map so that key order is
// preserved into the column order.
func readYAML(f *os.File, _ rune) (*dataset.Dataset, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %v", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	d := dataset.New(nil)
	switch root.Kind {
	case yaml.MappingNode:
		appendYAMLRow(d, root)
	case yaml.SequenceNode:
		for _, elem := range root.Content {
			if elem.Kind == yaml.MappingNode {
				appendYAMLRow(d, elem)
				continue
			}
			// Bare scalars in a top-level sequence become a one-column row.
			row := map[string]any{"value": scalarValue(elem)}
			if !d.HasColumn("value") {
				d.Columns = append(d.Columns, "value")
			}
			d.Append(row)
		}
	default:
		return nil, fmt.Errorf("parsing yaml: document is neither a mapping nor a sequence")
	}
	return d, nil
}

// appendYAMLRow flattens one mapping node into a row, registering new
// columns in encounter order.
func appendYAMLRow(d *dataset.Dataset, node *yaml.Node) {
	row := make(map[string]any)
	flattenMapping(node, "", row, &d.Columns)
	d.Append(row)
}

// flattenMapping walks a mapping node, writing leaf values under
// dotted-path keys.
func flattenMapping(node *yaml.Node, prefix string, row map[string]any, columns *[]string) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		switch val.Kind {
		case yaml.MappingNode:
			flattenMapping(val, name, row, columns)
		case yaml.SequenceNode:
			if isMappingSequence(val) {
				for idx, elem := range val.Content {
					flattenMapping(elem, fmt.Sprintf("%s[%d]", name, idx), row, columns)
				}
				continue
			}
			setCell(row, columns, name, joinScalars(val))
		default:
			setCell(row, columns, name, scalarValue(val))
		}
	}
}

func setCell(row map[string]any, columns *[]string, name string, v any) {
	if !containsColumn(*columns, name) {
		*columns = append(*columns, name)
	}
	row[name] = v
}

func containsColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}

// isMappingSequence reports whether every element of a sequence node is a
// mapping, which selects the parent[i].child flattening.
func isMappingSequence(node *yaml.Node) bool {
	if len(node.Content) == 0 {
		return false
	}
	for _, elem := range node.Content {
		if elem.Kind != yaml.MappingNode {
			return false
		}
	}
	return true
}

// joinScalars renders a sequence of scalars as one comma-joined cell.
func joinScalars(node *yaml.Node) any {
	parts := make([]string, 0, len(node.Content))
	for _, elem := range node.Content {
		s, ok := dataset.String(scalarValue(elem))
		if ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ",")
}

// scalarValue maps a YAML scalar onto the dataset cell types using its
// resolved tag.
func scalarValue(node *yaml.Node) any {
	switch node.Tag {
	case "!!null":
		return nil
	case "!!int", "!!float":
		if f, err := strconv.ParseFloat(node.Value, 64); err == nil {
			return f
		}
		return node.Value
	case "!!bool":
		return node.Value
	default:
		return node.Value
	}
}
