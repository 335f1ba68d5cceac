package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/thomas6m/Unique-Extractor/dataset"
)

// yamlWriter serializes a dataset as a YAML sequence of mappings.
type yamlWriter struct{}

func (yamlWriter) Write(w io.Writer, d *dataset.Dataset) error {
	rows := d.Rows
	if rows == nil {
		rows = []map[string]any{}
	}
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()
	return enc.Encode(rows)
}
