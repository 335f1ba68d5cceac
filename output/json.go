package output

import (
	"encoding/json"
	"io"

	"github.com/thomas6m/Unique-Extractor/dataset"
)

// jsonWriter serializes a dataset as a pretty-printed array of objects.
// Keys marshal in sorted order, which keeps repeat runs byte-identical.
type jsonWriter struct{}

func (jsonWriter) Write(w io.Writer, d *dataset.Dataset) error {
	rows := d.Rows
	if rows == nil {
		rows = []map[string]any{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
