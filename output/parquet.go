package output

import (
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/thomas6m/Unique-Extractor/dataset"
)

// parquetWriter serializes a dataset with every column as an optional
// string, matching the string-form cells the extraction layouts produce.
type parquetWriter struct{}

func (parquetWriter) Write(w io.Writer, d *dataset.Dataset) error {
	group := parquet.Group{}
	for _, col := range d.Columns {
		group[col] = parquet.Optional(parquet.String())
	}
	schema := parquet.NewSchema("extraction", group)

	pw := parquet.NewGenericWriter[map[string]any](w, schema)
	for _, row := range d.Rows {
		out := make(map[string]any, len(row))
		for _, col := range d.Columns {
			if v := row[col]; v != nil {
				s, _ := dataset.String(v)
				out[col] = s
			}
		}
		if _, err := pw.Write([]map[string]any{out}); err != nil {
			return err
		}
	}
	return pw.Close()
}
