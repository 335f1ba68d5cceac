package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/thomas6m/Unique-Extractor/dataset"
)

// csvWriter serializes a dataset as CSV with a header row, columns in
// dataset order.
type csvWriter struct{}

func (csvWriter) Write(w io.Writer, d *dataset.Dataset) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(d.Columns); err != nil {
		return err
	}
	for _, row := range d.Rows {
		record := make([]string, len(d.Columns))
		for i, col := range d.Columns {
			record[i] = formatValue(row[col])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// formatValue converts a cell to its CSV string form. Null cells become
// empty fields.
func formatValue(v any) string {
	if v == nil {
		return ""
	}
	s, _ := dataset.String(v)
	// Prefix characters that spreadsheet applications treat as formula
	// starts, so generated files cannot trigger formula execution. '-' is
	// left alone so negative numbers stay plain.
	if len(s) > 0 {
		switch s[0] {
		case '=', '+', '@', '|', '\t', '\r', '\n':
			return "'" + strings.ReplaceAll(s, "'", "''")
		}
	}
	return s
}
