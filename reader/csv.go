package reader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/thomas6m/Unique-Extractor/dataset"
)

// inferSampleRows bounds how many leading rows are inspected when deciding
// whether a column is numeric.
const inferSampleRows = 10000

// readCSV parses CSV with the given field delimiter.
//
// Per-row anomalies never fail the read: ragged rows are padded with nulls
// or truncated to the header width, and cells of a numeric column that do
// not parse become null. The companion generator deliberately produces
// corrupt rows, so partial success beats a hard failure here.
func readCSV(f *os.File, delimiter rune) (*dataset.Dataset, error) {
	r := csv.NewReader(f)
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %v", err)
	}
	if len(records) == 0 {
		return dataset.New(nil), nil
	}

	header := records[0]
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}
	body := records[1:]

	numeric := inferNumericColumns(columns, body)

	d := dataset.New(columns)
	for _, record := range body {
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if i >= len(record) {
				row[col] = nil // short row, pad
				continue
			}
			row[col] = cellValue(record[i], numeric[col])
		}
		// Extra fields beyond the header are dropped.
		d.Append(row)
	}
	return d, nil
}

// inferNumericColumns samples leading rows and marks a column numeric when
// every non-empty sampled cell parses as a float.
func inferNumericColumns(columns []string, body [][]string) map[string]bool {
	numeric := make(map[string]bool, len(columns))
	for i, col := range columns {
		sampled := false
		isNumeric := true
		for r := 0; r < len(body) && r < inferSampleRows; r++ {
			if i >= len(body[r]) {
				continue
			}
			v := strings.TrimSpace(body[r][i])
			if v == "" {
				continue
			}
			sampled = true
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				isNumeric = false
				break
			}
		}
		numeric[col] = sampled && isNumeric
	}
	return numeric
}

// cellValue converts one raw CSV field. Empty fields are null regardless of
// the column type.
func cellValue(raw string, numeric bool) any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if numeric {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil // non-numeric cell in a numeric column
		}
		return f
	}
	return raw
}
