package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/thomas6m/Unique-Extractor/dataset"
)

// readParquet loads a parquet file through the generic row reader. Parquet
// is already tabular, so no flattening is needed; column order comes from
// the file schema.
func readParquet(f *os.File, _ rune) (*dataset.Dataset, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet file: %v", err)
	}

	pqFile, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("opening parquet file: %v", err)
	}

	columns := make([]string, 0)
	for _, field := range pqFile.Schema().Fields() {
		columns = append(columns, field.Name())
	}
	d := dataset.New(columns)

	rows := parquet.NewReader(pqFile)
	defer func() { _ = rows.Close() }()

	for {
		row := make(map[string]any)
		if err := rows.Read(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("reading parquet row: %v", err)
		}
		normalized := make(map[string]any, len(row))
		for k, v := range row {
			normalized[k] = normalizeParquetValue(v)
		}
		d.Append(normalized)
	}
	return d, nil
}

// normalizeParquetValue maps decoded parquet values onto the dataset cell
// types.
func normalizeParquetValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		return val
	case float32:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}
