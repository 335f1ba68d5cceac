package output

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/thomas6m/Unique-Extractor/dataset"
	"github.com/thomas6m/Unique-Extractor/reader"
)

func TestParquetRoundTrip(t *testing.T) {
	d := dataset.New([]string{"meta", "tag"})
	d.Append(map[string]any{"meta": "run info", "tag": "METADATA"})
	d.Append(map[string]any{"tag": "a"})
	d.Append(map[string]any{"tag": "b"})

	path := filepath.Join(t.TempDir(), "out.parquet")
	if err := WriteDataset(d, path, "parquet"); err != nil {
		t.Fatalf("WriteDataset() error = %v", err)
	}

	back, err := reader.Read(path, ",")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if back.Len() != 3 {
		t.Fatalf("rows = %d, want 3", back.Len())
	}
	tags := make([]string, 0, back.Len())
	for _, row := range back.Rows {
		s, _ := dataset.String(row["tag"])
		tags = append(tags, s)
	}
	if !reflect.DeepEqual(tags, []string{"METADATA", "a", "b"}) {
		t.Errorf("tags = %v", tags)
	}
	if back.Rows[1]["meta"] != nil {
		t.Errorf("null cell came back as %v", back.Rows[1]["meta"])
	}
}
