// Package output renders an extraction result, or any dataset, into one of
// the supported serialized formats.
//
// Writers are looked up in a registry keyed by format identifier, so the
// dispatch logic never changes when a format is added. The extraction
// layouts are:
//
//   - single: one row carrying the run metadata and the separator-joined
//     unique values.
//   - multi: a leading sentinel metadata row, then one row per unique
//     value.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/thomas6m/Unique-Extractor/dataset"
	"github.com/thomas6m/Unique-Extractor/extract"
)

var (
	// ErrUnsupportedFormat is returned for output formats outside the
	// registry.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// ErrWrite wraps serialization and filesystem failures during the
	// final write.
	ErrWrite = errors.New("output write failed")
)

// MetaColumn is the column carrying run metadata in the output layouts.
const MetaColumn = "meta"

// MetaSentinel marks the metadata row in multi layout.
const MetaSentinel = "METADATA"

// Writer serializes a dataset to a stream in one format.
type Writer interface {
	Write(w io.Writer, d *dataset.Dataset) error
}

var writers = map[string]Writer{
	"csv":     csvWriter{},
	"json":    jsonWriter{},
	"yaml":    yamlWriter{},
	"parquet": parquetWriter{},
}

// For returns the writer registered for format.
func For(format string) (Writer, error) {
	w, ok := writers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return w, nil
}

// ResolveFormat picks the output format: the explicit choice wins, then the
// output path extension, then csv.
func ResolveFormat(path, explicit string) (string, error) {
	format := explicit
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	if format == "" {
		format = "csv"
	}
	if _, ok := writers[format]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return format, nil
}

// Build lays the extraction result out as the dataset that will be
// serialized.
func Build(res *extract.Result, spec extract.Spec) *dataset.Dataset {
	spec.Normalize()
	d := dataset.New([]string{MetaColumn, spec.ColumnName})

	if spec.RowFormat == extract.Multi {
		d.Append(map[string]any{
			MetaColumn:      res.Meta.String(),
			spec.ColumnName: MetaSentinel,
		})
		for _, v := range res.Values {
			d.Append(map[string]any{spec.ColumnName: v})
		}
		return d
	}

	d.Append(map[string]any{
		MetaColumn:      res.Meta.String(),
		spec.ColumnName: strings.Join(res.Values, spec.Separator),
	})
	return d
}

// WriteResult serializes an extraction result to path in the given format.
func WriteResult(res *extract.Result, spec extract.Spec, path, format string) error {
	return WriteDataset(Build(res, spec), path, format)
}

// WriteDataset serializes any dataset to path in the given format, creating
// parent directories as needed.
func WriteDataset(d *dataset.Dataset, path, format string) error {
	w, err := For(format)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if err := w.Write(f, d); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
