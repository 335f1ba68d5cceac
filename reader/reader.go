// Package reader ingests CSV, JSON, YAML and Parquet files into the
// uniform dataset representation.
//
// The format is resolved from the file extension through a small registry,
// so adding a format means registering one function rather than touching
// the dispatch logic. Format-specific quirks (ragged CSV rows, wrapped JSON
// documents, nested YAML) are resolved here; downstream stages are
// format-agnostic.
package reader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/thomas6m/Unique-Extractor/dataset"
)

var (
	// ErrFileAccess is returned when the input path is missing or not a
	// regular file.
	ErrFileAccess = errors.New("cannot access input file")

	// ErrUnsupportedFormat is returned when the file extension is not a
	// registered input format.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

// readFunc loads one open file into a dataset. The delimiter only matters
// for CSV and is ignored elsewhere.
type readFunc func(f *os.File, delimiter rune) (*dataset.Dataset, error)

// readers maps a lowercased file extension to its loader.
var readers = map[string]readFunc{
	".csv":     readCSV,
	".json":    readJSON,
	".yaml":    readYAML,
	".yml":     readYAML,
	".parquet": readParquet,
}

// Formats returns the registered input extensions, for error messages.
func Formats() []string {
	out := make([]string, 0, len(readers))
	for ext := range readers {
		out = append(out, ext)
	}
	return out
}

// Read loads path into a dataset using the reader registered for its
// extension. delimiter is the CSV field delimiter; an empty string means
// comma.
func Read(path, delimiter string) (*dataset.Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrFileAccess, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	read, ok := readers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}
	defer func() { _ = f.Close() }()

	sep := ','
	if delimiter != "" {
		sep = []rune(delimiter)[0]
	}

	d, err := read(f, sep)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return d, nil
}
