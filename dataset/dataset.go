// Package dataset defines the in-memory tabular representation shared by
// every pipeline stage.
//
// A Dataset is an ordered list of column names plus rows stored as maps.
// Cells hold one of three things: a string, a float64, or nil for missing
// values. Readers are responsible for normalizing source-specific types
// down to that set, so downstream stages never see anything else.
package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownField is returned when a filter or extraction references a
// column that is not part of the dataset schema.
var ErrUnknownField = errors.New("field not found in schema")

// Dataset is an immutable-by-convention table: once built by a reader it is
// never mutated, filtering produces a new Dataset sharing the row maps.
type Dataset struct {
	Columns []string
	Rows    []map[string]any
}

// New creates an empty dataset with the given column order.
func New(columns []string) *Dataset {
	return &Dataset{Columns: columns}
}

// HasColumn reports whether name is a column of the dataset.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// CheckColumn returns ErrUnknownField (wrapped with the field name) when
// name is not a column of the dataset.
func (d *Dataset) CheckColumn(name string) error {
	if !d.HasColumn(name) {
		return fmt.Errorf("%w: %q (available: %s)", ErrUnknownField, name, strings.Join(d.Columns, ", "))
	}
	return nil
}

// Append adds one row. Missing columns are simply absent from the map and
// read back as nil.
func (d *Dataset) Append(row map[string]any) {
	d.Rows = append(d.Rows, row)
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Float coerces a cell to float64. Strings are trimmed and parsed; anything
// that does not parse, including nil, reports ok=false rather than an
// error, mirroring the non-strict cast policy of the pipeline.
func Float(v any) (float64, bool) {
	switch val := v.(type) {
	case nil:
		return 0, false
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// String coerces a cell to its string form. Numbers use plain decimal
// notation with no exponent ("1" for 1.0, "1234567" for a seven-digit id),
// so values that pass through numeric inference round-trip unchanged. Nil
// cells report ok=false so callers can tell a null apart from an empty
// string.
func String(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case int:
		return strconv.Itoa(val), true
	case int32:
		return strconv.FormatInt(int64(val), 10), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint32:
		return strconv.FormatUint(uint64(val), 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return fmt.Sprintf("%v", val), true
	}
}
