// Package extract computes the sorted set of unique values of one dataset
// column, in single-valued or delimiter-packed (multi) form.
package extract

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thomas6m/Unique-Extractor/dataset"
	"github.com/thomas6m/Unique-Extractor/filter"
)

// RowFormat selects how packed fields are treated and how output rows are
// laid out.
type RowFormat string

const (
	// Single treats each cell as one value and joins the unique set into
	// a single output row.
	Single RowFormat = "single"
	// Multi splits each cell on the separator, explodes the tokens across
	// rows and emits one output row per unique value.
	Multi RowFormat = "multi"
)

// Spec describes one extraction: which field, which mode, and how the
// result is labelled.
type Spec struct {
	Field      string
	RowFormat  RowFormat
	Separator  string
	ColumnName string
}

// Normalize fills defaults: separator ";", single mode, column name equal
// to the field.
func (s *Spec) Normalize() {
	if s.Separator == "" {
		s.Separator = ";"
	}
	if s.RowFormat == "" {
		s.RowFormat = Single
	}
	if s.ColumnName == "" {
		s.ColumnName = s.Field
	}
}

// Metadata describes one completed extraction run; it is carried verbatim
// into the output.
type Metadata struct {
	Field     string
	Filters   []string
	Count     int
	Timestamp string
	RunID     string
}

// String renders the metadata as the single descriptive cell written next
// to the values.
func (m Metadata) String() string {
	return fmt.Sprintf("field=%s filters=[%s] count=%d time=%s run=%s",
		m.Field, strings.Join(m.Filters, " "), m.Count, m.Timestamp, m.RunID)
}

// Result is the unique value set plus its run metadata.
type Result struct {
	Values []string
	Meta   Metadata
}

// now is swapped out in tests to pin the metadata timestamp.
var now = time.Now

// Unique extracts the sorted unique values of spec.Field from d.
//
// Values are trimmed; nulls and strings that are empty after trimming are
// dropped. In Multi mode each cell is first split on spec.Separator and the
// tokens exploded across rows, so a cell "a;b;c" contributes three values.
// Sorting is plain bytewise ascending, with no locale collation, so the
// order is reproducible across environments.
//
// The clauses are not evaluated here; they are recorded in the metadata and
// must already have been applied by the caller's plan.
func Unique(d *dataset.Dataset, spec Spec, applied []filter.Clause) (*Result, error) {
	spec.Normalize()
	if err := d.CheckColumn(spec.Field); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	values := make([]string, 0)

	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}

	for _, row := range d.Rows {
		s, ok := dataset.String(row[spec.Field])
		if !ok {
			continue
		}
		if spec.RowFormat == Multi {
			for _, token := range strings.Split(s, spec.Separator) {
				add(token)
			}
		} else {
			add(s)
		}
	}
	sort.Strings(values)

	filters := make([]string, len(applied))
	for i, c := range applied {
		filters[i] = c.String()
	}

	return &Result{
		Values: values,
		Meta: Metadata{
			Field:     spec.Field,
			Filters:   filters,
			Count:     len(values),
			Timestamp: now().Format("2006-01-02T15:04:05"),
			RunID:     uuid.NewString(),
		},
	}, nil
}
