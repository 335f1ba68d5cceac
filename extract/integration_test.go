package extract_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"testing"

	"github.com/thomas6m/Unique-Extractor/dataset"
	"github.com/thomas6m/Unique-Extractor/extract"
	"github.com/thomas6m/Unique-Extractor/filter"
	"github.com/thomas6m/Unique-Extractor/output"
	"github.com/thomas6m/Unique-Extractor/reader"
)

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// Scenario: CSV of id,status filtered to active rows, single mode.
func TestPipeline_CSVFilterSingle(t *testing.T) {
	path := writeInput(t, "in.csv", "id,status\n1,active\n2,inactive\n3,active\n")

	d, err := reader.Read(path, ",")
	if err != nil {
		t.Fatal(err)
	}

	plan := filter.NewPlan(d)
	clauses := filter.Parse([]string{"status=active"}, nil)
	for _, c := range clauses {
		if err := plan.Apply(c); err != nil {
			t.Fatal(err)
		}
	}

	spec := extract.Spec{Field: "id", RowFormat: extract.Single, Separator: ";"}
	res, err := extract.Unique(plan.Materialize(), spec, plan.Clauses())
	if err != nil {
		t.Fatal(err)
	}

	built := output.Build(res, spec)
	if got := built.Rows[0]["id"]; got != "1;3" {
		t.Errorf("joined output = %v, want 1;3", got)
	}
}

// Seven-digit ids pass through the CSV numeric inference as floats; they
// must come back out in decimal form and stay matchable by equality filters.
func TestPipeline_LargeIntegerIDs(t *testing.T) {
	path := writeInput(t, "in.csv", "id,status\n1234567,active\n7654321,active\n9999999,inactive\n")

	d, err := reader.Read(path, ",")
	if err != nil {
		t.Fatal(err)
	}

	res, err := extract.Unique(d, extract.Spec{Field: "id"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res.Values, []string{"1234567", "7654321", "9999999"}) {
		t.Errorf("values = %v, want decimal ids", res.Values)
	}

	plan := filter.NewPlan(d)
	for _, c := range filter.Parse([]string{"id=7654321"}, nil) {
		if err := plan.Apply(c); err != nil {
			t.Fatal(err)
		}
	}
	if got := plan.Materialize().Len(); got != 1 {
		t.Errorf("equality filter on large id matched %d rows, want 1", got)
	}
}

// Scenario: JSON array with packed tags, multi mode, comma separator.
func TestPipeline_JSONMulti(t *testing.T) {
	path := writeInput(t, "in.json", `[{"tags":"a,b"},{"tags":"b,c"}]`)

	d, err := reader.Read(path, ",")
	if err != nil {
		t.Fatal(err)
	}
	spec := extract.Spec{Field: "tags", RowFormat: extract.Multi, Separator: ","}
	res, err := extract.Unique(d, spec, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res.Values, []string{"a", "b", "c"}) {
		t.Errorf("values = %v, want [a b c]", res.Values)
	}
}

// Scenario: a ragged CSV row must not abort the read, and its missing
// trailing cells are nulls that drop_na removes.
func TestPipeline_RaggedCSVDropNA(t *testing.T) {
	path := writeInput(t, "in.csv", "id,country\n1,USA\n2\n3,UK\n")

	d, err := reader.Read(path, ",")
	if err != nil {
		t.Fatalf("ragged csv aborted the read: %v", err)
	}

	plan := filter.NewPlan(d)
	if err := plan.DropNull("country"); err != nil {
		t.Fatal(err)
	}
	res, err := extract.Unique(plan.Materialize(), extract.Spec{Field: "country"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res.Values, []string{"UK", "USA"}) {
		t.Errorf("values = %v, want [UK USA]", res.Values)
	}
}

// Unknown fields fail before any output file exists.
func TestPipeline_UnknownFieldWritesNothing(t *testing.T) {
	in := writeInput(t, "in.csv", "id,status\n1,active\n")
	out := filepath.Join(t.TempDir(), "out.csv")

	d, err := reader.Read(in, ",")
	if err != nil {
		t.Fatal(err)
	}

	plan := filter.NewPlan(d)
	err = plan.Apply(filter.Clause{Field: "nope", Op: filter.OpEQ, Values: []string{"x"}})
	if !errors.Is(err, dataset.ErrUnknownField) {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, err := extract.Unique(d, extract.Spec{Field: "also_missing"}, nil); !errors.Is(err, dataset.ErrUnknownField) {
		t.Fatalf("Unique() error = %v", err)
	}

	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Error("output file exists despite unknown field")
	}
}

// Two identical runs must produce byte-identical output once the varying
// metadata fields are substituted out.
func TestPipeline_Idempotent(t *testing.T) {
	in := writeInput(t, "in.csv", "id,status\n3,active\n1,active\n2,inactive\n1,active\n")

	once := func(outPath string) []byte {
		d, err := reader.Read(in, ",")
		if err != nil {
			t.Fatal(err)
		}
		plan := filter.NewPlan(d)
		for _, c := range filter.Parse([]string{"status=active"}, nil) {
			if err := plan.Apply(c); err != nil {
				t.Fatal(err)
			}
		}
		spec := extract.Spec{Field: "id", RowFormat: extract.Multi, Separator: ";"}
		res, err := extract.Unique(plan.Materialize(), spec, plan.Clauses())
		if err != nil {
			t.Fatal(err)
		}
		if err := output.WriteResult(res, spec, outPath, "csv"); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	dir := t.TempDir()
	a := once(filepath.Join(dir, "a.csv"))
	b := once(filepath.Join(dir, "b.csv"))

	scrub := regexp.MustCompile(`time=\S+ run=\S+`)
	a = scrub.ReplaceAll(a, []byte("time=T run=R"))
	b = scrub.ReplaceAll(b, []byte("time=T run=R"))
	if !bytes.Equal(a, b) {
		t.Errorf("runs differ:\n%s\n---\n%s", a, b)
	}
}
