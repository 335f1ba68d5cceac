package filter

import (
	"io"
	"log/slog"
	"reflect"
	"testing"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		exprs []string
		want  []Clause
	}{
		{
			"equality",
			[]string{"status=active"},
			[]Clause{{Field: "status", Op: OpEQ, Values: []string{"active"}}},
		},
		{
			"membership list",
			[]string{"status=active,pending"},
			[]Clause{{Field: "status", Op: OpEQ, Values: []string{"active", "pending"}}},
		},
		{
			"longest match wins",
			[]string{"age>=30"},
			[]Clause{{Field: "age", Op: OpGE, Values: []string{"30"}}},
		},
		{
			"greater than",
			[]string{"age>30"},
			[]Clause{{Field: "age", Op: OpGT, Values: []string{"30"}}},
		},
		{
			"not equal",
			[]string{"country!=USA"},
			[]Clause{{Field: "country", Op: OpNE, Values: []string{"USA"}}},
		},
		{
			"match",
			[]string{"email~gmail,yahoo"},
			[]Clause{{Field: "email", Op: OpMatch, Values: []string{"gmail", "yahoo"}}},
		},
		{
			"whitespace trimmed",
			[]string{"  status = active , pending "},
			[]Clause{{Field: "status", Op: OpEQ, Values: []string{"active", "pending"}}},
		},
		{
			"invalid expression skipped",
			[]string{"no operator here", "status=active"},
			[]Clause{{Field: "status", Op: OpEQ, Values: []string{"active"}}},
		},
		{
			"empty value list skipped",
			[]string{"status=, ,"},
			[]Clause{},
		},
		{
			"missing field skipped",
			[]string{"=active"},
			[]Clause{},
		},
		{
			"several expressions",
			[]string{"age>=30", "status=active"},
			[]Clause{
				{Field: "age", Op: OpGE, Values: []string{"30"}},
				{Field: "status", Op: OpEQ, Values: []string{"active"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.exprs, discard())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%v) = %v, want %v", tt.exprs, got, tt.want)
			}
		})
	}
}

func TestParse_OneBadExpressionDoesNotAbortBatch(t *testing.T) {
	got := Parse([]string{"age>=30", "garbage", "status=active"}, discard())
	if len(got) != 2 {
		t.Fatalf("Parse() kept %d clauses, want 2", len(got))
	}
}

func TestClauseString(t *testing.T) {
	c := Clause{Field: "status", Op: OpEQ, Values: []string{"active", "pending"}}
	if got := c.String(); got != "status=active,pending" {
		t.Errorf("String() = %q", got)
	}
}
