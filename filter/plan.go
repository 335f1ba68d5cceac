package filter

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/thomas6m/Unique-Extractor/dataset"
)

// ErrInvalidFilterValue is returned when a numeric operator is given a
// literal that is not a single floating-point number.
var ErrInvalidFilterValue = errors.New("invalid filter value")

// predicate tests one row against one compiled clause.
type predicate func(row map[string]any) bool

// Plan is a lazy conjunction of filter clauses over one dataset.
//
// Apply only validates and compiles a clause; no rows are touched until
// Materialize runs a single pass over the source, so memory scales with the
// final result rather than with every intermediate filter step.
type Plan struct {
	src        *dataset.Dataset
	clauses    []Clause
	predicates []predicate
	dropNull   string
}

// NewPlan starts an empty plan over d.
func NewPlan(d *dataset.Dataset) *Plan {
	return &Plan{src: d}
}

// Apply validates c against the dataset schema and appends it to the plan.
//
// Returns dataset.ErrUnknownField when c.Field is not a column, and
// ErrInvalidFilterValue when a numeric operator does not carry exactly one
// numeric literal.
func (p *Plan) Apply(c Clause) error {
	if err := p.src.CheckColumn(c.Field); err != nil {
		return err
	}

	pred, err := compile(c)
	if err != nil {
		return err
	}

	p.clauses = append(p.clauses, c)
	p.predicates = append(p.predicates, pred)
	return nil
}

// DropNull marks rows whose field cell is nil for removal during
// materialization. Applied after all clauses.
func (p *Plan) DropNull(field string) error {
	if err := p.src.CheckColumn(field); err != nil {
		return err
	}
	p.dropNull = field
	return nil
}

// Clauses returns the applied clauses in order, for run metadata.
func (p *Plan) Clauses() []Clause {
	return p.clauses
}

// Materialize runs every clause over the source in one pass and returns the
// surviving rows as a new dataset. Row maps are shared with the source; the
// source itself is never mutated.
func (p *Plan) Materialize() *dataset.Dataset {
	out := dataset.New(p.src.Columns)
rows:
	for _, row := range p.src.Rows {
		for _, pred := range p.predicates {
			if !pred(row) {
				continue rows
			}
		}
		if p.dropNull != "" && row[p.dropNull] == nil {
			continue
		}
		out.Append(row)
	}
	return out
}

// compile turns a clause into a row predicate, resolving literal parsing
// and regexp compilation up front.
func compile(c Clause) (predicate, error) {
	if c.Op.numeric() {
		if len(c.Values) != 1 {
			return nil, fmt.Errorf("%w: operator %q takes exactly one value, got %d", ErrInvalidFilterValue, c.Op, len(c.Values))
		}
		threshold, err := strconv.ParseFloat(strings.TrimSpace(c.Values[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot convert %q to float for operator %q", ErrInvalidFilterValue, c.Values[0], c.Op)
		}
		return numericPredicate(c.Field, c.Op, threshold), nil
	}

	switch c.Op {
	case OpEQ, OpNE:
		members := make(map[string]struct{}, len(c.Values))
		for _, v := range c.Values {
			members[v] = struct{}{}
		}
		negate := c.Op == OpNE
		return func(row map[string]any) bool {
			s, ok := dataset.String(row[c.Field])
			if !ok {
				// Null cells match neither membership nor its negation.
				return false
			}
			_, in := members[strings.TrimSpace(s)]
			return in != negate
		}, nil
	case OpMatch:
		quoted := make([]string, len(c.Values))
		for i, v := range c.Values {
			quoted[i] = regexp.QuoteMeta(v)
		}
		re, err := regexp.Compile(strings.Join(quoted, "|"))
		if err != nil {
			return nil, fmt.Errorf("%w: bad match pattern %v: %v", ErrInvalidFilterValue, c.Values, err)
		}
		return func(row map[string]any) bool {
			s, ok := dataset.String(row[c.Field])
			if !ok {
				return false
			}
			return re.MatchString(strings.TrimSpace(s))
		}, nil
	}
	return nil, fmt.Errorf("%w: unsupported operator %q", ErrInvalidFilterValue, c.Op)
}

// numericPredicate coerces the cell non-strictly; cells that are not
// numeric are excluded rather than raising.
func numericPredicate(field string, op Operator, threshold float64) predicate {
	return func(row map[string]any) bool {
		f, ok := dataset.Float(row[field])
		return ok && comparefloat(f, op, threshold)
	}
}

func comparefloat(left float64, op Operator, right float64) bool {
	switch op {
	case OpGT:
		return left > right
	case OpLT:
		return left < right
	case OpGE:
		return left >= right
	case OpLE:
		return left <= right
	}
	return false
}
