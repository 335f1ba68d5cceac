// Package filter implements the filter expression grammar and the lazy
// predicate plan applied to a dataset before extraction.
//
// Expressions have the form
//
//	<field><op><value1>[,<value2>,...]
//
// where op is one of >=, <=, !=, =, >, < and ~. The four comparison
// operators coerce the column to float64 and take a single numeric literal;
// = and != are set membership over the trimmed string form of the column;
// ~ matches any of the literals as substrings.
package filter

import (
	"fmt"
	"strings"
)

// Operator is a filter comparison operator token.
type Operator string

const (
	OpGE    Operator = ">="
	OpLE    Operator = "<="
	OpNE    Operator = "!="
	OpEQ    Operator = "="
	OpGT    Operator = ">"
	OpLT    Operator = "<"
	OpMatch Operator = "~"
)

// operators is ordered longest-first so that ">=" is never split into
// ">" and "=".
var operators = []Operator{OpGE, OpLE, OpNE, OpEQ, OpGT, OpLT, OpMatch}

// numeric reports whether the operator compares against a float literal.
func (op Operator) numeric() bool {
	switch op {
	case OpGT, OpLT, OpGE, OpLE:
		return true
	}
	return false
}

// Clause is one parsed filter condition: a field, an operator and a
// non-empty list of literal values.
type Clause struct {
	Field  string
	Op     Operator
	Values []string
}

// String renders the clause back into roughly its source form, used for
// run metadata and logging.
func (c Clause) String() string {
	return fmt.Sprintf("%s%s%s", c.Field, c.Op, strings.Join(c.Values, ","))
}
