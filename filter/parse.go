package filter

import (
	"log/slog"
	"strings"
)

// Parse converts textual filter expressions into clauses.
//
// Malformed expressions (no recognizable operator, empty field, or a value
// list that is empty after trimming) are skipped with a warning on the
// given logger rather than failing the batch: one typo must not abort a run
// with several good filters. A nil logger falls back to slog.Default.
func Parse(expressions []string, log *slog.Logger) []Clause {
	if log == nil {
		log = slog.Default()
	}

	clauses := make([]Clause, 0, len(expressions))
	for _, expr := range expressions {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			continue
		}

		field, op, rest, ok := splitExpression(expr)
		if !ok {
			log.Warn("skipping invalid filter expression", "expr", expr)
			continue
		}

		values := splitValues(rest)
		if len(values) == 0 {
			log.Warn("skipping filter with no values", "expr", expr)
			continue
		}

		c := Clause{Field: field, Op: op, Values: values}
		log.Info("parsed filter", "field", c.Field, "op", string(c.Op), "values", c.Values)
		clauses = append(clauses, c)
	}
	return clauses
}

// splitExpression finds the first operator occurrence in expr, preferring
// the longest token at each position. The field before the operator must be
// non-empty after trimming.
func splitExpression(expr string) (field string, op Operator, rest string, ok bool) {
	for i := 0; i < len(expr); i++ {
		for _, candidate := range operators {
			tok := string(candidate)
			if !strings.HasPrefix(expr[i:], tok) {
				continue
			}
			field = strings.TrimSpace(expr[:i])
			rest = expr[i+len(tok):]
			if field == "" || rest == "" {
				return "", "", "", false
			}
			return field, candidate, rest, true
		}
	}
	return "", "", "", false
}

// splitValues splits the value part on commas, trims each token and drops
// empties.
func splitValues(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}
