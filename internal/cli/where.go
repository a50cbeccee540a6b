package cli

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/magpie/query"
)

// whereSyntaxHint is the canonical usage reminder for --where clauses.
const whereSyntaxHint = "Clauses look like: --where '$.field >= 10' (ops: = != < <= > >= like regexp)"

// parseWhere turns one --where clause of the form '<field> <op> <value>'
// into a predicate. The field is a JSON path, the operator one of
// = != < <= > >= like regexp, and the value a JSON scalar. The keyword
// 'null' matches stored JSON nulls.
func parseWhere(clause string) (query.Predicate, error) {
	field, rest := cutToken(strings.TrimSpace(clause))
	op, rest := cutToken(rest)
	value := strings.TrimSpace(rest)
	if field == "" || op == "" || value == "" {
		return nil, fmt.Errorf("clause must be '<field> <op> <value>'")
	}

	var val any
	if strings.EqualFold(value, "null") {
		val = nil
	} else {
		var err error
		val, err = parseScalar(value)
		if err != nil {
			return nil, err
		}
	}

	switch strings.ToLower(op) {
	case "=":
		return query.Eq(field, val), nil
	case "!=":
		return query.Neq(field, val), nil
	case "<":
		return query.Lt(field, val), nil
	case "<=":
		return query.Lte(field, val), nil
	case ">":
		return query.Gt(field, val), nil
	case ">=":
		return query.Gte(field, val), nil
	case "like":
		pattern, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("like needs a text pattern")
		}
		return query.Like(field, pattern), nil
	case "regexp":
		pattern, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("regexp needs a text pattern")
		}
		return query.Regexp(field, pattern), nil
	default:
		return nil, fmt.Errorf("unknown operator %q", op)
	}
}

// predicateFromFlags ANDs every --where clause together. No clauses yield a
// nil predicate, which matches everything.
func predicateFromFlags(clauses []string) (query.Predicate, error) {
	var pred query.Predicate
	for _, clause := range clauses {
		p, err := parseWhere(clause)
		if err != nil {
			return nil, fmt.Errorf("bad --where clause %q: %w", clause, err)
		}
		if pred == nil {
			pred = p
		} else {
			pred = query.And(pred, p)
		}
	}
	return pred, nil
}

// cutToken splits off the first whitespace-delimited token.
func cutToken(s string) (token, rest string) {
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimLeft(s[idx:], " \t")
}
