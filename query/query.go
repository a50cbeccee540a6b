// Package query builds filter expressions over JSON document fields and
// renders them into SQL.
//
// Predicates are immutable values composed bottom-up with the comparison
// constructors (Eq, Neq, Lt, Like, ...) and combined with And and Or, then
// rendered once by a collection operation into a boolean SQL fragment plus
// its bound arguments. Scalar operands always travel as positional
// parameters; only field identifiers and fixed operator keywords are
// interpolated into the SQL text, so a composed predicate cannot inject SQL
// and composed parameter indices cannot collide.
package query

import "fmt"

// CompareOp is a comparison operator usable in a field predicate.
type CompareOp int

const (
	CompareEq CompareOp = iota
	CompareNeq
	CompareLt
	CompareLte
	CompareGt
	CompareGte
	CompareLike
	CompareRegexp
)

// String returns the SQL keyword for the operator.
func (op CompareOp) String() string {
	switch op {
	case CompareNeq:
		return "!="
	case CompareLt:
		return "<"
	case CompareLte:
		return "<="
	case CompareGt:
		return ">"
	case CompareGte:
		return ">="
	case CompareLike:
		return "LIKE"
	case CompareRegexp:
		return "REGEXP"
	default:
		return "="
	}
}

// Predicate is one node of a filter expression. The interface is sealed:
// expression trees are built with the constructors in this package, and a
// value of any shape is passed to collection operations through this one
// type.
//
// Field paths starting with $ address into the JSON body; any other path
// names a table column (typically one materialized by an index call).
type Predicate interface {
	appendSQL(b *builder) error
}

// comparison is a single field-operator-operand test.
type comparison struct {
	field string
	op    CompareOp
	value Value
	err   error // deferred operand conversion failure, reported at render
}

// binary is a boolean combination of two predicates.
type binary struct {
	op          string // AND or OR
	left, right Predicate
}

func compare(field string, op CompareOp, value any) Predicate {
	v, err := NewValue(value)
	if err != nil {
		return comparison{field: field, op: op, err: fmt.Errorf("predicate on %s: %w", field, err)}
	}
	return comparison{field: field, op: op, value: v}
}

// Eq matches documents whose field equals value. A nil value matches fields
// that are present with an explicit JSON null, not fields that are absent.
func Eq(field string, value any) Predicate { return compare(field, CompareEq, value) }

// Neq matches documents whose field differs from value. A nil value matches
// fields that are present with a non-null value.
func Neq(field string, value any) Predicate { return compare(field, CompareNeq, value) }

// Lt matches documents whose field is less than value.
func Lt(field string, value any) Predicate { return compare(field, CompareLt, value) }

// Lte matches documents whose field is less than or equal to value.
func Lte(field string, value any) Predicate { return compare(field, CompareLte, value) }

// Gt matches documents whose field is greater than value.
func Gt(field string, value any) Predicate { return compare(field, CompareGt, value) }

// Gte matches documents whose field is greater than or equal to value.
func Gte(field string, value any) Predicate { return compare(field, CompareGte, value) }

// Like matches documents whose field matches the SQL LIKE pattern.
func Like(field string, pattern string) Predicate { return compare(field, CompareLike, pattern) }

// Regexp matches documents whose field matches the regular expression,
// evaluated by the regexp() function registered into the engine.
func Regexp(field string, pattern string) Predicate { return compare(field, CompareRegexp, pattern) }

// And matches documents satisfying both predicates.
func And(left, right Predicate) Predicate { return binary{op: "AND", left: left, right: right} }

// Or matches documents satisfying either predicate.
func Or(left, right Predicate) Predicate { return binary{op: "OR", left: left, right: right} }
