package query

import (
	"fmt"
	"strconv"
	"strings"
)

// builder accumulates one rendered fragment: SQL text plus the arguments
// backing its ?N placeholders. A placeholder index is allocated at append
// time as the argument's position in the list, so every bound value in an
// expression tree receives a distinct index regardless of how the tree is
// nested — children of And/Or all append to the same builder.
type builder struct {
	sql  strings.Builder
	args []any
}

// param appends v to the argument list and writes its ?N placeholder.
func (b *builder) param(v Value) {
	b.args = append(b.args, v.Arg())
	b.sql.WriteString("?")
	b.sql.WriteString(strconv.Itoa(len(b.args)))
}

// field writes the SQL expression addressing a document field: JSON paths
// (leading $) extract from the body column, anything else is a bracket-quoted
// column reference.
func (b *builder) field(path string) {
	if strings.HasPrefix(path, "$") {
		b.sql.WriteString("json_extract(body, ")
		b.sql.WriteString(quoteSQLString(path))
		b.sql.WriteString(")")
		return
	}
	b.sql.WriteString(quoteIdent(path))
}

// typeProbe writes the json_type call for a JSON path.
func (b *builder) typeProbe(path string) {
	b.sql.WriteString("json_type(body, ")
	b.sql.WriteString(quoteSQLString(path))
	b.sql.WriteString(")")
}

// quoteSQLString renders s as a single-quoted SQL string literal.
func quoteSQLString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// quoteIdent renders s as a bracket-quoted identifier.
func quoteIdent(s string) string {
	return "[" + strings.ReplaceAll(s, "]", "]]") + "]"
}

func (c comparison) appendSQL(b *builder) error {
	if c.err != nil {
		return c.err
	}
	if c.value.IsNull() {
		return c.appendNullTest(b)
	}
	b.field(c.field)
	b.sql.WriteString(" ")
	b.sql.WriteString(c.op.String())
	b.sql.WriteString(" ")
	b.param(c.value)
	return nil
}

// appendNullTest renders comparisons against null. Equality becomes IS NULL,
// guarded for JSON paths by a json_type probe: extraction returns SQL NULL
// both for an explicit null and for a missing key, and only the former may
// match. Neither form creates a binding entry.
func (c comparison) appendNullTest(b *builder) error {
	switch c.op {
	case CompareEq:
		if strings.HasPrefix(c.field, "$") {
			b.sql.WriteString("(")
			b.field(c.field)
			b.sql.WriteString(" IS NULL AND ")
			b.typeProbe(c.field)
			b.sql.WriteString(" IS NOT NULL)")
			return nil
		}
		b.field(c.field)
		b.sql.WriteString(" IS NULL")
		return nil
	case CompareNeq:
		b.field(c.field)
		b.sql.WriteString(" IS NOT NULL")
		return nil
	default:
		return fmt.Errorf("operator %s does not accept null", c.op)
	}
}

func (p binary) appendSQL(b *builder) error {
	if p.left == nil || p.right == nil {
		return fmt.Errorf("%s with a nil predicate", p.op)
	}
	b.sql.WriteString("(")
	if err := p.left.appendSQL(b); err != nil {
		return err
	}
	b.sql.WriteString(" ")
	b.sql.WriteString(p.op)
	b.sql.WriteString(" ")
	if err := p.right.appendSQL(b); err != nil {
		return err
	}
	b.sql.WriteString(")")
	return nil
}

// Fragment renders p into a boolean SQL fragment. Placeholders are numbered
// ?1..?n densely in argument order and args holds the corresponding values.
// A caller composing the fragment into a larger statement may append further
// arguments, continuing the numbering from len(args)+1.
func Fragment(p Predicate) (sql string, args []any, err error) {
	if p == nil {
		return "", nil, fmt.Errorf("nil predicate")
	}
	var b builder
	if err := p.appendSQL(&b); err != nil {
		return "", nil, err
	}
	return b.sql.String(), b.args, nil
}
