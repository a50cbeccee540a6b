package query

// Order is an ORDER BY specification: one document field plus a direction.
// Field paths follow the predicate rule — a leading $ addresses into the
// JSON body, anything else names a column. Ordering never binds parameters.
type Order struct {
	field string
	desc  bool
}

// Asc orders ascending by field.
func Asc(field string) Order { return Order{field: field} }

// Desc orders descending by field.
func Desc(field string) Order { return Order{field: field, desc: true} }

// IsZero reports whether no ordering was requested.
func (o Order) IsZero() bool { return o.field == "" }

// Field returns the ordered field path.
func (o Order) Field() string { return o.field }

// Descending reports the direction.
func (o Order) Descending() bool { return o.desc }

// Expr renders the field as a SQL expression, without direction.
func (o Order) Expr() string {
	var b builder
	b.field(o.field)
	return b.sql.String()
}

// Direction returns the SQL direction keyword.
func (o Order) Direction() string {
	if o.desc {
		return "DESC"
	}
	return "ASC"
}
