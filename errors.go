package magpie

import "fmt"

// Kind classifies a store failure.
type Kind string

const (
	KindSchema      Kind = "schema"      // table or index DDL failed
	KindStatement   Kind = "statement"   // statement failed to compile or run
	KindBind        Kind = "bind"        // parameter rejected or unconvertible
	KindNullField   Kind = "null field"  // NULL decoded as a non-optional type
	KindNotFound    Kind = "not found"   // document or path absent
	KindInsert      Kind = "insert"      // INSERT failed, e.g. duplicate id
	KindUpdate      Kind = "update"      // UPDATE failed, e.g. malformed JSON
	KindDelete      Kind = "delete"      // DELETE failed
	KindEnumeration Kind = "enumeration" // row scan failed mid-iteration
)

// Error is the error type returned by store operations. Op describes the
// attempted operation, SQL carries the offending statement when one exists
// and Err is the underlying engine error.
type Error struct {
	Kind Kind
	Op   string
	SQL  string
	Err  error
}

func (e *Error) Error() string {
	msg := string(e.Kind) + " error"
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.SQL != "" {
		msg += " (sql: " + e.SQL + ")"
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the kind sentinels, so errors.Is(err, ErrNotFound) reports
// whether err carries KindNotFound anywhere in its chain.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Op == "" && t.SQL == "" && t.Err == nil
}

// Kind sentinels for errors.Is.
var (
	ErrSchema      = &Error{Kind: KindSchema}
	ErrStatement   = &Error{Kind: KindStatement}
	ErrBind        = &Error{Kind: KindBind}
	ErrNullField   = &Error{Kind: KindNullField}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrInsert      = &Error{Kind: KindInsert}
	ErrUpdate      = &Error{Kind: KindUpdate}
	ErrDelete      = &Error{Kind: KindDelete}
	ErrEnumeration = &Error{Kind: KindEnumeration}
)

// errf builds an *Error wrapping err, with a formatted operation description.
func errf(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: fmt.Sprintf(format, args...), Err: err}
}

// sqlErrf is errf with the offending SQL attached.
func sqlErrf(kind Kind, sqlText string, err error, format string, args ...any) *Error {
	e := errf(kind, err, format, args...)
	e.SQL = sqlText
	return e
}
