package magpie

import (
	"database/sql"
	"errors"
	"strings"
)

// statement pairs one prepared statement with the SQL text it was compiled
// from, so every failure can report the offending statement. A statement is
// acquired with prepare and released with Close; callers defer the Close so
// the handle is finalized on every exit path.
type statement struct {
	text string
	stmt *sql.Stmt
}

// prepare compiles text against the connection.
func prepare(db *sql.DB, text string) (*statement, error) {
	stmt, err := db.Prepare(text)
	if err != nil {
		return nil, sqlErrf(KindStatement, text, err, "prepare statement")
	}
	return &statement{text: text, stmt: stmt}, nil
}

func (s *statement) Close() error {
	return s.stmt.Close()
}

// exec runs the statement with args bound positionally; a failure is
// classified under kind and labelled with op.
func (s *statement) exec(kind Kind, op string, args ...any) (sql.Result, error) {
	res, err := s.stmt.Exec(args...)
	if err != nil {
		return nil, sqlErrf(kind, s.text, err, "%s", op)
	}
	return res, nil
}

// query runs the statement returning rows. The caller owns the rows; "no
// rows" is not an error, and scan failures are read from rows.Err after the
// iteration (scanAll folds both in).
func (s *statement) query(kind Kind, op string, args ...any) (*sql.Rows, error) {
	rows, err := s.stmt.Query(args...)
	if err != nil {
		return nil, sqlErrf(kind, s.text, err, "%s", op)
	}
	return rows, nil
}

// queryRow runs the statement expecting one row and scans it into dest. A
// missing row is a not-found failure; anything else classifies under kind.
func (s *statement) queryRow(kind Kind, op string, dest []any, args ...any) error {
	err := s.stmt.QueryRow(args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return sqlErrf(KindNotFound, s.text, err, "%s", op)
	}
	if err != nil {
		return sqlErrf(kind, s.text, err, "%s", op)
	}
	return nil
}

// scanAll drains rows with scan, closing them and folding the row-iteration
// side channel into the returned error as an enumeration failure.
func scanAll[T any](rows *sql.Rows, text, op string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, sqlErrf(KindEnumeration, text, err, "%s", op)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlErrf(KindEnumeration, text, err, "%s", op)
	}
	return out, nil
}

// quoteIdent renders s as a bracket-quoted SQL identifier.
func quoteIdent(s string) string {
	return "[" + strings.ReplaceAll(s, "]", "]]") + "]"
}

// quoteString renders s as a single-quoted SQL string literal.
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
