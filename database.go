// Package magpie is an embedded JSON document store on SQLite.
//
// Documents are JSON bodies kept in one table per collection, identified by
// an id extracted live from the body through a generated virtual column.
// Queries are built with the magpie/query package and rendered into SQL with
// every scalar operand bound as a positional parameter. JSON fields can be
// promoted to indexed generated columns for fast lookups and ordering.
package magpie

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Database is an open document store.
type Database struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the store at path. Use ":memory:" for a
// transient in-memory store.
func Open(path string) (*Database, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection serializes access; a second pool connection would
	// also address a different database when path is ":memory:".
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %s: %w", pragma, err)
		}
	}

	return &Database{db: db, path: path}, nil
}

// Close releases the underlying connection pool.
func (d *Database) Close() error {
	return d.db.Close()
}

// Path returns the path the store was opened with.
func (d *Database) Path() string {
	return d.path
}

// DB returns the underlying sql.DB for advanced queries.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Collection returns the named collection, creating its backing table and
// the unique index on the extracted id if they do not exist yet. The call is
// idempotent.
func (d *Database) Collection(name string) (*Collection, error) {
	c := &Collection{db: d, name: name}
	ddl := []string{
		"CREATE TABLE IF NOT EXISTS " + c.table() +
			" (body TEXT, id TEXT GENERATED ALWAYS AS (json_extract(body, '$.id')) VIRTUAL NOT NULL)",
		"CREATE UNIQUE INDEX IF NOT EXISTS " + quoteIdent("idx_"+name+"_id") + " ON " + c.table() + " (id)",
	}
	for _, text := range ddl {
		if _, err := d.db.Exec(text); err != nil {
			return nil, sqlErrf(KindSchema, text, err, "create collection %s", name)
		}
	}
	return c, nil
}

// Collections lists the store's collection names.
func (d *Database) Collections() ([]string, error) {
	const text = "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"
	st, err := prepare(d.db, text)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	const op = "list collections"
	rows, err := st.query(KindEnumeration, op)
	if err != nil {
		return nil, err
	}
	return scanAll(rows, text, op, func(rows *sql.Rows) (string, error) {
		var name string
		err := rows.Scan(&name)
		return name, err
	})
}
