package magpie

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aidanlsb/magpie/query"
)

// Collection is the table-level API of one document collection. Handles are
// cheap: they carry only the name and the owning database.
type Collection struct {
	db   *Database
	name string
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// table returns the bracket-quoted table identifier.
func (c *Collection) table() string { return quoteIdent(c.name) }

// NewDoc inserts a document with a freshly generated 36-character id.
func (c *Collection) NewDoc() (*Document, error) {
	return c.Create(uuid.NewString())
}

// Create inserts a document whose body contains only the given id. Fails
// with ErrInsert on constraint violations such as a duplicate id.
func (c *Collection) Create(id string) (*Document, error) {
	text := "INSERT INTO " + c.table() + " (body) VALUES (json_object('id', ?1))"
	st, err := prepare(c.db.db, text)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	if _, err := st.exec(KindInsert, fmt.Sprintf("create document %q in %s", id, c.name), id); err != nil {
		return nil, err
	}
	return &Document{col: c, id: id}, nil
}

// Doc fetches the document with the given id, ErrNotFound if absent.
func (c *Collection) Doc(id string) (*Document, error) {
	d := &Document{col: c, id: id}
	if _, err := d.Body(); err != nil {
		return nil, err
	}
	return d, nil
}

// Docs enumerates every document in the collection.
func (c *Collection) Docs() ([]Ref, error) {
	return c.Find(nil)
}

// findSpec collects Find options.
type findSpec struct {
	order query.Order
	limit int
}

// FindOption adjusts a Find enumeration.
type FindOption func(*findSpec)

// OrderBy sorts results by the given order spec.
func OrderBy(o query.Order) FindOption {
	return func(s *findSpec) { s.order = o }
}

// Limit caps the number of results. Non-positive values mean no limit.
func Limit(n int) FindOption {
	return func(s *findSpec) { s.limit = n }
}

// Find enumerates documents matching the predicate as lightweight refs. A
// nil predicate matches every document. The rendered statement binds every
// scalar — the predicate's operands and the limit — as positional
// parameters; only field expressions and operator keywords appear in the
// SQL text.
func (c *Collection) Find(p query.Predicate, opts ...FindOption) ([]Ref, error) {
	var spec findSpec
	for _, opt := range opts {
		opt(&spec)
	}

	cols := "id"
	ordered := !spec.order.IsZero()
	if ordered {
		cols += ", " + spec.order.Expr()
	}
	text := "SELECT " + cols + " FROM " + c.table()

	var args []any
	if p != nil {
		frag, fragArgs, err := query.Fragment(p)
		if err != nil {
			return nil, errf(KindBind, err, "render predicate for %s", c.name)
		}
		text += " WHERE " + frag
		args = fragArgs
	}
	if ordered {
		text += " ORDER BY " + spec.order.Expr() + " " + spec.order.Direction()
	}
	if spec.limit > 0 {
		args = append(args, spec.limit)
		text += " LIMIT ?" + strconv.Itoa(len(args))
	}

	st, err := prepare(c.db.db, text)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	op := "find documents in " + c.name
	rows, err := st.query(KindEnumeration, op, args...)
	if err != nil {
		return nil, err
	}
	return scanAll(rows, text, op, func(rows *sql.Rows) (Ref, error) {
		var id string
		if ordered {
			var sortKey any
			if err := rows.Scan(&id, &sortKey); err != nil {
				return Ref{}, err
			}
		} else if err := rows.Scan(&id); err != nil {
			return Ref{}, err
		}
		return Ref{col: c, id: id}, nil
	})
}

// Count returns the number of documents in the collection.
func (c *Collection) Count() (int64, error) {
	return c.count(nil)
}

// CountWhere returns the number of documents matching the predicate.
func (c *Collection) CountWhere(p query.Predicate) (int64, error) {
	return c.count(p)
}

func (c *Collection) count(p query.Predicate) (int64, error) {
	text := "SELECT COUNT(*) FROM " + c.table()
	var args []any
	if p != nil {
		frag, fragArgs, err := query.Fragment(p)
		if err != nil {
			return 0, errf(KindBind, err, "render predicate for %s", c.name)
		}
		text += " WHERE " + frag
		args = fragArgs
	}

	st, err := prepare(c.db.db, text)
	if err != nil {
		return 0, err
	}
	defer st.Close()

	var n int64
	if err := st.queryRow(KindEnumeration, "count documents in "+c.name, []any{&n}, args...); err != nil {
		return 0, err
	}
	return n, nil
}

// Remove deletes the document with the given id. An id with no backing row
// is not an error.
func (c *Collection) Remove(id string) error {
	text := "DELETE FROM " + c.table() + " WHERE id = ?1"
	st, err := prepare(c.db.db, text)
	if err != nil {
		return err
	}
	defer st.Close()

	_, err = st.exec(KindDelete, fmt.Sprintf("remove document %q from %s", id, c.name), id)
	return err
}

// IndexColumn names one materialized column and the JSON path it extracts.
type IndexColumn struct {
	Column string
	Path   string
}

// Index promotes a JSON path to a generated column and indexes it, named
// idx_<collection>_<column>, optionally unique. The promoted column carries
// no declared type, so extracted values keep their JSON-native ordering;
// repeat calls are no-ops.
func (c *Collection) Index(column, path string, unique bool) error {
	if err := c.addGeneratedColumn(c.db.db, column, path); err != nil {
		return err
	}
	text := createIndexSQL(c.name, "idx_"+c.name+"_"+column, []string{column}, unique)
	if _, err := c.db.db.Exec(text); err != nil {
		return sqlErrf(KindSchema, text, err, "index %s on %s", column, c.name)
	}
	return nil
}

// CompositeIndex materializes several JSON paths and creates one index
// covering all of them, inside a single transaction: on failure the
// transaction rolls back and no partially-applied columns remain.
func (c *Collection) CompositeIndex(name string, columns []IndexColumn, unique bool) error {
	if len(columns) == 0 {
		return errf(KindSchema, nil, "composite index %s on %s has no columns", name, c.name)
	}

	tx, err := c.db.db.Begin()
	if err != nil {
		return errf(KindSchema, err, "begin index transaction on %s", c.name)
	}
	defer tx.Rollback()

	names := make([]string, len(columns))
	for i, col := range columns {
		if err := c.addGeneratedColumn(tx, col.Column, col.Path); err != nil {
			return err
		}
		names[i] = col.Column
	}
	text := createIndexSQL(c.name, name, names, unique)
	if _, err := tx.Exec(text); err != nil {
		return sqlErrf(KindSchema, text, err, "create index %s on %s", name, c.name)
	}
	if err := tx.Commit(); err != nil {
		return errf(KindSchema, err, "commit index %s on %s", name, c.name)
	}
	return nil
}

// execer abstracts *sql.DB and *sql.Tx for schema statements.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// columnExists probes the table's live schema for the named column.
func (c *Collection) columnExists(e execer, column string) (bool, error) {
	const text = "SELECT COUNT(*) FROM pragma_table_info(?1) WHERE name = ?2"
	var n int64
	if err := e.QueryRow(text, c.name, column).Scan(&n); err != nil {
		return false, sqlErrf(KindSchema, text, err, "inspect columns of %s", c.name)
	}
	return n > 0, nil
}

// addGeneratedColumn adds the virtual extraction column if it is absent.
func (c *Collection) addGeneratedColumn(e execer, column, path string) error {
	exists, err := c.columnExists(e, column)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	text := "ALTER TABLE " + c.table() + " ADD COLUMN " + quoteIdent(column) +
		" GENERATED ALWAYS AS (json_extract(body, " + quoteString(path) + ")) VIRTUAL"
	if _, err := e.Exec(text); err != nil {
		return sqlErrf(KindSchema, text, err, "materialize %s as %s on %s", path, column, c.name)
	}
	return nil
}

func createIndexSQL(table, name string, columns []string, unique bool) string {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdent(col)
	}
	keyword := "INDEX"
	if unique {
		keyword = "UNIQUE INDEX"
	}
	return "CREATE " + keyword + " IF NOT EXISTS " + quoteIdent(name) +
		" ON " + quoteIdent(table) + " (" + strings.Join(quoted, ", ") + ")"
}
