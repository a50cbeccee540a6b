package magpie

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aidanlsb/magpie/query"
)

// Ref is a lightweight reference to a document, produced by enumeration.
type Ref struct {
	col *Collection
	id  string
}

// ID returns the referenced document id.
func (r Ref) ID() string { return r.id }

// Collection returns the owning collection.
func (r Ref) Collection() *Collection { return r.col }

// Doc resolves the reference, fetching the document body.
func (r Ref) Doc() (*Document, error) {
	return r.col.Doc(r.id)
}

// JSONType is the dynamic type of a value inside a stored document, as
// reported by the engine's json_type.
type JSONType int

const (
	TypeNotFound JSONType = iota
	TypeNull
	TypeTrue
	TypeFalse
	TypeInteger
	TypeReal
	TypeString
	TypeArray
	TypeObject
)

func (t JSONType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeTrue:
		return "true"
	case TypeFalse:
		return "false"
	case TypeInteger:
		return "integer"
	case TypeReal:
		return "real"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "not found"
	}
}

// jsonTypeFromName maps json_type's vocabulary. The engine reports strings
// as "text"; a missing path reports SQL NULL and maps to TypeNotFound.
func jsonTypeFromName(name string) JSONType {
	switch name {
	case "null":
		return TypeNull
	case "true":
		return TypeTrue
	case "false":
		return TypeFalse
	case "integer":
		return TypeInteger
	case "real":
		return TypeReal
	case "text":
		return TypeString
	case "array":
		return TypeArray
	case "object":
		return TypeObject
	default:
		return TypeNotFound
	}
}

// Document is a handle to one stored JSON document. The body is cached on
// the handle: mutations through the handle invalidate the cache and the next
// read re-fetches it. Two handles to the same row do not observe each
// other's writes until their own cache is invalidated.
type Document struct {
	col   *Collection
	id    string
	body  string
	valid bool
}

// ID returns the immutable document id.
func (d *Document) ID() string { return d.id }

// Body returns the document's JSON text, re-fetching it if a mutation has
// invalidated the cached copy. ErrNotFound if the backing row is gone.
func (d *Document) Body() (string, error) {
	if d.valid {
		return d.body, nil
	}
	text := "SELECT body FROM " + d.col.table() + " WHERE id = ?1"
	st, err := prepare(d.col.db.db, text)
	if err != nil {
		return "", err
	}
	defer st.Close()

	var body string
	op := fmt.Sprintf("fetch document %q from %s", d.id, d.col.name)
	if err := st.queryRow(KindStatement, op, []any{&body}, d.id); err != nil {
		return "", err
	}
	d.body = body
	d.valid = true
	return d.body, nil
}

// update runs one UPDATE against the backing row and invalidates the cache.
// Zero matched rows means the row is gone and reports ErrNotFound.
func (d *Document) update(op, text string, args ...any) error {
	st, err := prepare(d.col.db.db, text)
	if err != nil {
		return err
	}
	defer st.Close()

	res, err := st.exec(KindUpdate, op, args...)
	d.valid = false
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errf(KindUpdate, err, "%s", op)
	}
	if n == 0 {
		return sqlErrf(KindNotFound, text, nil, "%s", op)
	}
	return nil
}

// SetBody replaces the document body. The stored id is merged into the
// incoming JSON before storing, so a body that omits or alters the id field
// cannot detach the document from its id. Malformed JSON fails with
// ErrUpdate when the engine evaluates the merge.
func (d *Document) SetBody(body string) error {
	text := "UPDATE " + d.col.table() + " SET body = json_set(?1, '$.id', ?2) WHERE id = ?2"
	return d.update(fmt.Sprintf("replace body of %q in %s", d.id, d.col.name), text, body, d.id)
}

// Set upserts the value at a JSON path.
func (d *Document) Set(path string, value any) error {
	return d.mutatePath("json_set", "set", path, value)
}

// Insert writes the value at a JSON path only if the path is absent; an
// existing value is left untouched.
func (d *Document) Insert(path string, value any) error {
	return d.mutatePath("json_insert", "insert", path, value)
}

// Replace writes the value at a JSON path only if the path already exists;
// an absent path is left absent.
func (d *Document) Replace(path string, value any) error {
	return d.mutatePath("json_replace", "replace", path, value)
}

func (d *Document) mutatePath(fn, verb, path string, value any) error {
	op := fmt.Sprintf("%s %s on %q in %s", verb, path, d.id, d.col.name)
	v, err := query.NewValue(value)
	if err != nil {
		return errf(KindBind, err, "%s", op)
	}
	text := "UPDATE " + d.col.table() + " SET body = " + fn + "(body, ?1, ?2) WHERE id = ?3"
	return d.update(op, text, path, v.Arg(), d.id)
}

// Patch applies a JSON merge-patch: patch keys overwrite the body's, and a
// null patch value deletes the key.
func (d *Document) Patch(patch string) error {
	text := "UPDATE " + d.col.table() + " SET body = json_patch(body, ?1) WHERE id = ?2"
	return d.update(fmt.Sprintf("patch %q in %s", d.id, d.col.name), text, patch, d.id)
}

// Erase deletes the backing row via the owning collection. The handle is
// unusable afterwards except for ID.
func (d *Document) Erase() error {
	d.valid = false
	return d.col.Remove(d.id)
}

// probe reads json_type and json_extract for one path in a single statement.
func (d *Document) probe(path string) (typ sql.NullString, raw any, err error) {
	text := "SELECT json_type(body, ?1), json_extract(body, ?1) FROM " + d.col.table() + " WHERE id = ?2"
	st, err := prepare(d.col.db.db, text)
	if err != nil {
		return sql.NullString{}, nil, err
	}
	defer st.Close()

	op := fmt.Sprintf("read %s of %q in %s", path, d.id, d.col.name)
	if err := st.queryRow(KindStatement, op, []any{&typ, &raw}, path, d.id); err != nil {
		return sql.NullString{}, nil, err
	}
	return typ, raw, nil
}

func (d *Document) pathErr(kind Kind, path, msg string) *Error {
	return errf(kind, nil, "read %s of %q in %s: %s", path, d.id, d.col.name, msg)
}

// GetString extracts the value at path as text. An absent path or missing
// document fails with ErrNotFound; an explicit JSON null fails with
// ErrNullField. Non-text scalars render under the engine's text coercion.
func (d *Document) GetString(path string) (string, error) {
	typ, raw, err := d.probe(path)
	if err != nil {
		return "", err
	}
	if !typ.Valid {
		return "", d.pathErr(KindNotFound, path, "no such path")
	}
	if typ.String == "null" {
		return "", d.pathErr(KindNullField, path, "value is null")
	}
	switch v := raw.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// GetInt extracts the value at path as an integer. Absence and null report
// as in GetString; non-integer scalars coerce under the engine's numeric
// rules (reals truncate, non-numeric text reads as 0).
func (d *Document) GetInt(path string) (int64, error) {
	typ, raw, err := d.probe(path)
	if err != nil {
		return 0, err
	}
	if !typ.Valid {
		return 0, d.pathErr(KindNotFound, path, "no such path")
	}
	if typ.String == "null" {
		return 0, d.pathErr(KindNullField, path, "value is null")
	}
	return coerceInt64(raw), nil
}

// GetFloat extracts the value at path as a float, with the same coercion
// contract as GetInt.
func (d *Document) GetFloat(path string) (float64, error) {
	typ, raw, err := d.probe(path)
	if err != nil {
		return 0, err
	}
	if !typ.Valid {
		return 0, d.pathErr(KindNotFound, path, "no such path")
	}
	if typ.String == "null" {
		return 0, d.pathErr(KindNullField, path, "value is null")
	}
	return coerceFloat64(raw), nil
}

func coerceInt64(raw any) int64 {
	switch v := raw.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		return parseInt64(v)
	case []byte:
		return parseInt64(string(v))
	default:
		return 0
	}
}

func coerceFloat64(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		return parseFloat64(v)
	case []byte:
		return parseFloat64(string(v))
	default:
		return 0
	}
}

func parseInt64(s string) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return int64(parseFloat64(s))
}

func parseFloat64(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// GetType probes the dynamic JSON type at path without failing on absence:
// a missing path and a missing document both report TypeNotFound.
func (d *Document) GetType(path string) (JSONType, error) {
	text := "SELECT json_type(body, ?1) FROM " + d.col.table() + " WHERE id = ?2"
	st, err := prepare(d.col.db.db, text)
	if err != nil {
		return TypeNotFound, err
	}
	defer st.Close()

	var typ sql.NullString
	err = st.stmt.QueryRow(path, d.id).Scan(&typ)
	if errors.Is(err, sql.ErrNoRows) {
		return TypeNotFound, nil
	}
	if err != nil {
		return TypeNotFound, sqlErrf(KindStatement, text, err,
			"probe type of %s on %q in %s", path, d.id, d.col.name)
	}
	if !typ.Valid {
		return TypeNotFound, nil
	}
	return jsonTypeFromName(typ.String), nil
}

// ArrayLength returns the length of the array at path, failing when the
// path is absent or holds something other than an array.
func (d *Document) ArrayLength(path string) (int, error) {
	text := "SELECT json_type(body, ?1), json_array_length(body, ?1) FROM " + d.col.table() + " WHERE id = ?2"
	st, err := prepare(d.col.db.db, text)
	if err != nil {
		return 0, err
	}
	defer st.Close()

	var typ sql.NullString
	var length int
	op := fmt.Sprintf("read array length of %s on %q in %s", path, d.id, d.col.name)
	if err := st.queryRow(KindStatement, op, []any{&typ, &length}, path, d.id); err != nil {
		return 0, err
	}
	if !typ.Valid {
		return 0, d.pathErr(KindNotFound, path, "no such path")
	}
	if typ.String != "array" {
		return 0, d.pathErr(KindNotFound, path, "value is not an array")
	}
	return length, nil
}

// ObjectKeys returns the keys of the object at path in storage order,
// failing when the path is absent or holds something other than an object.
func (d *Document) ObjectKeys(path string) ([]string, error) {
	typ, _, err := d.probe(path)
	if err != nil {
		return nil, err
	}
	if !typ.Valid {
		return nil, d.pathErr(KindNotFound, path, "no such path")
	}
	if typ.String != "object" {
		return nil, d.pathErr(KindNotFound, path, "value is not an object")
	}

	text := "SELECT je.key FROM " + d.col.table() + " AS t, json_each(t.body, ?1) AS je WHERE t.id = ?2"
	st, err := prepare(d.col.db.db, text)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	op := fmt.Sprintf("enumerate keys of %s on %q in %s", path, d.id, d.col.name)
	rows, err := st.query(KindEnumeration, op, path, d.id)
	if err != nil {
		return nil, err
	}
	return scanAll(rows, text, op, func(rows *sql.Rows) (string, error) {
		var key string
		err := rows.Scan(&key)
		return key, err
	})
}

// Values extracts several paths in one read, aligned with the request.
// Absent paths and explicit nulls both come back as the null Value; use
// GetType to tell them apart. Objects and arrays come back as their JSON
// text.
func (d *Document) Values(paths ...string) ([]query.Value, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	cols := make([]string, len(paths))
	args := make([]any, 0, len(paths)+1)
	for i, path := range paths {
		args = append(args, path)
		cols[i] = "json_extract(body, ?" + strconv.Itoa(len(args)) + ")"
	}
	args = append(args, d.id)
	text := "SELECT " + strings.Join(cols, ", ") + " FROM " + d.col.table() +
		" WHERE id = ?" + strconv.Itoa(len(args))

	st, err := prepare(d.col.db.db, text)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	raw := make([]any, len(paths))
	dest := make([]any, len(paths))
	for i := range raw {
		dest[i] = &raw[i]
	}
	op := fmt.Sprintf("read %d fields of %q in %s", len(paths), d.id, d.col.name)
	if err := st.queryRow(KindStatement, op, dest, args...); err != nil {
		return nil, err
	}

	out := make([]query.Value, len(paths))
	for i, r := range raw {
		out[i] = valueFromColumn(r)
	}
	return out, nil
}

// valueFromColumn converts a scanned column into the closed Value variant.
func valueFromColumn(raw any) query.Value {
	switch v := raw.(type) {
	case nil:
		return query.Null()
	case int64:
		return query.Int64(v)
	case float64:
		return query.Float64(v)
	case string:
		return query.String(v)
	case []byte:
		return query.String(string(v))
	default:
		return query.String(fmt.Sprint(v))
	}
}
