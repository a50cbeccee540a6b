package magpie

import (
	"errors"
	"strings"
	"testing"

	"github.com/aidanlsb/magpie/query"
)

func testDoc(t *testing.T, id string) *Document {
	t.Helper()
	doc, err := testCollection(t, "docs").Create(id)
	if err != nil {
		t.Fatalf("create %q: %v", id, err)
	}
	return doc
}

func TestCreate_BodyHoldsOnlyID(t *testing.T) {
	doc := testDoc(t, "abc")
	body, err := doc.Body()
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	if body != `{"id":"abc"}` {
		t.Errorf("body = %s", body)
	}
}

func TestSet_RoundTripsScalars(t *testing.T) {
	doc := testDoc(t, "abc")

	if err := doc.Set("$.name", "apple"); err != nil {
		t.Fatalf("set string: %v", err)
	}
	if got, err := doc.GetString("$.name"); err != nil || got != "apple" {
		t.Errorf("GetString = %q, %v", got, err)
	}

	if err := doc.Set("$.count", 42); err != nil {
		t.Fatalf("set int: %v", err)
	}
	if got, err := doc.GetInt("$.count"); err != nil || got != 42 {
		t.Errorf("GetInt = %d, %v", got, err)
	}

	if err := doc.Set("$.small", int32(-7)); err != nil {
		t.Fatalf("set int32: %v", err)
	}
	if got, err := doc.GetInt("$.small"); err != nil || got != -7 {
		t.Errorf("GetInt = %d, %v", got, err)
	}

	if err := doc.Set("$.price", 2.25); err != nil {
		t.Fatalf("set float: %v", err)
	}
	if got, err := doc.GetFloat("$.price"); err != nil || got != 2.25 {
		t.Errorf("GetFloat = %g, %v", got, err)
	}

	if err := doc.Set("$.ratio", float32(0.5)); err != nil {
		t.Fatalf("set float32: %v", err)
	}
	if got, err := doc.GetFloat("$.ratio"); err != nil || got != 0.5 {
		t.Errorf("GetFloat = %g, %v", got, err)
	}
}

func TestSet_RejectsUnsupportedValue(t *testing.T) {
	doc := testDoc(t, "abc")
	err := doc.Set("$.bad", map[string]int{"a": 1})
	if !errors.Is(err, ErrBind) {
		t.Fatalf("err = %v, want ErrBind", err)
	}
}

func TestGetters_Coercion(t *testing.T) {
	doc := testDoc(t, "abc")
	if err := doc.Set("$.rank", 3); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := doc.Set("$.version", "42"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := doc.Set("$.label", "banana"); err != nil {
		t.Fatalf("set: %v", err)
	}

	// The typed getters follow the engine's coercion: numbers render as
	// text, numeric text parses, non-numeric text reads as zero.
	if got, err := doc.GetString("$.rank"); err != nil || got != "3" {
		t.Errorf("GetString on integer = %q, %v", got, err)
	}
	if got, err := doc.GetInt("$.version"); err != nil || got != 42 {
		t.Errorf("GetInt on numeric text = %d, %v", got, err)
	}
	if got, err := doc.GetInt("$.label"); err != nil || got != 0 {
		t.Errorf("GetInt on text = %d, %v", got, err)
	}
	if got, err := doc.GetFloat("$.rank"); err != nil || got != 3 {
		t.Errorf("GetFloat on integer = %g, %v", got, err)
	}
}

func TestGetters_AbsentAndNull(t *testing.T) {
	doc := testDoc(t, "abc")
	if err := doc.Set("$.note", nil); err != nil {
		t.Fatalf("set null: %v", err)
	}

	if _, err := doc.GetString("$.missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("absent path: err = %v, want ErrNotFound", err)
	}
	if _, err := doc.GetString("$.note"); !errors.Is(err, ErrNullField) {
		t.Errorf("null value: err = %v, want ErrNullField", err)
	}
	if _, err := doc.GetInt("$.note"); !errors.Is(err, ErrNullField) {
		t.Errorf("null value: err = %v, want ErrNullField", err)
	}
	if _, err := doc.GetFloat("$.missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("absent path: err = %v, want ErrNotFound", err)
	}
}

func TestInsert_NoopWhenPresent(t *testing.T) {
	doc := testDoc(t, "abc")
	if err := doc.Set("$.a", 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	before, err := doc.Body()
	if err != nil {
		t.Fatalf("Body: %v", err)
	}

	if err := doc.Insert("$.a", 99); err != nil {
		t.Fatalf("insert: %v", err)
	}
	after, err := doc.Body()
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	if after != before {
		t.Errorf("insert over existing key changed the body: %s -> %s", before, after)
	}

	if err := doc.Insert("$.b", 2); err != nil {
		t.Fatalf("insert new key: %v", err)
	}
	if got, err := doc.GetInt("$.b"); err != nil || got != 2 {
		t.Errorf("GetInt = %d, %v", got, err)
	}
}

func TestReplace_NoopWhenAbsent(t *testing.T) {
	doc := testDoc(t, "abc")
	before, err := doc.Body()
	if err != nil {
		t.Fatalf("Body: %v", err)
	}

	if err := doc.Replace("$.missing", 1); err != nil {
		t.Fatalf("replace: %v", err)
	}
	after, err := doc.Body()
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	if after != before {
		t.Errorf("replace of absent key changed the body: %s -> %s", before, after)
	}

	if err := doc.Set("$.a", 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := doc.Replace("$.a", 5); err != nil {
		t.Fatalf("replace existing: %v", err)
	}
	if got, err := doc.GetInt("$.a"); err != nil || got != 5 {
		t.Errorf("GetInt = %d, %v", got, err)
	}
}

func TestPatch_MergeSemantics(t *testing.T) {
	doc := testDoc(t, "abc")
	if err := doc.Set("$.keep", "yes"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := doc.Set("$.drop", "old"); err != nil {
		t.Fatalf("set: %v", err)
	}

	// Patch keys overwrite; a null value deletes the key.
	if err := doc.Patch(`{"drop": null, "added": 7}`); err != nil {
		t.Fatalf("patch: %v", err)
	}

	if got, err := doc.GetString("$.keep"); err != nil || got != "yes" {
		t.Errorf("untouched key = %q, %v", got, err)
	}
	if typ, err := doc.GetType("$.drop"); err != nil || typ != TypeNotFound {
		t.Errorf("deleted key type = %v, %v", typ, err)
	}
	if got, err := doc.GetInt("$.added"); err != nil || got != 7 {
		t.Errorf("added key = %d, %v", got, err)
	}
}

func TestSetBody_PreservesID(t *testing.T) {
	col := testCollection(t, "docs")
	doc, err := col.Create("abc")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := doc.SetBody(`{"name": "apple"}`); err != nil {
		t.Fatalf("SetBody: %v", err)
	}
	body, err := doc.Body()
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	if !strings.Contains(body, `"id":"abc"`) {
		t.Errorf("body lost its id: %s", body)
	}

	// Even a body that names a different id stays attached to the row.
	if err := doc.SetBody(`{"id": "evil", "name": "pear"}`); err != nil {
		t.Fatalf("SetBody: %v", err)
	}
	if got, err := doc.GetString("$.id"); err != nil || got != "abc" {
		t.Errorf("id after hostile body = %q, %v", got, err)
	}
	if _, err := col.Doc("evil"); !errors.Is(err, ErrNotFound) {
		t.Errorf("a document appeared under the hostile id: %v", err)
	}
}

func TestSetBody_MalformedJSON(t *testing.T) {
	doc := testDoc(t, "abc")
	err := doc.SetBody(`{"name": `)
	if err == nil {
		t.Fatalf("expected malformed JSON to fail")
	}
	if !errors.Is(err, ErrUpdate) {
		t.Errorf("err = %v, want ErrUpdate", err)
	}
}

func TestGetType_Table(t *testing.T) {
	doc := testDoc(t, "abc")
	if err := doc.Set("$.s", "text"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := doc.Set("$.i", 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := doc.Set("$.r", 1.5); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := doc.Set("$.n", nil); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := doc.Patch(`{"t": true, "f": false, "a": [1, 2], "o": {"k": 1}}`); err != nil {
		t.Fatalf("patch: %v", err)
	}

	tests := []struct {
		path string
		want JSONType
	}{
		{"$.s", TypeString},
		{"$.i", TypeInteger},
		{"$.r", TypeReal},
		{"$.n", TypeNull},
		{"$.t", TypeTrue},
		{"$.f", TypeFalse},
		{"$.a", TypeArray},
		{"$.o", TypeObject},
		{"$.missing", TypeNotFound},
		{"$", TypeObject},
	}
	for _, tt := range tests {
		got, err := doc.GetType(tt.path)
		if err != nil {
			t.Fatalf("GetType(%s): %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("GetType(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestGetType_MissingDocument(t *testing.T) {
	doc := testDoc(t, "abc")
	if err := doc.Erase(); err != nil {
		t.Fatalf("erase: %v", err)
	}
	typ, err := doc.GetType("$.anything")
	if err != nil {
		t.Fatalf("GetType: %v", err)
	}
	if typ != TypeNotFound {
		t.Errorf("type = %v, want TypeNotFound", typ)
	}
}

func TestArrayLength(t *testing.T) {
	doc := testDoc(t, "abc")
	if err := doc.Patch(`{"tags": ["a", "b", "c"], "name": "x"}`); err != nil {
		t.Fatalf("patch: %v", err)
	}

	n, err := doc.ArrayLength("$.tags")
	if err != nil {
		t.Fatalf("ArrayLength: %v", err)
	}
	if n != 3 {
		t.Errorf("length = %d, want 3", n)
	}

	if _, err := doc.ArrayLength("$.name"); !errors.Is(err, ErrNotFound) {
		t.Errorf("non-array: err = %v, want ErrNotFound", err)
	}
	if _, err := doc.ArrayLength("$.missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("absent: err = %v, want ErrNotFound", err)
	}
}

func TestObjectKeys(t *testing.T) {
	doc := testDoc(t, "abc")
	if err := doc.Patch(`{"meta": {"author": "freya", "year": 2026}}`); err != nil {
		t.Fatalf("patch: %v", err)
	}

	keys, err := doc.ObjectKeys("$.meta")
	if err != nil {
		t.Fatalf("ObjectKeys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "author" || keys[1] != "year" {
		t.Errorf("keys = %v", keys)
	}

	root, err := doc.ObjectKeys("$")
	if err != nil {
		t.Fatalf("ObjectKeys($): %v", err)
	}
	found := map[string]bool{}
	for _, k := range root {
		found[k] = true
	}
	if len(root) != 2 || !found["id"] || !found["meta"] {
		t.Errorf("root keys = %v", root)
	}

	if _, err := doc.ObjectKeys("$.meta.author"); !errors.Is(err, ErrNotFound) {
		t.Errorf("non-object: err = %v, want ErrNotFound", err)
	}
}

func TestValues_MultiPathRead(t *testing.T) {
	doc := testDoc(t, "abc")
	if err := doc.Set("$.name", "apple"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := doc.Set("$.rank", 3); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := doc.Set("$.price", 1.5); err != nil {
		t.Fatalf("set: %v", err)
	}

	vals, err := doc.Values("$.name", "$.rank", "$.price", "$.missing")
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	if len(vals) != 4 {
		t.Fatalf("got %d values, want 4", len(vals))
	}
	if vals[0].Kind() != query.KindString || vals[0].Text() != "apple" {
		t.Errorf("vals[0] = %v (%v)", vals[0], vals[0].Kind())
	}
	if vals[1].Kind() != query.KindInt64 || vals[1].Int() != 3 {
		t.Errorf("vals[1] = %v (%v)", vals[1], vals[1].Kind())
	}
	if vals[2].Kind() != query.KindFloat64 || vals[2].Float() != 1.5 {
		t.Errorf("vals[2] = %v (%v)", vals[2], vals[2].Kind())
	}
	if !vals[3].IsNull() {
		t.Errorf("vals[3] = %v, want null", vals[3])
	}
}

func TestValues_MissingDocument(t *testing.T) {
	doc := testDoc(t, "abc")
	if err := doc.Erase(); err != nil {
		t.Fatalf("erase: %v", err)
	}
	if _, err := doc.Values("$.a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestErase_HandleBecomesUnusable(t *testing.T) {
	doc := testDoc(t, "abc")
	if err := doc.Erase(); err != nil {
		t.Fatalf("erase: %v", err)
	}

	if _, err := doc.Body(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Body after erase: err = %v, want ErrNotFound", err)
	}
	if err := doc.Set("$.a", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Set after erase: err = %v, want ErrNotFound", err)
	}
}

func TestBody_CacheInvalidation(t *testing.T) {
	col := testCollection(t, "docs")
	if _, err := col.Create("abc"); err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := col.Doc("abc")
	if err != nil {
		t.Fatalf("Doc: %v", err)
	}
	second, err := col.Doc("abc")
	if err != nil {
		t.Fatalf("Doc: %v", err)
	}

	if err := second.Set("$.x", 1); err != nil {
		t.Fatalf("set via second handle: %v", err)
	}

	// The first handle still serves its cached body.
	stale, err := first.Body()
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	if strings.Contains(stale, `"x"`) {
		t.Errorf("cached body observed a foreign write: %s", stale)
	}

	// Its own mutation invalidates the cache; the next read sees both.
	if err := first.Set("$.y", 2); err != nil {
		t.Fatalf("set via first handle: %v", err)
	}
	fresh, err := first.Body()
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	if !strings.Contains(fresh, `"x"`) || !strings.Contains(fresh, `"y"`) {
		t.Errorf("refetched body = %s", fresh)
	}
}
