package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aidanlsb/magpie"
)

func TestDecodeImportBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantID  string
		wantErr string
	}{
		{name: "embedded string id", data: `{"id": "magpie-01", "name": "Eurasian magpie"}`, wantID: "magpie-01"},
		{name: "no id", data: `{"name": "Eurasian magpie"}`, wantID: ""},
		{name: "numeric id", data: `{"id": 42}`, wantErr: "id field must be a string"},
		{name: "array", data: `[1, 2]`, wantErr: "not a JSON object"},
		{name: "scalar", data: `"magpie"`, wantErr: "not a JSON object"},
		{name: "invalid json", data: `{broken`, wantErr: "not a JSON object"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			id, err := decodeImportBody([]byte(tc.data))
			if tc.wantErr != "" {
				if err == nil {
					t.Fatalf("decodeImportBody(%s) expected error", tc.data)
				}
				if !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("error = %q, want substring %q", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeImportBody(%s) error = %v", tc.data, err)
			}
			if id != tc.wantID {
				t.Fatalf("id = %q, want %q", id, tc.wantID)
			}
		})
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	db, err := magpie.Open(filepath.Join(dir, "store.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	withID := filepath.Join(dir, "magpie.json")
	if err := os.WriteFile(withID, []byte(`{"id": "magpie-01", "name": "Eurasian magpie"}`), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	id, err := importFile(db, "birds", withID)
	if err != nil {
		t.Fatalf("importFile: %v", err)
	}
	if id != "magpie-01" {
		t.Fatalf("id = %q, want magpie-01", id)
	}

	col, err := db.Collection("birds")
	if err != nil {
		t.Fatalf("Collection: %v", err)
	}
	doc, err := col.Doc("magpie-01")
	if err != nil {
		t.Fatalf("Doc: %v", err)
	}
	name, err := doc.GetString("$.name")
	if err != nil {
		t.Fatalf("GetString: %v", err)
	}
	if name != "Eurasian magpie" {
		t.Fatalf("name = %q, want Eurasian magpie", name)
	}

	// Importing the same id again collides.
	if _, err := importFile(db, "birds", withID); !errors.Is(err, magpie.ErrInsert) {
		t.Fatalf("second import error = %v, want ErrInsert", err)
	}

	// A file without an id gets a generated one.
	noID := filepath.Join(dir, "jackdaw.json")
	if err := os.WriteFile(noID, []byte(`{"name": "Western jackdaw"}`), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	generated, err := importFile(db, "birds", noID)
	if err != nil {
		t.Fatalf("importFile without id: %v", err)
	}
	if generated == "" {
		t.Fatal("expected a generated id")
	}

	// Invalid files abort before touching the store.
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`[1, 2, 3]`), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := importFile(db, "birds", bad); err == nil {
		t.Fatal("expected error for non-object file")
	}
	n, err := col.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
}
