package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/magpie"
	"github.com/aidanlsb/magpie/internal/atomicfile"
	"github.com/aidanlsb/magpie/internal/ui"
)

var exportOut string

type exportedCollection struct {
	Collection string `json:"collection"`
	Directory  string `json:"directory"`
	Documents  int    `json:"documents"`
}

var exportCmd = &cobra.Command{
	Use:   "export [collection]",
	Short: "Export documents as JSON files",
	Long: `Writes each document to <dir>/<collection>/<id>.json, pretty
printed. Without a collection argument every collection is exported.
Files are written atomically, so a crash cannot leave half a document.

Examples:
  magpie export birds
  magpie export -o backup`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return handleError(ErrStoreOpen, err, "Check the --db path")
		}
		defer db.Close()

		names := args
		if len(names) == 0 {
			names, err = db.Collections()
			if err != nil {
				return handleError(ErrDatabaseError, err, "")
			}
		}

		results := make([]exportedCollection, 0, len(names))
		total := 0
		for _, name := range names {
			n, dir, err := exportCollection(db, name, exportOut)
			if err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
			results = append(results, exportedCollection{Collection: name, Directory: dir, Documents: n})
			total += n
			if !isJSONOutput() {
				fmt.Println(ui.Successf("Exported %s %s to %s",
					name, ui.Count(n, "document", "documents"), ui.FilePath(dir)))
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"exported": results}, &Meta{Count: total})
		}
		return nil
	},
}

// exportCollection writes every document body to dir/<collection>/<id>.json
// and reports how many it wrote.
func exportCollection(db *magpie.Database, name, dir string) (int, string, error) {
	col, err := db.Collection(name)
	if err != nil {
		return 0, "", err
	}
	refs, err := col.Docs()
	if err != nil {
		return 0, "", err
	}

	outDir := filepath.Join(dir, name)
	for _, ref := range refs {
		doc, err := ref.Doc()
		if err != nil {
			return 0, "", err
		}
		body, err := doc.Body()
		if err != nil {
			return 0, "", err
		}

		data := []byte(body)
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err == nil {
			buf.WriteByte('\n')
			data = buf.Bytes()
		}

		path := filepath.Join(outDir, exportFilename(ref.ID()))
		if err := atomicfile.WriteFile(path, data); err != nil {
			return 0, "", err
		}
		slog.Debug("exported document", "path", path)
	}
	return len(refs), outDir, nil
}

// exportFilename sanitizes a document id for use as a file name. Ids are
// free-form strings, so path separators and other hostile characters are
// flattened to dashes.
func exportFilename(id string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return '-'
		}
		return r
	}, id)
	safe = strings.Trim(safe, ". ")
	if safe == "" {
		safe = "document"
	}
	return safe + ".json"
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "Directory to export into")
	rootCmd.AddCommand(exportCmd)
}
