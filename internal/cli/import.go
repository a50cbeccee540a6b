package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/magpie"
	"github.com/aidanlsb/magpie/internal/slugs"
	"github.com/aidanlsb/magpie/internal/ui"
)

var importAuto bool

type importedDoc struct {
	File       string `json:"file"`
	Collection string `json:"collection"`
	ID         string `json:"id"`
}

var importCmd = &cobra.Command{
	Use:   "import [collection] <file.json>...",
	Short: "Import JSON files as documents",
	Long: `Imports JSON files into a collection, one document per file. Each
file must hold a JSON object; a string id field in the body keeps its
id, otherwise one is generated.

With --auto the collection name is derived from each file's name instead
of being passed explicitly, so 'magpie import --auto birds.json' lands
in a collection named birds.

Files that fail to read or parse, and ids that collide with existing
documents, are skipped with a warning.

Examples:
  magpie import birds pica.json corvus.json
  magpie import --auto birds.json bees.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var collection string
		files := args
		if !importAuto {
			if len(args) < 2 {
				return handleErrorMsg(ErrMissingArgument,
					"requires a collection and at least one file",
					"Usage: magpie import <collection> <file.json>... (or --auto)")
			}
			collection = args[0]
			files = args[1:]
		}

		db, err := openStore()
		if err != nil {
			return handleError(ErrStoreOpen, err, "Check the --db path")
		}
		defer db.Close()

		imported := make([]importedDoc, 0, len(files))
		var warnings []Warning
		for _, file := range files {
			target := collection
			if importAuto {
				target = slugs.FromFilename(file)
			}
			id, err := importFile(db, target, file)
			if err != nil {
				slog.Debug("import skipped", "file", file, "error", err)
				warnings = append(warnings, Warning{Code: WarnSkippedFile, Message: err.Error(), Ref: file})
				if !isJSONOutput() {
					fmt.Println(ui.Warningf("Skipped %s: %v", file, err))
				}
				continue
			}
			imported = append(imported, importedDoc{File: file, Collection: target, ID: id})
			if !isJSONOutput() {
				fmt.Println(ui.Successf("Imported %s as %s", file, ui.ID(target+"/"+id)))
			}
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]interface{}{"imported": imported},
				warnings, &Meta{Count: len(imported)})
			return nil
		}
		if len(files) > 1 || len(warnings) > 0 {
			fmt.Println(ui.Hint(fmt.Sprintf("%d imported, %d skipped", len(imported), len(warnings))))
		}
		return nil
	},
}

// importFile stores one JSON file as a document and returns its id.
func importFile(db *magpie.Database, collection, file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	id, err := decodeImportBody(data)
	if err != nil {
		return "", err
	}

	col, err := db.Collection(collection)
	if err != nil {
		return "", err
	}

	var doc *magpie.Document
	if id != "" {
		doc, err = col.Create(id)
	} else {
		doc, err = col.NewDoc()
	}
	if err != nil {
		return "", err
	}
	if err := doc.SetBody(string(data)); err != nil {
		_ = doc.Erase()
		return "", err
	}
	return doc.ID(), nil
}

// decodeImportBody validates the file as a JSON object and pulls out its
// string id, if it carries one.
func decodeImportBody(data []byte) (string, error) {
	var v map[string]interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return "", fmt.Errorf("not a JSON object")
	}
	raw, ok := v["id"]
	if !ok {
		return "", nil
	}
	id, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("id field must be a string")
	}
	return id, nil
}

func init() {
	importCmd.Flags().BoolVar(&importAuto, "auto", false, "Derive each file's collection from its name")
	rootCmd.AddCommand(importCmd)
}
