package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/magpie"
	"github.com/aidanlsb/magpie/internal/ui"
)

var (
	indexUnique bool
	indexName   string
)

var indexCmd = &cobra.Command{
	Use:   "index <collection> <path> [path...]",
	Short: "Promote JSON paths to indexed columns",
	Long: `Materializes one or more JSON paths as generated columns and
creates an index over them. Queries and ordering on a promoted path use
the index instead of re-extracting the field per row.

A single path gets a column named after the path and an index named
idx_<collection>_<column>. Multiple paths build one composite index and
require an explicit --name. Repeating the command is a no-op.

Examples:
  magpie index birds $.genus
  magpie index birds $.ring --unique
  magpie index birds $.genus $.species --name idx_birds_taxon --unique`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args[1:]
		columns := make([]magpie.IndexColumn, len(paths))
		for i, p := range paths {
			column := columnNameForPath(p)
			if column == "" {
				return handleErrorMsg(ErrInvalidInput,
					fmt.Sprintf("cannot derive a column name from path %q", p),
					"Paths use SQLite JSON1 syntax, e.g. $.plumage.color")
			}
			columns[i] = magpie.IndexColumn{Column: column, Path: p}
		}

		db, err := openStore()
		if err != nil {
			return handleError(ErrStoreOpen, err, "Check the --db path")
		}
		defer db.Close()

		col, err := db.Collection(args[0])
		if err != nil {
			return handleError(ErrCollectionInvalid, err, "")
		}

		name := indexName
		switch {
		case len(columns) == 1 && name == "":
			name = "idx_" + col.Name() + "_" + columns[0].Column
			err = col.Index(columns[0].Column, columns[0].Path, indexUnique)
		case name == "":
			return handleErrorMsg(ErrMissingArgument, "composite indexes need --name", "")
		default:
			err = col.CompositeIndex(name, columns, indexUnique)
		}
		if err != nil {
			return handleError(ErrIndexInvalid, err, "")
		}

		if isJSONOutput() {
			cols := make([]map[string]string, len(columns))
			for i, c := range columns {
				cols[i] = map[string]string{"column": c.Column, "path": c.Path}
			}
			outputSuccess(map[string]interface{}{
				"collection": col.Name(),
				"index":      name,
				"columns":    cols,
				"unique":     indexUnique,
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Indexed %s on %s", strings.Join(paths, ", "), col.Name()))
		return nil
	},
}

// columnNameForPath derives a column name from a JSON path: $.plumage.color
// becomes plumage_color, $.tags[0] becomes tags_0.
func columnNameForPath(path string) string {
	s := strings.TrimPrefix(strings.TrimSpace(path), "$")
	var sb strings.Builder
	pendingSep := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			if pendingSep && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			pendingSep = false
			sb.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	return sb.String()
}

func init() {
	indexCmd.Flags().BoolVar(&indexUnique, "unique", false, "Create a unique index")
	indexCmd.Flags().StringVar(&indexName, "name", "", "Index name (required for composite indexes)")
	rootCmd.AddCommand(indexCmd)
}
