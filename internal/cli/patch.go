package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/magpie"
	"github.com/aidanlsb/magpie/internal/ui"
)

var patchCmd = &cobra.Command{
	Use:   "patch <collection> <id> <json>",
	Short: "Merge a JSON patch into a document",
	Long: `Applies a merge patch to a document: patch keys overwrite the
document's, nested objects merge recursively, and a null patch value
deletes the key.

Pass '-' to read the patch from stdin.

Examples:
  magpie patch birds pica-pica '{"wingspan": 60}'
  magpie patch birds pica-pica '{"ring": null}'
  cat patch.json | magpie patch birds pica-pica -`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := args[2]
		if patch == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			patch = string(data)
		}
		trimmed := strings.TrimSpace(patch)
		if !strings.HasPrefix(trimmed, "{") || !json.Valid([]byte(trimmed)) {
			return handleErrorMsg(ErrDocInvalid, "patch must be a JSON object", "")
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

		doc, err := col.Doc(args[1])
		if err != nil {
			if errors.Is(err, magpie.ErrNotFound) {
				return handleErrorMsg(ErrDocNotFound,
					fmt.Sprintf("document '%s' not found in %s", args[1], col.Name()),
					fmt.Sprintf("Run 'magpie ls %s' to list ids", col.Name()))
			}
			return handleError(ErrDatabaseError, err, "")
		}

		if err := doc.Patch(trimmed); err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"collection": col.Name(),
				"id":         doc.ID(),
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Patched %s", ui.ID(doc.ID())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(patchCmd)
}
