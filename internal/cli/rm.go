package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/magpie"
	"github.com/aidanlsb/magpie/internal/ui"
)

var rmCmd = &cobra.Command{
	Use:   "rm <collection> <id>",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		if err := doc.Erase(); err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"collection": col.Name(),
				"deleted":    doc.ID(),
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Deleted %s", ui.ID(doc.ID())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
