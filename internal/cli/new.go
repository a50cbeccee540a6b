package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/magpie"
	"github.com/aidanlsb/magpie/internal/ui"
)

var newIDFlag string

var newCmd = &cobra.Command{
	Use:   "new <collection>",
	Short: "Create a document",
	Long: `Creates a document in the given collection. The collection's table
is created on first use.

Without --id a random 36-character id is generated. The fresh document
contains only its id field; fill it with 'magpie set' or 'magpie patch'.

Examples:
  magpie new birds
  magpie new birds --id pica-pica`,
	Args: cobra.ExactArgs(1),
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

		var doc *magpie.Document
		if newIDFlag != "" {
			doc, err = col.Create(newIDFlag)
		} else {
			doc, err = col.NewDoc()
		}
		if err != nil {
			if errors.Is(err, magpie.ErrInsert) {
				return handleErrorMsg(ErrDocExists,
					fmt.Sprintf("document '%s' already exists in %s", newIDFlag, col.Name()),
					"Pick another id, or omit --id for a generated one")
			}
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"collection": col.Name(),
				"id":         doc.ID(),
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Created %s", ui.ID(doc.ID())))
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newIDFlag, "id", "", "Explicit document id (default: generated)")
	rootCmd.AddCommand(newCmd)
}
