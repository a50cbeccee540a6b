package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/magpie"
	"github.com/aidanlsb/magpie/internal/ui"
)

var lsLimit int

var lsCmd = &cobra.Command{
	Use:   "ls <collection>",
	Short: "List document ids in a collection",
	Args:  cobra.ExactArgs(1),
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

		var opts []magpie.FindOption
		if lsLimit > 0 {
			opts = append(opts, magpie.Limit(lsLimit))
		}
		refs, err := col.Find(nil, opts...)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		ids := make([]string, 0, len(refs))
		for _, ref := range refs {
			ids = append(ids, ref.ID())
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"collection": col.Name(),
				"ids":        ids,
			}, &Meta{Count: len(ids)})
			return nil
		}

		if len(ids) == 0 {
			fmt.Println("No documents.")
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		fmt.Println(ui.Hint(ui.Count(len(ids), "document", "documents")))
		return nil
	},
}

func init() {
	lsCmd.Flags().IntVarP(&lsLimit, "limit", "n", 0, "Maximum number of ids (0 = all)")
	rootCmd.AddCommand(lsCmd)
}
