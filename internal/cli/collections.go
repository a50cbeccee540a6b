package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/magpie/internal/ui"
)

type collectionView struct {
	Name      string `json:"name"`
	Documents int64  `json:"documents"`
}

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List collections in the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return handleError(ErrStoreOpen, err, "Check the --db path")
		}
		defer db.Close()

		names, err := db.Collections()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		views := make([]collectionView, 0, len(names))
		for _, name := range names {
			col, err := db.Collection(name)
			if err != nil {
				return handleError(ErrDatabaseError, err, "")
			}
			n, err := col.Count()
			if err != nil {
				return handleError(ErrDatabaseError, err, "")
			}
			views = append(views, collectionView{Name: name, Documents: n})
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"collections": views}, &Meta{Count: len(views)})
			return nil
		}

		if len(views) == 0 {
			fmt.Println("No collections.")
			fmt.Println(ui.Hint("Create one with 'magpie new <collection>'"))
			return nil
		}

		table := ui.NewTable(3).Align(1, ui.AlignRight)
		for _, v := range views {
			table.AddRow(v.Name, strconv.FormatInt(v.Documents, 10),
				ui.Pluralize("document", int(v.Documents)))
		}
		fmt.Print(table.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(collectionsCmd)
}
