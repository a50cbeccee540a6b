package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/magpie"
)

var countWhere []string

var countCmd = &cobra.Command{
	Use:   "count <collection>",
	Short: "Count documents",
	Long: `Counts documents in a collection, optionally filtered with the
same --where clauses as 'magpie find'.

Examples:
  magpie count birds
  magpie count birds --where '$.wingspan >= 50'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pred, err := predicateFromFlags(countWhere)
		if err != nil {
			return handleErrorWithDetails(ErrWhereInvalid, err.Error(), whereSyntaxHint,
				map[string]interface{}{"clauses": countWhere})
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

		start := time.Now()
		var n int64
		if pred == nil {
			n, err = col.Count()
		} else {
			n, err = col.CountWhere(pred)
		}
		if err != nil {
			if errors.Is(err, magpie.ErrBind) {
				return handleError(ErrWhereInvalid, err, whereSyntaxHint)
			}
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"collection": col.Name(),
				"count":      n,
			}, timedMeta(int(n), start))
			return nil
		}
		fmt.Println(n)
		return nil
	},
}

func init() {
	countCmd.Flags().StringArrayVarP(&countWhere, "where", "w", nil, "Predicate clause '<field> <op> <value>' (can be repeated)")
	rootCmd.AddCommand(countCmd)
}
