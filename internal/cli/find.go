package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/magpie"
	"github.com/aidanlsb/magpie/internal/ui"
	"github.com/aidanlsb/magpie/query"
)

var (
	findWhere []string
	findOrder string
	findDesc  bool
	findLimit int
)

var findCmd = &cobra.Command{
	Use:   "find <collection>",
	Short: "Query documents with field predicates",
	Long: `Queries a collection with field predicates.

Each --where clause has the form '<field> <op> <value>': the field is a
JSON path, the op one of =, !=, <, <=, >, >=, like, regexp, and the
value a JSON scalar. The keyword 'null' matches stored JSON nulls;
fields that are absent never match. Multiple --where clauses AND
together.

Text mode prints matching ids; --json includes the full bodies.

Examples:
  magpie find birds --where '$.genus = Pica'
  magpie find birds --where '$.wingspan >= 50' --where '$.banded = true'
  magpie find birds --where '$.name like %magpie%' --order $.wingspan --desc
  magpie find birds --where '$.ring = null' --limit 10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pred, err := predicateFromFlags(findWhere)
		if err != nil {
			return handleErrorWithDetails(ErrWhereInvalid, err.Error(), whereSyntaxHint,
				map[string]interface{}{"clauses": findWhere})
		}
		if findDesc && findOrder == "" {
			return handleErrorMsg(ErrInvalidInput, "--desc requires --order", "")
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

		var opts []magpie.FindOption
		if findOrder != "" {
			order := query.Asc(findOrder)
			if findDesc {
				order = query.Desc(findOrder)
			}
			opts = append(opts, magpie.OrderBy(order))
		}
		if findLimit > 0 {
			opts = append(opts, magpie.Limit(findLimit))
		}

		start := time.Now()
		refs, err := col.Find(pred, opts...)
		if err != nil {
			if errors.Is(err, magpie.ErrBind) {
				return handleError(ErrWhereInvalid, err, whereSyntaxHint)
			}
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			type docView struct {
				ID   string          `json:"id"`
				Body json.RawMessage `json:"body"`
			}
			docs := make([]docView, 0, len(refs))
			for _, ref := range refs {
				doc, err := ref.Doc()
				if err != nil {
					return handleError(ErrDatabaseError, err, "")
				}
				body, err := doc.Body()
				if err != nil {
					return handleError(ErrDatabaseError, err, "")
				}
				docs = append(docs, docView{ID: ref.ID(), Body: json.RawMessage(body)})
			}
			outputSuccess(map[string]interface{}{
				"collection": col.Name(),
				"documents":  docs,
			}, timedMeta(len(docs), start))
			return nil
		}

		if len(refs) == 0 {
			fmt.Println("No matches.")
			return nil
		}
		for _, ref := range refs {
			fmt.Println(ref.ID())
		}
		fmt.Println(ui.Hint(ui.Count(len(refs), "match", "matches")))
		return nil
	},
}

func init() {
	findCmd.Flags().StringArrayVarP(&findWhere, "where", "w", nil, "Predicate clause '<field> <op> <value>' (can be repeated)")
	findCmd.Flags().StringVar(&findOrder, "order", "", "Order results by this JSON path")
	findCmd.Flags().BoolVar(&findDesc, "desc", false, "Sort descending (with --order)")
	findCmd.Flags().IntVarP(&findLimit, "limit", "n", 0, "Maximum number of matches (0 = all)")
	rootCmd.AddCommand(findCmd)
}
