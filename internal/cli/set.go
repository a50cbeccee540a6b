package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/magpie"
	"github.com/aidanlsb/magpie/internal/ui"
)

var (
	setInsert  bool
	setReplace bool
)

var setCmd = &cobra.Command{
	Use:   "set <collection> <id> <path> <value>",
	Short: "Write a field in a document",
	Long: `Writes a scalar value at a JSON path in a document.

The value parses as a JSON scalar: numbers, quoted strings, true, false,
null. Anything that isn't a JSON literal is taken as a bare string.
Booleans are stored as 0/1 integers. Objects and arrays are not
accepted; use 'magpie patch' for structural changes.

By default the value is upserted. --insert only writes when the path is
absent; --replace only writes when the path already exists.

Examples:
  magpie set birds pica-pica $.wingspan 56
  magpie set birds pica-pica $.name "Eurasian magpie"
  magpie set birds pica-pica $.banded true
  magpie set birds pica-pica $.ring null`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		if setInsert && setReplace {
			return handleErrorMsg(ErrInvalidInput, "--insert and --replace are mutually exclusive", "")
		}
		value, err := parseScalar(args[3])
		if err != nil {
			return handleErrorMsg(ErrInvalidInput, err.Error(), "Use 'magpie patch' to write objects and arrays")
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
					fmt.Sprintf("Create it with 'magpie new %s --id %s'", col.Name(), args[1]))
			}
			return handleError(ErrDatabaseError, err, "")
		}

		path := args[2]
		verb := "Set"
		switch {
		case setInsert:
			verb = "Inserted"
			err = doc.Insert(path, value)
		case setReplace:
			verb = "Replaced"
			err = doc.Replace(path, value)
		default:
			err = doc.Set(path, value)
		}
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"collection": col.Name(),
				"id":         doc.ID(),
				"path":       path,
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("%s %s on %s", verb, path, ui.ID(doc.ID())))
		return nil
	},
}

func init() {
	setCmd.Flags().BoolVar(&setInsert, "insert", false, "Only write if the path is absent")
	setCmd.Flags().BoolVar(&setReplace, "replace", false, "Only write if the path already exists")
	rootCmd.AddCommand(setCmd)
}
