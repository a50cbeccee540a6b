package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/magpie"
)

var (
	getFormat string
	getField  string
)

var getCmd = &cobra.Command{
	Use:   "get <collection> <id>",
	Short: "Print a document",
	Long: `Prints a document's JSON body, or a single field of it.

--field takes a JSON path in SQLite JSON1 syntax and prints just that
value. --format switches the whole-body output between json and yaml;
the default comes from the config file.

Examples:
  magpie get birds pica-pica
  magpie get birds pica-pica --format yaml
  magpie get birds pica-pica --field $.plumage.color`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := getFormat
		if format == "" {
			format = getConfig().DefaultFormat()
		}
		if format != "json" && format != "yaml" {
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("unknown format: %s", format), "Supported formats: json, yaml")
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

		if getField != "" {
			return outputDocField(doc, getField)
		}

		body, err := doc.Body()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"collection": col.Name(),
				"id":         doc.ID(),
				"body":       json.RawMessage(body),
			}, nil)
			return nil
		}

		switch format {
		case "yaml":
			var v interface{}
			if err := json.Unmarshal([]byte(body), &v); err != nil {
				return handleError(ErrInternal, err, "")
			}
			out, err := yaml.Marshal(v)
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			fmt.Print(string(out))
		default:
			var buf bytes.Buffer
			if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
				fmt.Println(body)
				return nil
			}
			fmt.Println(buf.String())
		}
		return nil
	},
}

// outputDocField prints one field of a document, typed by the stored JSON.
func outputDocField(doc *magpie.Document, path string) error {
	typ, err := doc.GetType(path)
	if err != nil {
		return handleError(ErrDatabaseError, err, "")
	}
	if typ == magpie.TypeNotFound {
		return handleErrorMsg(ErrFieldNotFound,
			fmt.Sprintf("no value at %s", path),
			"Paths use SQLite JSON1 syntax, e.g. $.plumage.color")
	}

	var rendered string
	switch typ {
	case magpie.TypeNull:
		rendered = "null"
	case magpie.TypeTrue:
		rendered = "true"
	case magpie.TypeFalse:
		rendered = "false"
	default:
		rendered, err = doc.GetString(path)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"id":    doc.ID(),
			"path":  path,
			"type":  typ.String(),
			"value": rendered,
		}, nil)
		return nil
	}
	fmt.Println(rendered)
	return nil
}

func init() {
	getCmd.Flags().StringVar(&getFormat, "format", "", "Body output format: json or yaml")
	getCmd.Flags().StringVar(&getField, "field", "", "Print only the value at this JSON path")
	rootCmd.AddCommand(getCmd)
}
