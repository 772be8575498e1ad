// Package parse handles the statement extraction command
package parse

import (
	"fmt"
	"io"

	"acordos/debt-parser/cmd/common"
	"acordos/debt-parser/cmd/root"
	internalcommon "acordos/debt-parser/internal/common"
	"acordos/debt-parser/internal/container"
	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"

	"github.com/spf13/cobra"
)

// Options for a parse run.
type Options struct {
	Input    string
	JSONOut  string
	ItemsCSV string
	Validate bool
}

var opts Options

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract the debtor and debt data from a statement",
	Long: `Extract the debtor, amount, due date and itemized fees from a digital PDF
or XML debt statement. The result is printed as JSON.

Example:
  debt-parser parse -i boleto.pdf --items-csv itens.csv`,
	Run: parseFunc,
}

func init() {
	Cmd.Flags().StringVar(&opts.JSONOut, "json", "", "Write the JSON result to this file instead of stdout")
	Cmd.Flags().StringVar(&opts.ItemsCSV, "items-csv", "", "Write the debt items to this CSV file")
}

func parseFunc(cmd *cobra.Command, args []string) {
	logger := root.Log
	opts.Input = root.SharedFlags.Input
	opts.Validate = root.SharedFlags.Validate
	if opts.Input == "" && len(args) > 0 {
		opts.Input = args[0]
	}
	if opts.Input == "" {
		logger.Fatal("An input file must be specified")
	}

	if err := Run(root.MustContainer(), opts, cmd.OutOrStdout()); err != nil {
		logger.Fatalf("Error parsing statement: %v", err)
	}
}

// Run parses opts.Input and writes the requested outputs.
func Run(c *container.Container, opts Options, stdout io.Writer) error {
	logger := c.GetLogger()
	logger.Info("Parsing statement", logging.F(logging.FieldInputFile, opts.Input))

	doc, err := common.LoadDocument(c, opts.Input, opts.Validate)
	if err != nil {
		return err
	}
	if doc.IsEmpty() {
		return fmt.Errorf("no fields could be extracted from %s", opts.Input)
	}

	if err := common.WriteJSON(doc, opts.JSONOut, stdout); err != nil {
		return err
	}
	if opts.ItemsCSV != "" {
		items := doc.DebtItems
		if items == nil {
			items = []models.DebtItem{}
		}
		if err := internalcommon.WriteDebtItemsToCSV(items, opts.ItemsCSV); err != nil {
			return err
		}
	}

	logger.Info("Statement parsed",
		logging.F(logging.FieldInputFile, opts.Input),
		logging.F(logging.FieldCount, len(doc.DebtItems)))
	return nil
}
