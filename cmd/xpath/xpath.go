// Package xpath evaluates XPath expressions against XML statements, a helper
// for writing profile overrides.
package xpath

import (
	"fmt"
	"io"

	"acordos/debt-parser/cmd/root"
	"acordos/debt-parser/internal/xmlutils"

	"github.com/spf13/cobra"
)

var expr string

// Cmd represents the xpath command
var Cmd = &cobra.Command{
	Use:   "xpath",
	Short: "Evaluate an XPath expression against an XML statement",
	Long: `Print every value an XPath expression selects in an XML statement. Use it
to check the expressions placed under xml.xpaths in a profile file.

Example:
  debt-parser xpath -i cobranca.xml -e /cobranca/devedor/nome`,
	Run: func(cmd *cobra.Command, args []string) {
		input, err := root.RequireInput()
		if err != nil {
			root.Log.Fatal(err.Error())
		}
		if err := Run(input, expr, cmd.OutOrStdout()); err != nil {
			root.Log.Fatalf("Error evaluating XPath: %v", err)
		}
	},
}

func init() {
	Cmd.Flags().StringVarP(&expr, "expr", "e", "", "XPath expression")
	_ = Cmd.MarkFlagRequired("expr")
}

// Run prints one cleaned value per line.
func Run(input, expression string, w io.Writer) error {
	values, err := xmlutils.ExtractWithXPath(input, expression)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("no values match %s", expression)
	}
	for _, v := range values {
		fmt.Fprintln(w, xmlutils.CleanText(v))
	}
	return nil
}
