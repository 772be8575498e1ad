// Package agreement handles the agreement rendering command
package agreement

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"acordos/debt-parser/cmd/common"
	"acordos/debt-parser/cmd/root"
	"acordos/debt-parser/internal/calculator"
	"acordos/debt-parser/internal/container"
	"acordos/debt-parser/internal/fileutils"
	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"
	"acordos/debt-parser/internal/validation"

	"github.com/spf13/cobra"
)

// Options for an agreement run.
type Options struct {
	Input         string
	Output        string
	Format        string
	AgreementDate string
	Validate      bool
	Now           func() time.Time
}

var (
	opts       Options
	paramFlags *common.ParameterFlags
)

// Cmd represents the agreement command
var Cmd = &cobra.Command{
	Use:   "agreement",
	Short: "Render a settlement agreement for a statement",
	Long: `Parse a debt statement, compute the settlement terms and render the
installment agreement as PDF, JSON or XML.

Example:
  debt-parser agreement -i boleto.pdf --agreement-date 15/01/2024 -o acordo.pdf`,
	Run: agreementFunc,
}

func init() {
	Cmd.Flags().StringVar(&opts.AgreementDate, "agreement-date", "", "Agreement date (default today)")
	Cmd.Flags().StringVar(&opts.Format, "format", "", "Output format: pdf, json or xml (default from config)")
	paramFlags = common.AddParameterFlags(Cmd)
}

func agreementFunc(cmd *cobra.Command, args []string) {
	c := root.MustContainer()
	input, err := root.RequireInput()
	if err != nil {
		root.Log.Fatal(err.Error())
	}
	params, err := paramFlags.Resolve(cmd, c.GetConfig())
	if err != nil {
		root.Log.Fatalf("Invalid settlement parameters: %v", err)
	}

	run := opts
	run.Input = input
	run.Output = root.SharedFlags.Output
	run.Validate = root.SharedFlags.Validate
	out, err := Run(c, run, params)
	if err != nil {
		root.Log.Fatalf("Error rendering agreement: %v", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
}

// Run parses the statement, computes the agreement and writes the rendered
// document. It returns the path written.
func Run(c *container.Container, opts Options, params models.SimulationParameters) (string, error) {
	logger := c.GetLogger()

	format := strings.ToLower(opts.Format)
	if format == "" {
		format = c.GetConfig().Render.Format
	}
	if err := validation.IsValidOutputFormat(format); err != nil {
		return "", err
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	agreementDate, err := common.ParseDate("agreement-date", opts.AgreementDate, now())
	if err != nil {
		return "", err
	}

	doc, err := common.LoadDocument(c, opts.Input, opts.Validate)
	if err != nil {
		return "", err
	}
	bundle, err := calculator.AgreementFromDocument(doc, agreementDate, params)
	if err != nil {
		return "", fmt.Errorf("cannot build agreement for %s: %w", opts.Input, err)
	}

	data, err := c.GetGenerator().GenerateReport(&bundle, format)
	if err != nil {
		return "", err
	}

	output := opts.Output
	if output == "" {
		output = DefaultOutputPath(opts.Input, bundle.Simulation, format)
	}
	if err := fileutils.WriteFile(output, data, models.PermissionReportFile); err != nil {
		return "", err
	}

	logger.Info("Agreement written",
		logging.F(logging.FieldOutputFile, output),
		logging.F(logging.FieldSimulation, bundle.Simulation.ShortID()))
	return output, nil
}

// DefaultOutputPath places the agreement next to the statement, named after
// the statement and the simulation number.
func DefaultOutputPath(input string, sim models.Simulation, format string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(filepath.Dir(input), fmt.Sprintf("acordo_%s_%s.%s", base, sim.ShortID(), format))
}
