// Package simulate handles the settlement simulation command
package simulate

import (
	"fmt"
	"io"
	"time"

	"acordos/debt-parser/cmd/common"
	"acordos/debt-parser/cmd/root"
	"acordos/debt-parser/internal/calculator"
	internalcommon "acordos/debt-parser/internal/common"
	"acordos/debt-parser/internal/container"
	"acordos/debt-parser/internal/currencyutils"
	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"
	"acordos/debt-parser/internal/parsererror"

	"github.com/spf13/cobra"
)

// Options for a simulation run.
type Options struct {
	Principal     string
	DueDate       string
	AgreementDate string
	CSVOut        string
	JSONOut       string
	Now           func() time.Time
}

var (
	opts       Options
	paramFlags *common.ParameterFlags
)

// Cmd represents the simulate command
var Cmd = &cobra.Command{
	Use:   "simulate",
	Short: "Compute settlement terms for a debt",
	Long: `Compute penalty, pro-rata interest, correction, legal fees and the
installment schedule for a principal owed since a due date.

Example:
  debt-parser simulate --principal 1.000,00 --due 16/12/2023 --installments 6`,
	Run: simulateFunc,
}

func init() {
	Cmd.Flags().StringVar(&opts.Principal, "principal", "", "Amount owed, e.g. 1.234,56")
	Cmd.Flags().StringVar(&opts.DueDate, "due", "", "Original due date (dd/mm/yyyy or yyyy-mm-dd)")
	Cmd.Flags().StringVar(&opts.AgreementDate, "agreement", "", "Agreement date (default today)")
	Cmd.Flags().StringVar(&opts.CSVOut, "csv", "", "Write the installment schedule to this CSV file")
	Cmd.Flags().StringVar(&opts.JSONOut, "json", "", "Write the simulation as JSON to this file (- for stdout)")
	paramFlags = common.AddParameterFlags(Cmd)
}

func simulateFunc(cmd *cobra.Command, args []string) {
	c := root.MustContainer()
	params, err := paramFlags.Resolve(cmd, c.GetConfig())
	if err != nil {
		root.Log.Fatalf("Invalid settlement parameters: %v", err)
	}
	if _, err := Run(c, opts, params, cmd.OutOrStdout()); err != nil {
		root.Log.Fatalf("Error running simulation: %v", err)
	}
}

// Run computes the settlement described by opts and writes the requested
// outputs.
func Run(c *container.Container, opts Options, params models.SimulationParameters, stdout io.Writer) (models.AgreementBundle, error) {
	logger := c.GetLogger()

	principal, ok := currencyutils.ParseBRAmount(opts.Principal)
	if !ok {
		if opts.Principal == "" {
			return models.AgreementBundle{}, &parsererror.ValidationError{Field: "principal", Reason: "required"}
		}
		return models.AgreementBundle{}, &parsererror.ValidationError{Field: "principal", Reason: fmt.Sprintf("invalid amount %q", opts.Principal)}
	}
	if opts.DueDate == "" {
		return models.AgreementBundle{}, &parsererror.ValidationError{Field: "due", Reason: "required"}
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	due, err := common.ParseDate("due", opts.DueDate, now())
	if err != nil {
		return models.AgreementBundle{}, err
	}
	agreement, err := common.ParseDate("agreement", opts.AgreementDate, now())
	if err != nil {
		return models.AgreementBundle{}, err
	}

	bundle := calculator.NewAgreement(principal, due, agreement, params, models.Debtor{}, nil)
	logger.Info("Simulation computed",
		logging.F(logging.FieldSimulation, bundle.Simulation.ShortID()),
		logging.F(logging.FieldInstallment, bundle.Result.InstallmentCount))

	if opts.JSONOut != "" {
		if err := common.WriteJSON(bundle, opts.JSONOut, stdout); err != nil {
			return bundle, err
		}
	}
	if opts.JSONOut != "-" {
		fmt.Fprintf(stdout, "Simulação Nº %s\n", bundle.Simulation.ShortID())
		common.PrintResult(stdout, bundle.Result, params)
	}
	if opts.CSVOut != "" {
		if err := internalcommon.WriteInstallmentsToCSV(bundle.Result.Installments, opts.CSVOut); err != nil {
			return bundle, err
		}
	}
	return bundle, nil
}
