// Package common contains shared functionality for command handlers
package common

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"acordos/debt-parser/internal/calculator"
	"acordos/debt-parser/internal/config"
	"acordos/debt-parser/internal/container"
	"acordos/debt-parser/internal/currencyutils"
	"acordos/debt-parser/internal/dateutils"
	"acordos/debt-parser/internal/fileutils"
	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"
	"acordos/debt-parser/internal/parser"
	"acordos/debt-parser/internal/parsererror"
	"acordos/debt-parser/internal/validation"

	"github.com/spf13/cobra"
)

// LoadDocument reads a statement file, checks it against the configured size
// limit and parses it with the parser registered for its extension.
func LoadDocument(c *container.Container, inputFile string, validate bool) (*models.ParsedDocument, error) {
	log := c.GetLogger().WithField(logging.FieldInputFile, inputFile)

	path, err := filepath.Abs(inputFile)
	if err != nil {
		return nil, fmt.Errorf("error resolving path %s: %w", inputFile, err)
	}
	if err := validation.IsValidPath(path); err != nil {
		return nil, err
	}

	mediaType, err := parser.DetectMediaType(path)
	if err != nil {
		return nil, err
	}

	maxBytes := c.GetConfig().Extraction.MaxFileBytes
	data, err := fileutils.ReadFile(path, maxBytes)
	if err != nil {
		return nil, err
	}
	raw := models.RawDocument{Name: path, MediaType: mediaType, Data: data}
	if err := validation.ValidateUpload(raw, maxBytes); err != nil {
		return nil, err
	}

	if validate {
		log.Info("Validating format...")
		pt := container.PDF
		if mediaType.IsXML() {
			pt = container.XML
		}
		p, err := c.GetParser(pt)
		if err != nil {
			return nil, err
		}
		ok, err := p.ValidateFormat(path)
		if err != nil {
			return nil, fmt.Errorf("error validating file: %w", err)
		}
		if !ok {
			return nil, &parsererror.InvalidFormatError{FilePath: path, ExpectedFormat: string(mediaType), Msg: "the file is not in a valid format"}
		}
		log.Info("Validation successful.")
	}

	return c.GetRegistry().ParseDocument(raw)
}

// ParameterFlags binds the settlement term flags shared by simulate and
// agreement. Flags left unset fall back to the parameters file, then to the
// configured defaults.
type ParameterFlags struct {
	File   string
	values map[string]*string
}

var parameterFlags = []struct {
	flag, param, usage string
}{
	{"interest", calculator.ParamInterestRateMonthly, "Monthly interest rate in percent"},
	{"penalty", calculator.ParamPenaltyRate, "Late payment penalty in percent"},
	{"fee", calculator.ParamFeeRate, "Legal fees in percent"},
	{"breach-penalty", calculator.ParamBreachPenaltyRate, "Penalty for breaking the agreement in percent"},
	{"correction", calculator.ParamCorrectionIndex, "Monetary correction index in percent"},
	{"installments", calculator.ParamInstallmentCount, "Number of installments"},
	{"down-payment", calculator.ParamDownPayment, "Down payment amount"},
}

// AddParameterFlags registers the settlement term flags on cmd.
func AddParameterFlags(cmd *cobra.Command) *ParameterFlags {
	pf := &ParameterFlags{values: make(map[string]*string, len(parameterFlags))}
	cmd.Flags().StringVar(&pf.File, "params", "", "YAML file with settlement parameters")
	for _, f := range parameterFlags {
		pf.values[f.flag] = cmd.Flags().String(f.flag, "", f.usage)
	}
	return pf
}

// Resolve layers config defaults, the parameters file and the flags that
// were set on cmd.
func (pf *ParameterFlags) Resolve(cmd *cobra.Command, cfg *config.Config) (models.SimulationParameters, error) {
	params, err := cfg.SimulationParameters()
	if err != nil {
		return params, err
	}
	if pf.File != "" {
		if params, err = calculator.LoadParameters(pf.File, params); err != nil {
			return params, err
		}
	}

	values := map[string]string{}
	for _, f := range parameterFlags {
		if cmd.Flags().Changed(f.flag) {
			values[f.param] = *pf.values[f.flag]
		}
	}
	if err := calculator.ApplyParameters(&params, values); err != nil {
		return params, err
	}
	return params, nil
}

// ParseDate parses a date flag in dd/mm/yyyy or ISO form. An empty value
// yields fallback.
func ParseDate(field, value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return dateutils.TruncateToDay(fallback), nil
	}
	t, ok := dateutils.ParseDateField(value)
	if !ok {
		return time.Time{}, &parsererror.ValidationError{Field: field, Reason: fmt.Sprintf("invalid date %q", value)}
	}
	return t, nil
}

// WriteJSON writes v as indented JSON to path, or to w when path is empty
// or "-".
func WriteJSON(v interface{}, path string, w io.Writer) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	if path == "" || path == "-" {
		_, err = w.Write(data)
		return err
	}
	return fileutils.WriteFile(path, data, models.PermissionReportFile)
}

// PrintResult writes a human-readable settlement summary.
func PrintResult(w io.Writer, res models.CalculationResult, params models.SimulationParameters) {
	row := func(label, value string) { fmt.Fprintf(w, "%-22s%s\n", label+":", value) }

	row("Principal", currencyutils.FormatBRL(res.Principal))
	row("Dias em atraso", fmt.Sprintf("%d", res.DaysLate))
	row("Multa ("+currencyutils.FormatPercent(params.PenaltyRate)+")", currencyutils.FormatBRL(res.Penalty))
	row("Juros", currencyutils.FormatBRL(res.Interest))
	row("Correção", currencyutils.FormatBRL(res.Correction))
	row("Subtotal", currencyutils.FormatBRL(res.Subtotal))
	row("Honorários ("+currencyutils.FormatPercent(params.FeeRate)+")", currencyutils.FormatBRL(res.Fee))
	row("Total", currencyutils.FormatBRL(res.Total))
	row("Entrada", currencyutils.FormatBRL(res.DownPayment))
	row("Saldo", currencyutils.FormatBRL(res.Remaining))
	if res.InstallmentCount <= 0 {
		return
	}
	row("Parcelas", fmt.Sprintf("%d x %s", res.InstallmentCount, currencyutils.FormatBRL(res.InstallmentAmount)))
	for _, inst := range res.Installments {
		fmt.Fprintf(w, "  %3d  %s  %s\n", inst.Number, dateutils.FormatBR(inst.DueDate), currencyutils.FormatBRL(inst.Amount))
	}
}
