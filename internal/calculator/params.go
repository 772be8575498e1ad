package calculator

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"acordos/debt-parser/internal/currencyutils"
	"acordos/debt-parser/internal/models"
	"acordos/debt-parser/internal/parsererror"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Parameter names accepted by ParseParameters and parameter files.
const (
	ParamInterestRateMonthly = "interest_rate_monthly"
	ParamPenaltyRate         = "penalty_rate"
	ParamFeeRate             = "fee_rate"
	ParamBreachPenaltyRate   = "breach_penalty_rate"
	ParamCorrectionIndex     = "correction_index"
	ParamInstallmentCount    = "installment_count"
	ParamDownPayment         = "down_payment"
)

var paramAliases = map[string]string{
	"interest":     ParamInterestRateMonthly,
	"juros":        ParamInterestRateMonthly,
	"penalty":      ParamPenaltyRate,
	"multa":        ParamPenaltyRate,
	"fee":          ParamFeeRate,
	"honorarios":   ParamFeeRate,
	"breach":       ParamBreachPenaltyRate,
	"correction":   ParamCorrectionIndex,
	"installments": ParamInstallmentCount,
	"parcelas":     ParamInstallmentCount,
	"entrada":      ParamDownPayment,
}

// ParseParameters builds parameters from string values keyed by parameter
// name. Missing or blank values stay zero. Only numeric form is checked.
func ParseParameters(values map[string]string) (models.SimulationParameters, error) {
	var p models.SimulationParameters
	err := ApplyParameters(&p, values)
	return p, err
}

// ApplyParameters overwrites the fields of p named in values. Decimal values
// accept both "2,5" and "2.5".
func ApplyParameters(p *models.SimulationParameters, values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := strings.TrimSpace(values[key])
		if raw == "" {
			continue
		}
		name := canonicalParam(key)

		if name == ParamInstallmentCount {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return &parsererror.ValidationError{Field: name, Reason: fmt.Sprintf("%q is not an integer", raw)}
			}
			p.InstallmentCount = n
			continue
		}

		target := decimalField(p, name)
		if target == nil {
			return &parsererror.ValidationError{Field: key, Reason: "unknown parameter"}
		}
		d, ok := currencyutils.ParseBRAmount(raw)
		if !ok {
			return &parsererror.ValidationError{Field: name, Reason: fmt.Sprintf("%q is not a number", raw)}
		}
		*target = d
	}
	return nil
}

// LoadParameters reads a YAML mapping of parameter names to values and
// applies it over base.
func LoadParameters(path string, base models.SimulationParameters) (models.SimulationParameters, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return base, fmt.Errorf("error reading parameters file: %w", err)
	}

	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return base, fmt.Errorf("error parsing parameters file %s: %w", path, err)
	}

	p := base
	if err := ApplyParameters(&p, values); err != nil {
		var ve *parsererror.ValidationError
		if errors.As(err, &ve) {
			ve.FilePath = path
		}
		return base, err
	}
	return p, nil
}

// ParameterValues renders p as a name → value map, the inverse of
// ParseParameters.
func ParameterValues(p models.SimulationParameters) map[string]string {
	return map[string]string{
		ParamInterestRateMonthly: p.InterestRateMonthly.String(),
		ParamPenaltyRate:         p.PenaltyRate.String(),
		ParamFeeRate:             p.FeeRate.String(),
		ParamBreachPenaltyRate:   p.BreachPenaltyRate.String(),
		ParamCorrectionIndex:     p.CorrectionIndex.String(),
		ParamInstallmentCount:    strconv.Itoa(p.InstallmentCount),
		ParamDownPayment:         p.DownPayment.String(),
	}
}

func canonicalParam(key string) string {
	key = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(key, "-", "_")))
	if alias, ok := paramAliases[key]; ok {
		return alias
	}
	return key
}

func decimalField(p *models.SimulationParameters, name string) *decimal.Decimal {
	switch name {
	case ParamInterestRateMonthly:
		return &p.InterestRateMonthly
	case ParamPenaltyRate:
		return &p.PenaltyRate
	case ParamFeeRate:
		return &p.FeeRate
	case ParamBreachPenaltyRate:
		return &p.BreachPenaltyRate
	case ParamCorrectionIndex:
		return &p.CorrectionIndex
	case ParamDownPayment:
		return &p.DownPayment
	}
	return nil
}
