package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SimulationParameters holds the settlement terms. Rates are percentages.
// Values are not range-checked; that is a caller concern.
type SimulationParameters struct {
	InterestRateMonthly decimal.Decimal `json:"interestRateMonthly" yaml:"interest_rate_monthly" mapstructure:"interest_rate_monthly"`
	PenaltyRate         decimal.Decimal `json:"penaltyRate" yaml:"penalty_rate" mapstructure:"penalty_rate"`
	FeeRate             decimal.Decimal `json:"feeRate" yaml:"fee_rate" mapstructure:"fee_rate"`
	BreachPenaltyRate   decimal.Decimal `json:"breachPenaltyRate" yaml:"breach_penalty_rate" mapstructure:"breach_penalty_rate"`
	CorrectionIndex     decimal.Decimal `json:"correctionIndex" yaml:"correction_index" mapstructure:"correction_index"`
	InstallmentCount    int             `json:"installmentCount" yaml:"installment_count" mapstructure:"installment_count"`
	DownPayment         decimal.Decimal `json:"downPayment" yaml:"down_payment" mapstructure:"down_payment"`
}

// Installment is one entry of a payment schedule.
type Installment struct {
	Number  int             `json:"number" yaml:"number"`
	DueDate time.Time       `json:"dueDate" yaml:"due_date"`
	Amount  decimal.Decimal `json:"amount" yaml:"amount"`
	Status  string          `json:"status" yaml:"status"`
}

// CalculationResult is the outcome of a settlement computation. It is a plain
// value: any parameter change means computing a new one.
type CalculationResult struct {
	Principal         decimal.Decimal `json:"principal"`
	DaysLate          int             `json:"daysLate"`
	Penalty           decimal.Decimal `json:"penalty"`
	Interest          decimal.Decimal `json:"interest"`
	Correction        decimal.Decimal `json:"correction"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Fee               decimal.Decimal `json:"fee"`
	Total             decimal.Decimal `json:"total"`
	DownPayment       decimal.Decimal `json:"downPayment"`
	Remaining         decimal.Decimal `json:"remaining"`
	InstallmentCount  int             `json:"installmentCount"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount"`
	Installments      []Installment   `json:"installments"`
}

// Simulation is the metadata of a settlement proposal.
type Simulation struct {
	ID            string               `json:"id"`
	DebtAmount    decimal.Decimal      `json:"debtAmount"`
	StartDate     time.Time            `json:"startDate"`
	AgreementDate time.Time            `json:"agreementDate"`
	Parameters    SimulationParameters `json:"parameters"`
	Status        string               `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// NewSimulation creates a draft simulation with a fresh identifier.
func NewSimulation(debt decimal.Decimal, start, agreement time.Time, params SimulationParameters) Simulation {
	return Simulation{
		ID:            uuid.NewString(),
		DebtAmount:    debt,
		StartDate:     start,
		AgreementDate: agreement,
		Parameters:    params,
		Status:        SimulationDraft,
		CreatedAt:     time.Now().UTC(),
	}
}

// ShortID returns the first eight characters of the identifier.
func (s Simulation) ShortID() string {
	if len(s.ID) <= 8 {
		return s.ID
	}
	return s.ID[:8]
}

// AgreementBundle is everything the agreement renderer needs.
type AgreementBundle struct {
	Simulation Simulation        `json:"simulation"`
	Debtor     Debtor            `json:"debtor"`
	DebtItems  []DebtItem        `json:"debtItems,omitempty"`
	Result     CalculationResult `json:"result"`
}
