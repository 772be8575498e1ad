// Package calculator computes debt settlements: penalty, pro-rata interest,
// monetary correction, legal fees and the installment schedule.
//
// Every function is pure. Rates are percentages and are not range-checked.
package calculator

import (
	"time"

	"acordos/debt-parser/internal/dateutils"
	"acordos/debt-parser/internal/models"

	"github.com/shopspring/decimal"
)

var (
	hundred       = decimal.NewFromInt(100)
	threeThousand = decimal.NewFromInt(3000)
)

// DaysLate returns the whole days between the due date and the agreement
// date, both taken as UTC calendar days. It is never negative.
func DaysLate(dueDate, agreementDate time.Time) int {
	days := dateutils.DaysBetween(dueDate, agreementDate)
	if days < 0 {
		return 0
	}
	return days
}

// Penalty is principal × penaltyRate / 100.
func Penalty(principal, penaltyRate decimal.Decimal) decimal.Decimal {
	return principal.Mul(penaltyRate).Div(hundred)
}

// Interest is pro-rata-die, non-compounding interest: the monthly rate is
// spread over 30 days, principal × (monthlyRate / 30 / 100) × days.
func Interest(principal, monthlyRate decimal.Decimal, daysLate int) decimal.Decimal {
	return principal.Mul(monthlyRate).Mul(decimal.NewFromInt(int64(daysLate))).Div(threeThousand)
}

// Correction is principal × correctionIndex / 100.
func Correction(principal, correctionIndex decimal.Decimal) decimal.Decimal {
	return principal.Mul(correctionIndex).Div(hundred)
}

// Fees is base × feeRate / 100.
func Fees(base, feeRate decimal.Decimal) decimal.Decimal {
	return base.Mul(feeRate).Div(hundred)
}

// BreachPenalty is remaining × breachRate / 100. It is not part of the
// agreement total.
func BreachPenalty(remaining, breachRate decimal.Decimal) decimal.Decimal {
	return remaining.Mul(breachRate).Div(hundred)
}

// InstallmentAmount splits remaining evenly. A non-positive count yields 0.
func InstallmentAmount(remaining decimal.Decimal, count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return remaining.Div(decimal.NewFromInt(int64(count)))
}

// GenerateInstallments lays out count installments of amount, the i-th due i
// calendar months after the agreement date. The last installment is not
// adjusted for rounding.
func GenerateInstallments(agreementDate time.Time, count int, amount decimal.Decimal) []models.Installment {
	if count <= 0 {
		return []models.Installment{}
	}
	installments := make([]models.Installment, 0, count)
	for i := 1; i <= count; i++ {
		installments = append(installments, models.Installment{
			Number:  i,
			DueDate: dateutils.AddMonths(agreementDate, i),
			Amount:  amount,
			Status:  models.InstallmentPending,
		})
	}
	return installments
}

// ComputeAgreement computes the full settlement for principal under params.
func ComputeAgreement(principal decimal.Decimal, dueDate, agreementDate time.Time, params models.SimulationParameters) models.CalculationResult {
	days := DaysLate(dueDate, agreementDate)

	penalty := Penalty(principal, params.PenaltyRate)
	interest := Interest(principal, params.InterestRateMonthly, days)
	correction := Correction(principal, params.CorrectionIndex)

	subtotal := principal.Add(penalty).Add(interest).Add(correction)
	fee := Fees(subtotal, params.FeeRate)
	total := subtotal.Add(fee)

	remaining := total.Sub(params.DownPayment)
	amount := InstallmentAmount(remaining, params.InstallmentCount)

	return models.CalculationResult{
		Principal:         principal,
		DaysLate:          days,
		Penalty:           penalty,
		Interest:          interest,
		Correction:        correction,
		Subtotal:          subtotal,
		Fee:               fee,
		Total:             total,
		DownPayment:       params.DownPayment,
		Remaining:         remaining,
		InstallmentCount:  params.InstallmentCount,
		InstallmentAmount: amount,
		Installments:      GenerateInstallments(agreementDate, params.InstallmentCount, amount),
	}
}
