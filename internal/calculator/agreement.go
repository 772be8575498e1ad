package calculator

import (
	"time"

	"acordos/debt-parser/internal/models"
	"acordos/debt-parser/internal/parsererror"

	"github.com/shopspring/decimal"
)

// DebtBasis picks the principal and the start date of a parsed statement.
// The declared amount wins over the sum of the items; the declared due date
// wins over the oldest item date.
func DebtBasis(doc *models.ParsedDocument) (decimal.Decimal, time.Time, error) {
	if doc == nil {
		return decimal.Zero, time.Time{}, &parsererror.ValidationError{Field: "document", Reason: "no statement"}
	}

	var principal decimal.Decimal
	switch {
	case doc.HasAmount():
		principal = *doc.Amount
	case len(doc.DebtItems) > 0:
		principal = doc.ItemsTotal()
	default:
		return decimal.Zero, time.Time{}, &parsererror.ValidationError{Field: "amount", Reason: "statement has no amount or debt items"}
	}

	if doc.DueDate != nil {
		return principal, *doc.DueDate, nil
	}
	if earliest, ok := doc.EarliestItemDate(); ok {
		return principal, earliest, nil
	}
	return decimal.Zero, time.Time{}, &parsererror.ValidationError{Field: "due_date", Reason: "statement has no due date"}
}

// NewAgreement computes a settlement for principal and packs it with the
// debtor data into a draft simulation bundle.
func NewAgreement(principal decimal.Decimal, dueDate, agreementDate time.Time, params models.SimulationParameters, debtor models.Debtor, items []models.DebtItem) models.AgreementBundle {
	return models.AgreementBundle{
		Simulation: models.NewSimulation(principal, dueDate, agreementDate, params),
		Debtor:     debtor,
		DebtItems:  items,
		Result:     ComputeAgreement(principal, dueDate, agreementDate, params),
	}
}

// AgreementFromDocument builds the settlement bundle for a parsed statement.
func AgreementFromDocument(doc *models.ParsedDocument, agreementDate time.Time, params models.SimulationParameters) (models.AgreementBundle, error) {
	principal, due, err := DebtBasis(doc)
	if err != nil {
		return models.AgreementBundle{}, err
	}
	return NewAgreement(principal, due, agreementDate, params, models.DebtorFromDocument(doc), doc.DebtItems), nil
}
