package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawDocument is an uploaded statement before any parsing happens.
type RawDocument struct {
	Name      string
	MediaType MediaType
	Data      []byte
}

// DebtItem is one row of an itemized debt statement, typically one unpaid
// monthly fee.
type DebtItem struct {
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	DueDate     time.Time       `json:"dueDate" yaml:"due_date"`
}

// ParsedDocument is the structured record extracted from a statement.
// Every field is optional; absence is expressed by the zero value or nil.
type ParsedDocument struct {
	DebtorName      string           `json:"debtorName,omitempty" yaml:"debtor_name,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty" yaml:"amount,omitempty"`
	DueDate         *time.Time       `json:"dueDate,omitempty" yaml:"due_date,omitempty"`
	Unit            string           `json:"unit,omitempty" yaml:"unit,omitempty"`
	Block           string           `json:"block,omitempty" yaml:"block,omitempty"`
	CondominiumName string           `json:"condominiumName,omitempty" yaml:"condominium_name,omitempty"`
	CpfCnpj         string           `json:"cpfCnpj,omitempty" yaml:"cpf_cnpj,omitempty"`
	DebtItems       []DebtItem       `json:"debtItems,omitempty" yaml:"debt_items,omitempty"`

	Source    MediaType `json:"source,omitempty" yaml:"source,omitempty"`
	PageCount int       `json:"pageCount,omitempty" yaml:"page_count,omitempty"`
}

// HasAmount reports whether an amount was found.
func (d *ParsedDocument) HasAmount() bool {
	return d.Amount != nil
}

// IsEmpty reports whether no field at all was extracted.
func (d *ParsedDocument) IsEmpty() bool {
	return d.DebtorName == "" && d.Amount == nil && d.DueDate == nil &&
		d.Unit == "" && d.Block == "" && d.CondominiumName == "" &&
		d.CpfCnpj == "" && len(d.DebtItems) == 0
}

// ItemsTotal returns the sum of all debt item amounts.
func (d *ParsedDocument) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range d.DebtItems {
		total = total.Add(item.Amount)
	}
	return total
}

// EarliestItemDate returns the oldest due date among the debt items.
func (d *ParsedDocument) EarliestItemDate() (time.Time, bool) {
	var earliest time.Time
	for i, item := range d.DebtItems {
		if i == 0 || item.DueDate.Before(earliest) {
			earliest = item.DueDate
		}
	}
	return earliest, len(d.DebtItems) > 0
}

// Debtor is the identity block shown on an agreement.
type Debtor struct {
	Name            string `json:"name" yaml:"name"`
	Unit            string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Block           string `json:"block,omitempty" yaml:"block,omitempty"`
	CondominiumName string `json:"condominiumName,omitempty" yaml:"condominium_name,omitempty"`
	CpfCnpj         string `json:"cpfCnpj,omitempty" yaml:"cpf_cnpj,omitempty"`
}

// DebtorFromDocument copies the identity fields of a parsed statement.
func DebtorFromDocument(doc *ParsedDocument) Debtor {
	if doc == nil {
		return Debtor{}
	}
	return Debtor{
		Name:            doc.DebtorName,
		Unit:            doc.Unit,
		Block:           doc.Block,
		CondominiumName: doc.CondominiumName,
		CpfCnpj:         doc.CpfCnpj,
	}
}
