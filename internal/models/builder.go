package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentBuilder assembles a ParsedDocument field by field. Setters keep the
// first non-empty value they receive, so heuristics run in priority order can
// call them unconditionally.
type DocumentBuilder struct {
	doc ParsedDocument
}

// NewDocumentBuilder creates a builder for a document of the given source type.
func NewDocumentBuilder(source MediaType) *DocumentBuilder {
	return &DocumentBuilder{doc: ParsedDocument{Source: source}}
}

// WithDebtorName sets the debtor name if none is set yet.
func (b *DocumentBuilder) WithDebtorName(name string) *DocumentBuilder {
	if b.doc.DebtorName == "" {
		b.doc.DebtorName = strings.TrimSpace(name)
	}
	return b
}

// WithAmount sets the amount if none is set yet.
func (b *DocumentBuilder) WithAmount(amount decimal.Decimal) *DocumentBuilder {
	if b.doc.Amount == nil {
		b.doc.Amount = &amount
	}
	return b
}

// WithDueDate sets the due date if none is set yet.
func (b *DocumentBuilder) WithDueDate(date time.Time) *DocumentBuilder {
	if b.doc.DueDate == nil && !date.IsZero() {
		b.doc.DueDate = &date
	}
	return b
}

// WithUnit sets the unit if none is set yet.
func (b *DocumentBuilder) WithUnit(unit string) *DocumentBuilder {
	if b.doc.Unit == "" {
		b.doc.Unit = strings.TrimSpace(unit)
	}
	return b
}

// SetUnit replaces the unit, for sources that pair it with the debtor name.
// A blank unit leaves the current one.
func (b *DocumentBuilder) SetUnit(unit string) *DocumentBuilder {
	if unit = strings.TrimSpace(unit); unit != "" {
		b.doc.Unit = unit
	}
	return b
}

// WithBlock sets the block if none is set yet.
func (b *DocumentBuilder) WithBlock(block string) *DocumentBuilder {
	if b.doc.Block == "" {
		b.doc.Block = strings.TrimSpace(block)
	}
	return b
}

// WithCondominiumName sets the condominium name if none is set yet.
func (b *DocumentBuilder) WithCondominiumName(name string) *DocumentBuilder {
	if b.doc.CondominiumName == "" {
		b.doc.CondominiumName = strings.TrimSpace(name)
	}
	return b
}

// WithCpfCnpj sets the tax identifier if none is set yet.
func (b *DocumentBuilder) WithCpfCnpj(id string) *DocumentBuilder {
	if b.doc.CpfCnpj == "" {
		b.doc.CpfCnpj = id
	}
	return b
}

// WithDebtItems replaces the item list.
func (b *DocumentBuilder) WithDebtItems(items []DebtItem) *DocumentBuilder {
	b.doc.DebtItems = items
	return b
}

// WithPageCount records the number of pages of the source PDF.
func (b *DocumentBuilder) WithPageCount(pages int) *DocumentBuilder {
	b.doc.PageCount = pages
	return b
}

// HasDebtorName reports whether a debtor name was already set.
func (b *DocumentBuilder) HasDebtorName() bool {
	return b.doc.DebtorName != ""
}

// HasUnit reports whether a unit was already set.
func (b *DocumentBuilder) HasUnit() bool {
	return b.doc.Unit != ""
}

// Build returns the assembled document. When items are present and no
// positive amount was found, the amount becomes the sum of the items.
func (b *DocumentBuilder) Build() *ParsedDocument {
	doc := b.doc
	if len(doc.DebtItems) > 0 && (doc.Amount == nil || doc.Amount.IsZero()) {
		total := doc.ItemsTotal()
		doc.Amount = &total
	}
	return &doc
}
