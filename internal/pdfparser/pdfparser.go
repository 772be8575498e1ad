// Package pdfparser extracts debt statement data from the text layer of PDF
// documents.
package pdfparser

import (
	"strings"
	"unicode/utf8"

	"acordos/debt-parser/internal/currencyutils"
	"acordos/debt-parser/internal/dateutils"
	"acordos/debt-parser/internal/debtitems"
	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"
	"acordos/debt-parser/internal/parsererror"
	"acordos/debt-parser/internal/textutils"
)

// ParserName identifies this parser in errors and logs.
const ParserName = "PDF"

// Defaults for Options.
const (
	DefaultMinTextChars = 50
	DefaultMaxTextBytes = 2 << 20
)

// Options bounds the text-layer processing.
type Options struct {
	// MinTextChars is the shortest trimmed text layer accepted as digital.
	MinTextChars int
	// MaxTextBytes caps the text handed to the pattern matchers.
	MaxTextBytes int
}

// DefaultOptions returns the default bounds.
func DefaultOptions() Options {
	return Options{MinTextChars: DefaultMinTextChars, MaxTextBytes: DefaultMaxTextBytes}
}

func (o Options) withDefaults() Options {
	if o.MinTextChars <= 0 {
		o.MinTextChars = DefaultMinTextChars
	}
	if o.MaxTextBytes <= 0 {
		o.MaxTextBytes = DefaultMaxTextBytes
	}
	return o
}

var defaultHeuristics = NewHeuristics(nil)

// ParseText runs the statement heuristics over an already extracted text
// layer using the built-in profile and default bounds.
func ParseText(text string) (*models.ParsedDocument, error) {
	return parseText(text, "", defaultHeuristics, DefaultOptions(), nil)
}

// parseText is the text-layer pipeline shared by the adapter and ParseText.
func parseText(text, name string, h *Heuristics, opts Options, logger logging.Logger) (*models.ParsedDocument, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("warn", "text")
	}
	opts = opts.withDefaults()

	trimmed := strings.TrimSpace(text)
	if n := utf8.RuneCountInString(trimmed); n < opts.MinTextChars {
		return nil, &parsererror.NonDigitalDocumentError{
			FilePath:   name,
			TextLength: n,
			Threshold:  opts.MinTextChars,
		}
	}

	if cut, truncated := textutils.Truncate(trimmed, opts.MaxTextBytes); truncated {
		logger.Warn("Text layer truncated",
			logging.F(logging.FieldFile, name),
			logging.F(logging.FieldTextLength, len(trimmed)),
			logging.F(logging.FieldCount, opts.MaxTextBytes))
		trimmed = cut
	}

	b := models.NewDocumentBuilder(models.MediaTypePDF)

	if amount, pattern, ok := currencyutils.ExtractAmountWithPattern(trimmed); ok {
		b.WithAmount(amount)
		logger.Debug("Amount found", logging.F(logging.FieldPattern, pattern))
	} else {
		logger.Debug("No amount in text layer", logging.F(logging.FieldField, "amount"))
	}
	if dueDate, ok := dateutils.ExtractDate(trimmed); ok {
		b.WithDueDate(dueDate)
	}
	if id, ok := textutils.ExtractCpfCnpj(trimmed); ok {
		b.WithCpfCnpj(id)
		if !textutils.HasValidCheckDigits(id) {
			logger.Debug("Tax identifier has invalid check digits", logging.F(logging.FieldField, "cpf_cnpj"))
		}
	}

	h.Apply(textutils.SplitLines(trimmed), b)

	items, shape := debtitems.ExtractWithShape(trimmed)
	if len(items) > 0 {
		b.WithDebtItems(items)
		logger.Debug("Debt items found",
			logging.F(logging.FieldPattern, shape),
			logging.F(logging.FieldCount, len(items)))
	}

	doc := b.Build()
	if doc.DebtorName == "" && len(doc.DebtItems) == 0 {
		return nil, &parsererror.UnextractableDocumentError{FilePath: name, Parser: ParserName}
	}
	return doc, nil
}
