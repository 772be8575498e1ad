// Package xmlparser extracts debt statement data from schema-less XML
// exports.
package xmlparser

import (
	"errors"

	"acordos/debt-parser/internal/currencyutils"
	"acordos/debt-parser/internal/dateutils"
	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"
	"acordos/debt-parser/internal/parsererror"
	"acordos/debt-parser/internal/store"
	"acordos/debt-parser/internal/textutils"
	"acordos/debt-parser/internal/xmlutils"

	"gopkg.in/xmlpath.v2"
)

// ParserName identifies this parser in errors and logs.
const ParserName = "XML"

// Extractor maps an XML tree onto a ParsedDocument using the key lists of a
// profile. It is immutable and safe for concurrent use.
type Extractor struct {
	keys      store.XMLProfile
	overrides *xmlutils.Overrides
	limits    Limits
}

// NewExtractor compiles the profile's XPath overrides. A nil profile means
// the built-in one.
func NewExtractor(profile *store.Profile, limits Limits) (*Extractor, error) {
	if profile == nil {
		profile = store.DefaultProfile()
	}
	overrides, err := xmlutils.CompileOverrides(profile.XML.XPaths)
	if err != nil {
		return nil, err
	}
	return &Extractor{
		keys:      profile.XML,
		overrides: overrides,
		limits:    limits.withDefaults(),
	}, nil
}

var defaultExtractor, _ = NewExtractor(nil, DefaultLimits())

// ParseBytes extracts a statement from XML bytes with the built-in profile.
func ParseBytes(data []byte) (*models.ParsedDocument, error) {
	return defaultExtractor.Extract("", data, nil)
}

// Extract builds the tree for data and maps it. name is only used in errors
// and logs.
func (e *Extractor) Extract(name string, data []byte, logger logging.Logger) (*models.ParsedDocument, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("warn", "text")
	}

	tree, err := BuildTree(data, e.limits)
	if err != nil {
		msg := "malformed XML"
		if errors.Is(err, ErrLimitExceeded) {
			msg = "document exceeds parser limits"
		}
		snippet, _ := textutils.Truncate(string(data), 40)
		return nil, &parsererror.InvalidFormatError{
			FilePath:             name,
			ExpectedFormat:       ParserName,
			ActualContentSnippet: snippet,
			Msg:                  msg,
			Err:                  err,
		}
	}

	var xroot *xmlpath.Node
	if !e.overrides.Empty() {
		if xroot, err = xmlutils.ParseXML(data); err != nil {
			logger.WithError(err).Debug("XPath overrides skipped", logging.F(logging.FieldFile, name))
		}
	}

	lookup := func(field string, keys []string) (string, bool) {
		if v, ok := e.overrides.Lookup(xroot, field); ok {
			return v, true
		}
		n, ok := Find(tree, keys...)
		if !ok {
			return "", false
		}
		v, ok := n.ScalarText()
		if !ok {
			logger.Debug("Field is not a scalar", logging.F(logging.FieldField, field))
		}
		return v, ok
	}

	b := models.NewDocumentBuilder(models.MediaTypeXML)

	if s, ok := lookup(store.FieldAmount, e.keys.AmountKeys); ok {
		if amount, ok := currencyutils.ParseBRAmount(s); ok {
			b.WithAmount(amount)
		} else {
			logger.Debug("Malformed numeric field", logging.F(logging.FieldField, store.FieldAmount))
		}
	}
	if s, ok := lookup(store.FieldDueDate, e.keys.DateKeys); ok {
		if due, ok := dateutils.ParseDateField(s); ok {
			b.WithDueDate(due)
		} else {
			logger.Debug("Malformed date field", logging.F(logging.FieldField, store.FieldDueDate))
		}
	}
	if s, ok := lookup(store.FieldDebtorName, e.keys.NameKeys); ok {
		b.WithDebtorName(s)
	}
	if s, ok := lookup(store.FieldCpfCnpj, e.keys.IdentifierKeys); ok {
		b.WithCpfCnpj(s)
	}
	if s, ok := lookup(store.FieldUnit, e.keys.UnitKeys); ok {
		b.WithUnit(s)
	}
	if s, ok := lookup(store.FieldBlock, e.keys.BlockKeys); ok {
		b.WithBlock(s)
	}
	if s, ok := lookup(store.FieldCondominium, e.keys.CondominiumKeys); ok {
		b.WithCondominiumName(s)
	}

	if items := e.items(tree, logger); len(items) > 0 {
		b.WithDebtItems(items)
	}

	doc := b.Build()
	if doc.IsEmpty() {
		return nil, &parsererror.UnextractableDocumentError{FilePath: name, Parser: ParserName}
	}
	return doc, nil
}

// items maps the first item list found. Items whose amount does not parse or
// whose due date is missing are dropped.
func (e *Extractor) items(tree *Node, logger logging.Logger) []models.DebtItem {
	list, ok := Find(tree, e.keys.ItemListKeys...)
	if !ok {
		return nil
	}

	elements := itemElements(list)
	var items []models.DebtItem
	for i, el := range elements {
		item, ok := e.item(el)
		if !ok {
			logger.Debug("Debt item dropped", logging.F(logging.FieldInstallment, i+1))
			continue
		}
		items = append(items, item)
	}
	return items
}

func (e *Extractor) item(el *Node) (models.DebtItem, bool) {
	item := models.DebtItem{Description: models.DefaultInstallmentDescription}
	if n, ok := Find(el, e.keys.ItemDescriptionKeys...); ok {
		if s, ok := n.ScalarText(); ok {
			item.Description = s
		}
	}

	n, ok := Find(el, e.keys.ItemAmountKeys...)
	if !ok {
		return item, false
	}
	s, ok := n.ScalarText()
	if !ok {
		return item, false
	}
	if item.Amount, ok = currencyutils.ParseBRAmount(s); !ok {
		return item, false
	}

	n, ok = Find(el, e.keys.ItemDateKeys...)
	if !ok {
		return item, false
	}
	if s, ok = n.ScalarText(); !ok {
		return item, false
	}
	if item.DueDate, ok = dateutils.ParseDateField(s); !ok {
		return item, false
	}
	return item, true
}
