// Package currencyutils extracts and formats Brazilian real amounts.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// brAmount matches "1.234,56" or "1234,56".
const brAmount = `(?:\d{1,3}(?:\.\d{3})+|\d+),\d{2}`

var hundred = decimal.NewFromInt(100)

// amountPattern is one entry of the ordered amount strategy table. The amount
// is always capture group 1.
type amountPattern struct {
	name      string
	re        *regexp.Regexp
	normalize func(string) string
}

var amountPatterns = []amountPattern{
	{
		name: "labeled-total",
		re: regexp.MustCompile(`(?i)(?:valor\s+total|total\s+geral|valor\s+nominal|subtotal|total|soma|liquidado|boleto|a\s+pagar|vencido|principal)\s*[:=]?\s*(?:R\$\s*)?(` + brAmount + `)`),
		normalize: normalizeBR,
	},
	{
		name:      "total-line",
		re:        regexp.MustCompile(`(?i)TOTAL.*?(?:R\$\s*)?(` + brAmount + `)`),
		normalize: normalizeBR,
	},
	{
		name:      "valor-line",
		re:        regexp.MustCompile(`(?i)VALOR.*?(?:R\$\s*)?(` + brAmount + `)`),
		normalize: normalizeBR,
	},
	// Comma-decimal amounts outrank dot-decimal ones, which in pt-BR text
	// are usually rates ("1.00% a.m.").
	{
		name:      "bare-br",
		re:        regexp.MustCompile(`(?:^|[^\d.,])(` + brAmount + `)(?:[^\d]|$)`),
		normalize: normalizeBR,
	},
	{
		name:      "bare-dot-decimal",
		re:        regexp.MustCompile(`(?:^|[^\d.,])(\d+\.\d{2})(?:[^\d.,]|$)`),
		normalize: strings.TrimSpace,
	},
}

var thousandsOnly = regexp.MustCompile(`^-?\d{1,3}(?:\.\d{3})+$`)

// ExtractAmount returns the principal amount found in free text. Labeled
// totals are preferred over bare numbers; the first pattern that matches and
// parses wins.
func ExtractAmount(text string) (decimal.Decimal, bool) {
	amount, _, ok := ExtractAmountWithPattern(text)
	return amount, ok
}

// ExtractAmountWithPattern is ExtractAmount that also reports which pattern
// produced the value.
func ExtractAmountWithPattern(text string) (decimal.Decimal, string, bool) {
	for _, p := range amountPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, err := decimal.NewFromString(p.normalize(m[1]))
		if err != nil {
			continue
		}
		return amount, p.name, true
	}
	return decimal.Zero, "", false
}

// ParseBRAmount parses an amount written either in Brazilian notation
// ("R$ 1.234,56") or as a plain decimal ("1234.56").
func ParseBRAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return decimal.Zero, false
	}

	switch {
	case strings.Contains(s, ","):
		s = normalizeBR(s)
	case thousandsOnly.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// FormatBRL renders an amount for display, e.g. "R$1.234,56".
func FormatBRL(amount decimal.Decimal) string {
	cents := amount.Mul(hundred).Round(0).IntPart()
	return money.New(cents, money.BRL).Display()
}

// FormatPercent renders a rate as "2,5%".
func FormatPercent(rate decimal.Decimal) string {
	return strings.Replace(rate.String(), ".", ",", 1) + "%"
}

// Percentage returns amount × rate / 100.
func Percentage(amount, ratePercent decimal.Decimal) decimal.Decimal {
	return amount.Mul(ratePercent).Div(hundred)
}

func normalizeBR(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	return strings.Replace(s, ",", ".", 1)
}
