// Package debtitems finds itemized debt rows (date, description, amount) in
// statement text.
package debtitems

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"acordos/debt-parser/internal/currencyutils"
	"acordos/debt-parser/internal/dateutils"
	"acordos/debt-parser/internal/models"
)

const (
	amountGroup   = `(?:R\$\s*)?(?P<amount>(?:\d{1,3}(?:\.\d{3})+|\d+),\d{2})`
	fullDateGroup = `(?P<day>\d{2})/(?P<month>\d{2})/(?P<year>\d{4})`
)

// rowShape is one entry of the ordered row table. Field positions are
// expressed with named groups: day/month/year or mon/myear for the date,
// desc and amount.
type rowShape struct {
	name        string
	re          *regexp.Regexp
	description string
}

var rowShapes = []rowShape{
	{
		name: "statement-row",
		re:   regexp.MustCompile(`(?P<day>\d{2})/(?P<month>\d{2})/(?P<year>\d{2,4})\s+\d{2}/\d{4}\s+\d+.*?\s+-\s+(?P<desc>.+?)\s+` + amountGroup),
	},
	{
		name: "date-description-amount",
		re:   regexp.MustCompile(fullDateGroup + `\s+(?P<desc>.+?)\s+` + amountGroup),
	},
	{
		name: "date-amount-description",
		re:   regexp.MustCompile(fullDateGroup + `\s+` + amountGroup + `\s+(?P<desc>[A-ZÁÀÂÃÉÊÍÓÔÕÚÇ].*)`),
	},
	{
		name: "month-name-description-amount",
		re:   regexp.MustCompile(`\b(?P<mon>[A-Za-z]{3})/(?P<myear>\d{4})\b\s+(?P<desc>.+?)\s+` + amountGroup),
	},
	{
		name: "month-number-description-amount",
		re:   regexp.MustCompile(`\b(?P<mon>\d{2})/(?P<myear>\d{4})\b\s+(?P<desc>.+?)\s+` + amountGroup),
	},
	{
		name:        "date-amount",
		re:          regexp.MustCompile(fullDateGroup + `\s+` + amountGroup),
		description: models.DefaultAmountOnlyDescription,
	},
}

// Extract returns the debt rows of the first row shape that recognizes more
// than one row. When no shape does, the rows of the first shape that found
// exactly one are returned. Rows of different shapes are never combined.
func Extract(text string) []models.DebtItem {
	items, _ := ExtractWithShape(text)
	return items
}

// ExtractWithShape is Extract that also names the winning row shape.
func ExtractWithShape(text string) ([]models.DebtItem, string) {
	var single []models.DebtItem
	var singleShape string
	for _, shape := range rowShapes {
		items := shape.scan(text)
		if len(items) > 1 {
			return items, shape.name
		}
		if len(items) == 1 && single == nil {
			single, singleShape = items, shape.name
		}
	}
	return single, singleShape
}

// ShapeNames lists the row shapes in priority order.
func ShapeNames() []string {
	names := make([]string, len(rowShapes))
	for i, shape := range rowShapes {
		names[i] = shape.name
	}
	return names
}

func (s rowShape) scan(text string) []models.DebtItem {
	var items []models.DebtItem
	for _, m := range s.re.FindAllStringSubmatch(text, -1) {
		if item, ok := s.build(m); ok {
			items = append(items, item)
		}
	}
	return items
}

func (s rowShape) build(m []string) (models.DebtItem, bool) {
	group := func(name string) string {
		if i := s.re.SubexpIndex(name); i >= 0 {
			return m[i]
		}
		return ""
	}

	amount, ok := currencyutils.ParseBRAmount(group("amount"))
	if !ok || !amount.IsPositive() {
		return models.DebtItem{}, false
	}

	dueDate, ok := s.date(group)
	if !ok {
		return models.DebtItem{}, false
	}

	description := strings.TrimSpace(group("desc"))
	// A bare currency marker means the amount sits before the description,
	// which is a different row shape.
	if description != "" && strings.Trim(description, "R$ ") == "" {
		return models.DebtItem{}, false
	}
	if description == "" {
		description = s.description
	}
	if description == "" {
		description = models.DefaultDebtDescription
	}

	return models.DebtItem{Description: description, Amount: amount, DueDate: dueDate}, true
}

func (s rowShape) date(group func(string) string) (time.Time, bool) {
	if mon := group("mon"); mon != "" {
		return dateutils.ParseMonthYear(mon, group("myear"))
	}

	day, _ := strconv.Atoi(group("day"))
	month, _ := strconv.Atoi(group("month"))
	yearStr := group("year")
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, false
	}
	switch len(yearStr) {
	case 2:
		year += 2000
	case 4:
	default:
		return time.Time{}, false
	}
	return dateutils.ParseDayMonthYear(day, month, year)
}
