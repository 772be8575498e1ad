// Package dateutils finds and formats the dates that appear on Brazilian
// debt statements.
package dateutils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date layouts
const (
	DateLayoutBR  = "02/01/2006"
	DateLayoutISO = "2006-01-02"
)

// datePattern captures day, month and year in groups 1 to 3.
type datePattern struct {
	name      string
	re        *regexp.Regexp
	yearShift int
}

var datePatterns = []datePattern{
	{name: "dd/mm/yyyy", re: regexp.MustCompile(`\b(\d{2})/(\d{2})/(\d{4})\b`)},
	{name: "dd-mm-yyyy", re: regexp.MustCompile(`\b(\d{2})-(\d{2})-(\d{4})\b`)},
	{name: "dd/mm/yy", re: regexp.MustCompile(`\b(\d{2})/(\d{2})/(\d{2})\b`), yearShift: 2000},
}

var isoDate = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})(?:[T ].*)?$`)

// Month abbreviations used on statements (first three letters, lower case).
var monthAbbreviations = map[string]time.Month{
	"jan": time.January,
	"fev": time.February,
	"mar": time.March,
	"abr": time.April,
	"mai": time.May,
	"jun": time.June,
	"jul": time.July,
	"ago": time.August,
	"set": time.September,
	"out": time.October,
	"nov": time.November,
	"dez": time.December,
}

// ExtractDate returns the first calendar-valid date in text. Patterns are
// tried in order and every match of a pattern is considered before moving to
// the next one. Impossible dates such as 31/04 are skipped, never clamped.
func ExtractDate(text string) (time.Time, bool) {
	for _, p := range datePatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			day, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			if t, ok := ParseDayMonthYear(day, month, year+p.yearShift); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// ParseDayMonthYear builds a UTC midnight date, rejecting combinations that
// time.Date would normalize.
func ParseDayMonthYear(day, month, year int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}

// ParseMonthYear resolves a month/year pair such as "mar/2024" or "03/2024"
// to the first day of that month. Month names are matched on their first
// three letters, case-insensitively, with a numeric fallback. Two-digit years
// are read as 20YY.
func ParseMonthYear(month, year string) (time.Time, bool) {
	m, ok := MonthFromString(month)
	if !ok {
		return time.Time{}, false
	}

	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return time.Time{}, false
	}
	switch len(strings.TrimSpace(year)) {
	case 2:
		y += 2000
	case 4:
	default:
		return time.Time{}, false
	}
	return ParseDayMonthYear(1, int(m), y)
}

// MonthFromString maps "jan".."dez" (or a month number) to a time.Month.
func MonthFromString(s string) (time.Month, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if r := []rune(s); len(r) >= 3 {
		if m, ok := monthAbbreviations[string(r[:3])]; ok {
			return m, true
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 12 {
		return 0, false
	}
	return time.Month(n), true
}

// ParseISODate parses "YYYY-MM-DD", ignoring any time part.
func ParseISODate(s string) (time.Time, bool) {
	m := isoDate.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return ParseDayMonthYear(day, month, year)
}

// ParseDateField coerces a single field value: Brazilian forms first, then ISO.
func ParseDateField(s string) (time.Time, bool) {
	if t, ok := ExtractDate(s); ok {
		return t, true
	}
	return ParseISODate(s)
}

// FormatBR formats a date as DD/MM/YYYY.
func FormatBR(t time.Time) string {
	return t.Format(DateLayoutBR)
}

// ToISODate formats a date as YYYY-MM-DD.
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// TruncateToDay returns UTC midnight of the UTC calendar day of t.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddMonths advances t by n calendar months using time.AddDate rollover
// (31/01 + 1 month is 02/03 or 03/03).
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// DaysBetween returns the whole number of UTC days from one date to another.
// The result is negative when to is before from.
func DaysBetween(from, to time.Time) int {
	return int(TruncateToDay(to).Sub(TruncateToDay(from)) / (24 * time.Hour))
}
