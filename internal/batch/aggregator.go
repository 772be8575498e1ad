// Package batch parses directories of statements concurrently and consolidates
// the results per debtor.
package batch

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"
	"acordos/debt-parser/internal/textutils"

	"github.com/shopspring/decimal"
)

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dr.Start.Format("2006-01-02"),
		dr.End.Format("2006-01-02"))
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// DebtorGroup is every statement found for one debtor, consolidated.
type DebtorGroup struct {
	Key       string
	Debtor    models.Debtor
	Files     []string
	Items     []models.DebtItem
	Total     decimal.Decimal
	DateRange DateRange
}

// Aggregator consolidates batch results by debtor.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Aggregator{logger: logger}
}

// DebtorKey identifies the debtor of a statement: the CPF/CNPJ digits when
// present, else the folded condominium, unit and block. Statements carrying
// none of these get an empty key.
func DebtorKey(doc *models.ParsedDocument) string {
	if doc == nil {
		return ""
	}
	if id := digitsOnly(doc.CpfCnpj); id != "" {
		return id
	}
	if doc.Unit == "" && doc.CondominiumName == "" {
		return ""
	}
	parts := []string{textutils.Fold(doc.CondominiumName), textutils.Fold(doc.Unit), textutils.Fold(doc.Block)}
	return strings.ToLower(strings.Join(parts, "|"))
}

// GroupByDebtor consolidates successful results. Failed results are ignored;
// successful ones without a debtor key form a group of their own, keyed by
// file name. Groups are sorted by key.
func (a *Aggregator) GroupByDebtor(results []Result) []DebtorGroup {
	groups := make(map[string]*DebtorGroup)

	sorted := make([]Result, 0, len(results))
	for _, r := range results {
		if r.OK() {
			sorted = append(sorted, r)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	for _, r := range sorted {
		doc := r.Document
		key := DebtorKey(doc)
		if key == "" {
			key = "file:" + filepath.Base(r.Path)
		}

		a.logger.Debug("File mapped to debtor",
			logging.F(logging.FieldFile, filepath.Base(r.Path)),
			logging.F("debtor_key", key))

		group, exists := groups[key]
		if !exists {
			group = &DebtorGroup{Key: key, Total: decimal.Zero}
			groups[key] = group
		}
		group.Files = append(group.Files, r.Path)
		fillDebtor(&group.Debtor, doc)

		if len(doc.DebtItems) > 0 {
			group.Items = append(group.Items, doc.DebtItems...)
		} else {
			if doc.Amount != nil {
				group.Total = group.Total.Add(*doc.Amount)
			}
			if doc.DueDate != nil {
				group.DateRange = group.DateRange.Merge(DateRange{Start: *doc.DueDate, End: *doc.DueDate})
			}
		}
	}

	out := make([]DebtorGroup, 0, len(groups))
	for _, group := range groups {
		group.Items = a.mergeItems(group.Items, group.Key)
		for _, item := range group.Items {
			group.Total = group.Total.Add(item.Amount)
			group.DateRange = group.DateRange.Merge(DateRange{Start: item.DueDate, End: item.DueDate})
		}
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	a.logger.Info("Grouped statements by debtor",
		logging.F(logging.FieldCount, len(sorted)),
		logging.F("debtor_groups", len(out)))
	return out
}

// mergeItems sorts items chronologically and drops repeats, i.e. items with
// the same date and amount and the same folded description.
func (a *Aggregator) mergeItems(items []models.DebtItem, key string) []models.DebtItem {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].DueDate.Equal(items[j].DueDate) {
			return items[i].DueDate.Before(items[j].DueDate)
		}
		if !items[i].Amount.Equal(items[j].Amount) {
			return items[i].Amount.LessThan(items[j].Amount)
		}
		return items[i].Description < items[j].Description
	})

	merged := make([]models.DebtItem, 0, len(items))
	duplicates := 0
	for _, item := range items {
		if n := len(merged); n > 0 && sameItem(merged[n-1], item) {
			duplicates++
			a.logger.Debug("Dropping repeated debt item",
				logging.F("debtor_key", key),
				logging.F("date", item.DueDate.Format("2006-01-02")),
				logging.F("amount", item.Amount.String()))
			continue
		}
		merged = append(merged, item)
	}

	if duplicates > 0 {
		a.logger.Warn("Found repeated debt items across statements",
			logging.F(logging.FieldCount, duplicates),
			logging.F("debtor_key", key))
	}
	return merged
}

func sameItem(a, b models.DebtItem) bool {
	return a.DueDate.Equal(b.DueDate) &&
		a.Amount.Equal(b.Amount) &&
		strings.EqualFold(textutils.Fold(strings.TrimSpace(a.Description)), textutils.Fold(strings.TrimSpace(b.Description)))
}

func fillDebtor(d *models.Debtor, doc *models.ParsedDocument) {
	set := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	set(&d.Name, doc.DebtorName)
	set(&d.Unit, doc.Unit)
	set(&d.Block, doc.Block)
	set(&d.CondominiumName, doc.CondominiumName)
	set(&d.CpfCnpj, doc.CpfCnpj)
}

var unsafeFilename = regexp.MustCompile(`[^a-z0-9_-]+`)

// GenerateOutputFilename creates a filename for the consolidated items export.
// Format: {debtor_key}_{start_date}_{end_date}.csv
func GenerateOutputFilename(key string, dateRange DateRange) string {
	safe := strings.Trim(unsafeFilename.ReplaceAllString(strings.ToLower(textutils.Fold(key)), "-"), "-")
	if safe == "" {
		safe = "unknown"
	}
	if r := dateRange.String(); r != "" {
		return fmt.Sprintf("%s_%s.csv", safe, r)
	}
	return safe + ".csv"
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
