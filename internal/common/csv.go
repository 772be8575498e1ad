// Package common provides the CSV exports shared by the CLI commands.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"acordos/debt-parser/internal/dateutils"
	"acordos/debt-parser/internal/fileutils"
	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is the semicolon spreadsheets expect under a pt-BR locale,
// where the comma is the decimal separator.
const DefaultDelimiter = ';'

var (
	mu        sync.RWMutex
	log       = logging.NewLogrusAdapter("info", "text")
	delimiter = DefaultDelimiter
)

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter sets the field separator used by every reader and writer.
func SetDelimiter(delim rune) {
	mu.Lock()
	defer mu.Unlock()
	delimiter = delim
}

// Delimiter returns the configured field separator.
func Delimiter() rune {
	mu.RLock()
	defer mu.RUnlock()
	return delimiter
}

// SetLogger allows setting a configured logger
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	log = logger
}

func logger() logging.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// DebtItemRow is the CSV shape of a debt item.
type DebtItemRow struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
}

// InstallmentRow is the CSV shape of a schedule entry.
type InstallmentRow struct {
	Number  int    `csv:"number"`
	DueDate string `csv:"due_date"`
	Amount  string `csv:"amount"`
	Status  string `csv:"status"`
}

// DebtItemRows converts items for export. Amounts keep two decimals.
func DebtItemRows(items []models.DebtItem) []DebtItemRow {
	rows := make([]DebtItemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, DebtItemRow{
			Date:        dateutils.FormatBR(item.DueDate),
			Description: item.Description,
			Amount:      item.Amount.StringFixed(2),
		})
	}
	return rows
}

// InstallmentRows converts a schedule for export.
func InstallmentRows(installments []models.Installment) []InstallmentRow {
	rows := make([]InstallmentRow, 0, len(installments))
	for _, inst := range installments {
		rows = append(rows, InstallmentRow{
			Number:  inst.Number,
			DueDate: dateutils.FormatBR(inst.DueDate),
			Amount:  inst.Amount.StringFixed(2),
			Status:  inst.Status,
		})
	}
	return rows
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	log := logger().WithField(logging.FieldFile, filePath)
	log.Debug("Reading CSV file")

	file, err := fileutils.OpenFile(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = Delimiter()

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		log.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.Debug("Successfully read CSV data", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

// WriteCSVFile writes rows to csvFile with a header line, creating parent
// directories as needed. A nil slice is rejected; an empty one writes only
// the header.
func WriteCSVFile[TCSVRow any](rows []TCSVRow, csvFile string) error {
	if rows == nil {
		return fmt.Errorf("cannot write nil rows to CSV")
	}
	delim := Delimiter()
	log := logger().WithFields(
		logging.F(logging.FieldOutputFile, csvFile),
		logging.F(logging.FieldCount, len(rows)),
		logging.F(logging.FieldDelimiter, string(delim)),
	)

	file, err := fileutils.CreateFile(csvFile)
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = delim

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal rows to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.Info("Wrote CSV file")
	return nil
}

// WriteDebtItemsToCSV exports debt items as date;description;amount.
func WriteDebtItemsToCSV(items []models.DebtItem, csvFile string) error {
	if items == nil {
		return fmt.Errorf("cannot write nil debt items to CSV")
	}
	return WriteCSVFile(DebtItemRows(items), csvFile)
}

// WriteInstallmentsToCSV exports a payment schedule.
func WriteInstallmentsToCSV(installments []models.Installment, csvFile string) error {
	if installments == nil {
		return fmt.Errorf("cannot write nil installments to CSV")
	}
	return WriteCSVFile(InstallmentRows(installments), csvFile)
}
