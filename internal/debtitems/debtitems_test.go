package debtitems

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type expectedItem struct {
	description string
	amount      string
	dueDate     time.Time
}

func TestExtract_RowShapes(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		shape    string
		expected []expectedItem
	}{
		{
			name: "statement rows with competence and document number",
			text: "15/01/2024 01/2024 123 COND - Taxa ordinária 480,00\n" +
				"15/02/2024 02/2024 124 COND - Taxa ordinária 1.480,10\n",
			shape: "statement-row",
			expected: []expectedItem{
				{"Taxa ordinária", "480", utc(2024, 1, 15)},
				{"Taxa ordinária", "1480.10", utc(2024, 2, 15)},
			},
		},
		{
			name: "date description amount",
			text: "DEMONSTRATIVO DE DÉBITOS\n" +
				"10/01/2024 Taxa condominial 350,00\n" +
				"10/02/2024 Taxa condominial R$ 350,00\n" +
				"10/03/2024 Fundo de reserva 1.050,75\n",
			shape: "date-description-amount",
			expected: []expectedItem{
				{"Taxa condominial", "350", utc(2024, 1, 10)},
				{"Taxa condominial", "350", utc(2024, 2, 10)},
				{"Fundo de reserva", "1050.75", utc(2024, 3, 10)},
			},
		},
		{
			name: "date amount description",
			text: "05/03/2024 R$ 200,00 Multa por atraso\n" +
				"05/04/2024 R$ 210,00 Multa por atraso\n",
			shape: "date-amount-description",
			expected: []expectedItem{
				{"Multa por atraso", "200", utc(2024, 3, 5)},
				{"Multa por atraso", "210", utc(2024, 4, 5)},
			},
		},
		{
			name: "abbreviated month",
			text: "mar/2024 Cota condominial 420,00\n" +
				"ABR/2024 Cota condominial 420,00\n",
			shape: "month-name-description-amount",
			expected: []expectedItem{
				{"Cota condominial", "420", utc(2024, 3, 1)},
				{"Cota condominial", "420", utc(2024, 4, 1)},
			},
		},
		{
			name: "numeric month",
			text: "03/2024 Cota 420,00\n" +
				"04/2024 Cota 430,00\n",
			shape: "month-number-description-amount",
			expected: []expectedItem{
				{"Cota", "420", utc(2024, 3, 1)},
				{"Cota", "430", utc(2024, 4, 1)},
			},
		},
		{
			name: "date and amount only",
			text: "10/01/2024 350,00\n" +
				"10/02/2024 350,00\n",
			shape: "date-amount",
			expected: []expectedItem{
				{"Parcela/Taxa", "350", utc(2024, 1, 10)},
				{"Parcela/Taxa", "350", utc(2024, 2, 10)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, shape := ExtractWithShape(tt.text)
			assert.Equal(t, tt.shape, shape)
			require.Len(t, items, len(tt.expected))
			for i, want := range tt.expected {
				assert.Equal(t, want.description, items[i].Description)
				assert.True(t, decimal.RequireFromString(want.amount).Equal(items[i].Amount), "item %d amount %s", i, items[i].Amount)
				assert.Equal(t, want.dueDate, items[i].DueDate)
			}
		})
	}
}

func TestExtract_SingleRowsAreNotMerged(t *testing.T) {
	text := "10/01/2024 Taxa 350,00\n" +
		"mar/2024 Cota 420,00\n"

	items, shape := ExtractWithShape(text)
	require.Len(t, items, 1)
	assert.Equal(t, "date-description-amount", shape)
	assert.Equal(t, "Taxa", items[0].Description)
	assert.True(t, decimal.NewFromInt(350).Equal(items[0].Amount))
}

func TestExtract_NothingFound(t *testing.T) {
	items, shape := ExtractWithShape("Prezado condômino, não há débitos em aberto.")
	assert.Empty(t, items)
	assert.Empty(t, shape)
}

func TestScan_RejectsBadRows(t *testing.T) {
	dateDescAmount := rowShapes[1]
	text := "31/04/2024 Taxa 100,00\n" +
		"10/05/2024 Taxa 0,00\n" +
		"10/06/2024 Taxa 50,00\n"

	items := dateDescAmount.scan(text)
	require.Len(t, items, 1)
	assert.Equal(t, utc(2024, 6, 10), items[0].DueDate)
}

func TestScan_RejectsThreeDigitYear(t *testing.T) {
	statementRow := rowShapes[0]
	items := statementRow.scan("10/01/202 01/2024 1 X - Taxa 10,00")
	assert.Empty(t, items)

	items = statementRow.scan("10/01/24 01/2024 1 X - Taxa 10,00")
	require.Len(t, items, 1)
	assert.Equal(t, utc(2024, 1, 10), items[0].DueDate)
}

func TestScan_UnknownMonthName(t *testing.T) {
	monthName := rowShapes[3]
	assert.Empty(t, monthName.scan("xyz/2024 Cota 10,00"))
}

func TestShapeNames(t *testing.T) {
	assert.Equal(t, []string{
		"statement-row",
		"date-description-amount",
		"date-amount-description",
		"month-name-description-amount",
		"month-number-description-amount",
		"date-amount",
	}, ShapeNames())
}
