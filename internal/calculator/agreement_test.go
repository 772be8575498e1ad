package calculator

import (
	"errors"
	"testing"

	"acordos/debt-parser/internal/models"
	"acordos/debt-parser/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebtBasis(t *testing.T) {
	amount := d("945.50")
	due := day(2024, 1, 10)
	items := []models.DebtItem{
		{Description: "Taxa condominial", Amount: d("450"), DueDate: day(2024, 2, 10)},
		{Description: "Taxa condominial", Amount: d("450"), DueDate: day(2024, 1, 10)},
		{Description: "Fundo de reserva", Amount: d("45.50"), DueDate: day(2024, 3, 10)},
	}

	tests := []struct {
		name      string
		doc       *models.ParsedDocument
		principal string
		start     models.DebtItem
		field     string
	}{
		{"declared amount and due date", &models.ParsedDocument{Amount: &amount, DueDate: &due, DebtItems: items}, "945.50", models.DebtItem{DueDate: due}, ""},
		{"items only", &models.ParsedDocument{DebtItems: items}, "945.50", models.DebtItem{DueDate: day(2024, 1, 10)}, ""},
		{"amount without dates", &models.ParsedDocument{Amount: &amount}, "", models.DebtItem{}, "due_date"},
		{"nothing", &models.ParsedDocument{DebtorName: "ANA"}, "", models.DebtItem{}, "amount"},
		{"nil document", nil, "", models.DebtItem{}, "document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, start, err := DebtBasis(tt.doc)
			if tt.field != "" {
				var ve *parsererror.ValidationError
				require.True(t, errors.As(err, &ve), "got %v", err)
				assert.Equal(t, tt.field, ve.Field)
				return
			}
			require.NoError(t, err)
			assertDecimal(t, tt.principal, principal)
			assert.Equal(t, tt.start.DueDate, start)
		})
	}
}

func TestAgreementFromDocument(t *testing.T) {
	amount := d("1000")
	due := day(2023, 12, 16)
	doc := &models.ParsedDocument{
		DebtorName:      "MARIA DA SILVA",
		CpfCnpj:         "529.982.247-25",
		CondominiumName: "Condomínio Edifício Aurora",
		Unit:            "101",
		Amount:          &amount,
		DueDate:         &due,
	}
	params := baseParams()
	params.InstallmentCount = 3

	bundle, err := AgreementFromDocument(doc, day(2024, 1, 15), params)
	require.NoError(t, err)

	assert.Equal(t, "MARIA DA SILVA", bundle.Debtor.Name)
	assert.Equal(t, "101", bundle.Debtor.Unit)
	assert.Equal(t, models.SimulationDraft, bundle.Simulation.Status)
	assert.Len(t, bundle.Simulation.ShortID(), 8)
	assertDecimal(t, "1000", bundle.Simulation.DebtAmount)
	assert.Equal(t, due, bundle.Simulation.StartDate)
	assert.Equal(t, 30, bundle.Result.DaysLate)
	assertDecimal(t, "1133", bundle.Result.Total)
	assert.Len(t, bundle.Result.Installments, 3)

	_, err = AgreementFromDocument(&models.ParsedDocument{}, day(2024, 1, 15), params)
	assert.Error(t, err)
}

func TestNewAgreement_DistinctIDs(t *testing.T) {
	a := NewAgreement(d("100"), day(2024, 1, 1), day(2024, 1, 1), baseParams(), models.Debtor{}, nil)
	b := NewAgreement(d("100"), day(2024, 1, 1), day(2024, 1, 1), baseParams(), models.Debtor{}, nil)
	assert.NotEqual(t, a.Simulation.ID, b.Simulation.ID)
	assert.True(t, a.Result.Total.Equal(b.Result.Total))
}
