package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSimulation(t *testing.T) {
	params := SimulationParameters{InstallmentCount: 3}
	sim := NewSimulation(decimal.NewFromInt(1000), date(2024, 1, 1), date(2024, 1, 31), params)

	_, err := uuid.Parse(sim.ID)
	require.NoError(t, err)
	assert.Equal(t, SimulationDraft, sim.Status)
	assert.Equal(t, 3, sim.Parameters.InstallmentCount)
	assert.Len(t, sim.ShortID(), 8)
	assert.Equal(t, sim.ID[:8], sim.ShortID())
	assert.False(t, sim.CreatedAt.IsZero())

	other := NewSimulation(decimal.NewFromInt(1000), date(2024, 1, 1), date(2024, 1, 31), params)
	assert.NotEqual(t, sim.ID, other.ID)
}

func TestSimulation_ShortIDOnShortValue(t *testing.T) {
	assert.Equal(t, "abc", Simulation{ID: "abc"}.ShortID())
}
