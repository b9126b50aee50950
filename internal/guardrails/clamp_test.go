package guardrails

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/persona-forge/internal/types"
)

func TestClamp_AboveMax(t *testing.T) {
	assert.Equal(t, 1.2, Clamp(2.0, types.Range{Min: 0.5, Max: 1.2}))
}

func TestClamp_BelowMin(t *testing.T) {
	assert.Equal(t, 0.15, Clamp(0.05, types.Range{Min: 0.15, Max: 0.5}))
}

func TestClamp_InRangeRounds(t *testing.T) {
	assert.Equal(t, 0.87, Clamp(0.8749, types.Range{Min: 0.5, Max: 1.2}))
	assert.Equal(t, 0.88, Clamp(0.875, types.Range{Min: 0.5, Max: 1.2}))
}

func TestClamp_BoundsInclusive(t *testing.T) {
	r := types.Range{Min: 0.5, Max: 1.2}
	assert.Equal(t, 0.5, Clamp(0.5, r))
	assert.Equal(t, 1.2, Clamp(1.2, r))
}

func TestApplyNutrition(t *testing.T) {
	g := types.NutritionGuardrails{
		Approach:     "flexible",
		ProteinRange: types.Range{Min: 0.5, Max: 1.2},
		FatPctRange:  types.Range{Min: 0.15, Max: 0.5},
	}
	rec := types.NutritionRecommendation{
		Approach:             "flexible",
		ProteinGramsPerPound: 2.0,
		FatPercentage:        0.05,
		CarbStrategy:         "carbs around training",
		Rationale:            "untouched",
		FlexibilityNotes:     "also untouched",
	}

	got := ApplyNutrition(rec, g)

	assert.Equal(t, 1.2, got.ProteinGramsPerPound)
	assert.Equal(t, 0.15, got.FatPercentage)
	assert.True(t, g.ProteinRange.Contains(got.ProteinGramsPerPound))
	assert.True(t, g.FatPctRange.Contains(got.FatPercentage))

	// Everything else passes through.
	assert.Equal(t, rec.Approach, got.Approach)
	assert.Equal(t, rec.CarbStrategy, got.CarbStrategy)
	assert.Equal(t, rec.Rationale, got.Rationale)
	assert.Equal(t, rec.FlexibilityNotes, got.FlexibilityNotes)
}
