// Package guardrails deterministically bounds generated nutrition values into
// the ranges fixed by the persona spec. It never issues a generative call and
// never fails; out-of-range values are corrected silently.
package guardrails

import (
	"math"

	"github.com/jonathan/persona-forge/internal/types"
)

// Clamp bounds v into the closed range and rounds to 2 decimal places.
func Clamp(v float64, r types.Range) float64 {
	if v < r.Min {
		v = r.Min
	}
	if v > r.Max {
		v = r.Max
	}
	return math.Round(v*100) / 100
}

// ApplyNutrition returns rec with protein and fat clamped into the spec's
// guardrail ranges. All other fields pass through unchanged.
func ApplyNutrition(rec types.NutritionRecommendation, g types.NutritionGuardrails) types.NutritionRecommendation {
	rec.ProteinGramsPerPound = Clamp(rec.ProteinGramsPerPound, g.ProteinRange)
	rec.FatPercentage = Clamp(rec.FatPercentage, g.FatPctRange)
	return rec
}
