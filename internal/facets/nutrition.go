package facets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/persona-forge/internal/llm"
	"github.com/jonathan/persona-forge/internal/prompts"
	"github.com/jonathan/persona-forge/internal/schemas"
	"github.com/jonathan/persona-forge/internal/types"
)

// Nutrition generates the numeric nutrition facet. Values outside the spec's
// guardrail ranges are tolerated here; the guardrail clamp corrects them
// deterministically downstream.
func (g *Generator) Nutrition(ctx context.Context, spec *types.PersonaSpec, adjustments string) (types.NutritionRecommendation, error) {
	template := prompts.MustGet("persona.json", "nutrition")
	prompt := prompts.Format(template, map[string]string{
		"Approach":   spec.Nutrition.Approach,
		"CarbHint":   spec.Nutrition.CarbStrategyHint,
		"Stance":     spec.Beliefs.MotivationalStance,
		"ProteinMin": fmt.Sprintf("%.2f", spec.Nutrition.ProteinRange.Min),
		"ProteinMax": fmt.Sprintf("%.2f", spec.Nutrition.ProteinRange.Max),
		"FatMin":     fmt.Sprintf("%.2f", spec.Nutrition.FatPctRange.Min),
		"FatMax":     fmt.Sprintf("%.2f", spec.Nutrition.FatPctRange.Max),
	})

	responseText, err := g.client.Generate(ctx, llm.Request{
		User:        withAdjustments(prompt, adjustments),
		Temperature: nutritionTemperature,
		MaxTokens:   512,
		Tier:        g.tier,
		JSONSchema:  schemas.MustDoc(schemas.Nutrition),
	})
	if err != nil {
		return types.NutritionRecommendation{}, &APICallError{
			Facet:   string(types.FacetNutrition),
			Message: "failed to generate nutrition recommendation",
			Cause:   err,
		}
	}

	return ParseNutrition(responseText)
}

// ParseNutrition parses and validates a nutrition payload, falling back to
// raw-text parsing when structured output is unavailable.
func ParseNutrition(responseText string) (types.NutritionRecommendation, error) {
	cleaned := llm.CleanJSONBlock(responseText)

	var rec types.NutritionRecommendation
	if err := json.Unmarshal([]byte(cleaned), &rec); err != nil {
		return types.NutritionRecommendation{}, &InvalidResponseError{
			Facet:   string(types.FacetNutrition),
			Message: "failed to decode nutrition recommendation",
			Cause:   err,
		}
	}

	if err := rec.Validate(); err != nil {
		cause := err
		if schemaErr := schemas.Validate(schemas.Nutrition, cleaned); schemaErr != nil {
			cause = fmt.Errorf("%v (schema: %v)", err, schemaErr)
		}
		return types.NutritionRecommendation{}, &SchemaValidationError{
			Facet:   string(types.FacetNutrition),
			Message: "nutrition recommendation does not match the required shape",
			Cause:   cause,
		}
	}

	return rec, nil
}
