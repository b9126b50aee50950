// Package specgen builds the PersonaSpec scaffold from interview data via one
// schema-constrained generative call. The spec gates all later facet work: it
// must validate before any facet call is issued.
package specgen

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/persona-forge/internal/llm"
	"github.com/jonathan/persona-forge/internal/prompts"
	"github.com/jonathan/persona-forge/internal/schemas"
	"github.com/jonathan/persona-forge/internal/types"
)

const (
	// specTemperature keeps spec generation close to the interview signals.
	specTemperature = 0.5
	specMaxTokens   = 2048
	maxQuotes       = 5
)

// Builder compresses interview inputs into a validated PersonaSpec.
type Builder struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewBuilder creates a spec builder using the given model tier.
func NewBuilder(client llm.Client, tier llm.ModelTier) *Builder {
	if tier == "" {
		tier = llm.TierStandard
	}
	return &Builder{client: client, tier: tier}
}

// Build issues the spec-generation call and returns a validated PersonaSpec.
func (b *Builder) Build(ctx context.Context, conv *types.ConversationData, insights *types.PersonalityInsights) (*types.PersonaSpec, error) {
	prompt := buildSpecPrompt(conv, insights)

	responseText, err := b.client.Generate(ctx, llm.Request{
		System:      prompts.MustGet("persona.json", "build-spec-system"),
		User:        prompt,
		Temperature: specTemperature,
		MaxTokens:   specMaxTokens,
		Tier:        b.tier,
		JSONSchema:  schemas.MustDoc(schemas.PersonaSpec),
	})
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate persona spec",
			Cause:   err,
		}
	}

	spec, err := ParseSpec(responseText)
	if err != nil {
		return nil, err
	}

	spec.Seed = Seed(conv, insights)
	return spec, nil
}

// ParseSpec parses and validates a PersonaSpec payload. Schema-conformant
// structured output is the expected path; when the provider returned a
// shape-equivalent raw text payload instead, the struct-level validator is
// the arbiter.
func ParseSpec(responseText string) (*types.PersonaSpec, error) {
	cleaned := llm.CleanJSONBlock(responseText)

	schemaErr := schemas.Validate(schemas.PersonaSpec, cleaned)

	var spec types.PersonaSpec
	if err := json.Unmarshal([]byte(cleaned), &spec); err != nil {
		if schemaErr != nil {
			return nil, &InvalidResponseError{
				Message: "payload is neither schema-conformant nor parseable",
				Cause:   err,
			}
		}
		return nil, &InvalidResponseError{
			Message: "failed to decode persona spec",
			Cause:   err,
		}
	}

	applyDefaults(&spec)

	if err := spec.Validate(); err != nil {
		cause := err
		if schemaErr != nil {
			cause = fmt.Errorf("%v (schema: %v)", err, schemaErr)
		}
		return nil, &SchemaValidationError{
			Message: "persona spec does not match the required shape",
			Cause:   cause,
		}
	}

	return &spec, nil
}

// applyDefaults is the single default-value policy for optional spec fields.
// Anything the model omitted gets the documented default, in one place.
func applyDefaults(spec *types.PersonaSpec) {
	defaults := types.DefaultNutritionGuardrails()
	if spec.Nutrition.Approach == "" {
		spec.Nutrition.Approach = defaults.Approach
	}
	if spec.Nutrition.ProteinRange == (types.Range{}) {
		spec.Nutrition.ProteinRange = defaults.ProteinRange
	}
	if spec.Nutrition.FatPctRange == (types.Range{}) {
		spec.Nutrition.FatPctRange = defaults.FatPctRange
	}
}

// Seed derives a deterministic hash of the goal, traits, and preferred times.
// Recorded for traceability only; it is not a determinism guarantee over the
// generative model.
func Seed(conv *types.ConversationData, insights *types.PersonalityInsights) string {
	h := sha256.New()
	h.Write([]byte(conv.PrimaryGoal))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(insights.DominantTraits, ",")))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(insights.PreferredTimesOfDay, ",")))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// buildSpecPrompt renders the spec-generation prompt from interview data.
func buildSpecPrompt(conv *types.ConversationData, insights *types.PersonalityInsights) string {
	quotes := conv.Quotes(maxQuotes)
	var qb strings.Builder
	for _, q := range quotes {
		qb.WriteString("- \"")
		qb.WriteString(q)
		qb.WriteString("\"\n")
	}
	if qb.Len() == 0 {
		qb.WriteString("(none recorded)\n")
	}

	template := prompts.MustGet("persona.json", "build-spec")
	return prompts.Format(template, map[string]string{
		"PrimaryGoal":         conv.PrimaryGoal,
		"Summary":             conv.Summary,
		"Traits":              strings.Join(insights.DominantTraits, ", "),
		"CommunicationStyle":  insights.CommunicationStyle,
		"MotivationType":      insights.MotivationType,
		"EnergyLevel":         insights.EnergyLevel,
		"PreferredComplexity": insights.PreferredComplexity,
		"StressResponse":      insights.StressResponse,
		"TimesOfDay":          strings.Join(insights.PreferredTimesOfDay, ", "),
		"Quotes":              strings.TrimRight(qb.String(), "\n"),
	})
}
