package facets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/persona-forge/internal/llm"
	"github.com/jonathan/persona-forge/internal/prompts"
	"github.com/jonathan/persona-forge/internal/schemas"
	"github.com/jonathan/persona-forge/internal/types"
)

// VoicePack generates the voice characteristics and interaction style facet.
func (g *Generator) VoicePack(ctx context.Context, spec *types.PersonaSpec, adjustments string) (*types.VoicePack, error) {
	guardrails, err := json.Marshal(spec.Voice)
	if err != nil {
		return nil, fmt.Errorf("failed to encode voice guardrails: %w", err)
	}

	template := prompts.MustGet("persona.json", "voice-pack")
	prompt := prompts.Format(template, map[string]string{
		"Name":       spec.Identity.Name,
		"Archetype":  spec.Identity.Archetype,
		"Motif":      spec.Identity.SignatureMotif,
		"Guardrails": string(guardrails),
		"Stance":     spec.Beliefs.MotivationalStance,
	})

	responseText, err := g.client.Generate(ctx, llm.Request{
		User:        withAdjustments(prompt, adjustments),
		Temperature: voiceTemperature,
		MaxTokens:   1024,
		Tier:        g.tier,
		JSONSchema:  schemas.MustDoc(schemas.VoicePack),
	})
	if err != nil {
		return nil, &APICallError{
			Facet:   string(types.FacetVoicePack),
			Message: "failed to generate voice pack",
			Cause:   err,
		}
	}

	return ParseVoicePack(responseText)
}

// ParseVoicePack parses and validates a voice-pack payload, falling back to
// raw-text parsing when structured output is unavailable.
func ParseVoicePack(responseText string) (*types.VoicePack, error) {
	cleaned := llm.CleanJSONBlock(responseText)

	var pack types.VoicePack
	if err := json.Unmarshal([]byte(cleaned), &pack); err != nil {
		return nil, &InvalidResponseError{
			Facet:   string(types.FacetVoicePack),
			Message: "failed to decode voice pack",
			Cause:   err,
		}
	}

	normalizeVoicePack(&pack)

	if err := pack.Validate(); err != nil {
		cause := err
		if schemaErr := schemas.Validate(schemas.VoicePack, cleaned); schemaErr != nil {
			cause = fmt.Errorf("%v (schema: %v)", err, schemaErr)
		}
		return nil, &SchemaValidationError{
			Facet:   string(types.FacetVoicePack),
			Message: "voice pack does not match the required shape",
			Cause:   cause,
		}
	}

	return &pack, nil
}

// normalizeVoicePack lower-cases enum fields so near-miss casing from the
// model ("Calm") does not fail validation.
func normalizeVoicePack(pack *types.VoicePack) {
	pack.Voice.Energy = strings.ToLower(pack.Voice.Energy)
	pack.Voice.Pace = strings.ToLower(pack.Voice.Pace)
	pack.Voice.Warmth = strings.ToLower(pack.Voice.Warmth)
	pack.Voice.Vocabulary = strings.ToLower(pack.Voice.Vocabulary)
	pack.Voice.SentenceStructure = strings.ToLower(pack.Voice.SentenceStructure)
	pack.Style.HumorLevel = strings.ToLower(pack.Style.HumorLevel)
	pack.Style.FormalityLevel = strings.ToLower(pack.Style.FormalityLevel)
	pack.Style.ResponseLength = strings.ToLower(pack.Style.ResponseLength)
}
