package specgen

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/persona-forge/internal/llm"
	"github.com/jonathan/persona-forge/internal/prompts"
	"github.com/jonathan/persona-forge/internal/schemas"
	"github.com/jonathan/persona-forge/internal/types"
)

// identityTemperature runs hot: a re-roll exists to escape similarity.
const identityTemperature = 0.9

// RegenerateIdentity re-derives name, archetype, and signature motif for a
// spec whose generated text was too similar to a remembered persona. Core
// values are kept. The returned identity replaces spec.Identity wholesale.
func (b *Builder) RegenerateIdentity(ctx context.Context, spec *types.PersonaSpec, primaryGoal, adjustments string) (types.Identity, error) {
	adj := ""
	if strings.TrimSpace(adjustments) != "" {
		adj = "\n\nAdditional direction: " + strings.TrimSpace(adjustments)
	}

	template := prompts.MustGet("persona.json", "regenerate-identity")
	prompt := prompts.Format(template, map[string]string{
		"OldName":     spec.Identity.Name,
		"OldMotif":    spec.Identity.SignatureMotif,
		"CoreValues":  strings.Join(spec.Identity.CoreValues, ", "),
		"Philosophy":  spec.Beliefs.Philosophy,
		"PrimaryGoal": primaryGoal,
		"Adjustments": adj,
	})

	responseText, err := b.client.Generate(ctx, llm.Request{
		System:      prompts.MustGet("persona.json", "build-spec-system"),
		User:        prompt,
		Temperature: identityTemperature,
		MaxTokens:   512,
		Tier:        b.tier,
		JSONSchema:  schemas.MustDoc(schemas.Identity),
	})
	if err != nil {
		return types.Identity{}, &APICallError{
			Message: "failed to regenerate identity",
			Cause:   err,
		}
	}

	return parseIdentity(responseText, spec.Identity.CoreValues)
}

// parseIdentity decodes the identity re-roll payload, falling back to raw
// text parsing when the structured path fails.
func parseIdentity(responseText string, coreValues []string) (types.Identity, error) {
	cleaned := llm.CleanJSONBlock(responseText)

	var payload struct {
		Name           string `json:"name"`
		Archetype      string `json:"archetype"`
		SignatureMotif string `json:"signature_motif"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return types.Identity{}, &InvalidResponseError{
			Message: "failed to decode regenerated identity",
			Cause:   err,
		}
	}
	if payload.Name == "" || payload.Archetype == "" || payload.SignatureMotif == "" {
		return types.Identity{}, &SchemaValidationError{
			Message: "regenerated identity is missing required fields",
			Cause:   schemas.Validate(schemas.Identity, cleaned),
		}
	}

	kept := make([]string, len(coreValues))
	copy(kept, coreValues)
	return types.Identity{
		Name:           payload.Name,
		Archetype:      payload.Archetype,
		CoreValues:     kept,
		SignatureMotif: payload.SignatureMotif,
	}, nil
}
