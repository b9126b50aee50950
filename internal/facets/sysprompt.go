package facets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/persona-forge/internal/llm"
	"github.com/jonathan/persona-forge/internal/prompts"
	"github.com/jonathan/persona-forge/internal/types"
)

// SystemPrompt generates the production system-prompt facet: plain second-
// person instruction text, not schema-constrained. onDelta, when non-nil,
// receives incremental text as the model streams it.
func (g *Generator) SystemPrompt(ctx context.Context, spec *types.PersonaSpec, conv *types.ConversationData, insights *types.PersonalityInsights, adjustments string, onDelta llm.DeltaFunc) (string, error) {
	guardrails, err := json.Marshal(spec.Voice)
	if err != nil {
		return "", fmt.Errorf("failed to encode voice guardrails: %w", err)
	}

	var rules strings.Builder
	for _, rule := range spec.Beliefs.AdaptationRules {
		fmt.Fprintf(&rules, "- when %s (%s): %s\n", rule.Trigger, rule.Condition, rule.Adjustment)
	}

	template := prompts.MustGet("persona.json", "system-prompt")
	prompt := prompts.Format(template, map[string]string{
		"Name":               spec.Identity.Name,
		"Guardrails":         string(guardrails),
		"AdaptationRules":    strings.TrimRight(rules.String(), "\n"),
		"Motif":              spec.Identity.SignatureMotif,
		"PrimaryGoal":        conv.PrimaryGoal,
		"Traits":             strings.Join(insights.DominantTraits, ", "),
		"CommunicationStyle": insights.CommunicationStyle,
	})

	responseText, err := g.client.GenerateStream(ctx, llm.Request{
		User:        withAdjustments(prompt, adjustments),
		Temperature: promptTemperature,
		MaxTokens:   2048,
		Tier:        g.tier,
	}, onDelta)
	if err != nil {
		return "", &APICallError{
			Facet:   string(types.FacetSystemPrompt),
			Message: "failed to generate system prompt",
			Cause:   err,
		}
	}

	text := strings.TrimSpace(responseText)
	if text == "" {
		return "", &InvalidResponseError{
			Facet:   string(types.FacetSystemPrompt),
			Message: "empty system prompt",
		}
	}
	return text, nil
}
