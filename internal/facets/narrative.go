package facets

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/persona-forge/internal/llm"
	"github.com/jonathan/persona-forge/internal/prompts"
	"github.com/jonathan/persona-forge/internal/schemas"
	"github.com/jonathan/persona-forge/internal/types"
)

const (
	storyMinChars = 80
	storyMaxChars = 400
)

// Narrative generates the background-story facet.
func (g *Generator) Narrative(ctx context.Context, spec *types.PersonaSpec, adjustments string) (string, error) {
	template := prompts.MustGet("persona.json", "narrative")
	prompt := prompts.Format(template, map[string]string{
		"Name":         spec.Identity.Name,
		"Archetype":    spec.Identity.Archetype,
		"Motif":        spec.Identity.SignatureMotif,
		"CoreValues":   strings.Join(spec.Identity.CoreValues, ", "),
		"Philosophy":   spec.Beliefs.Philosophy,
		"Fingerprints": strings.Join(spec.Fingerprints, "; "),
	})

	responseText, err := g.client.Generate(ctx, llm.Request{
		System:      prompts.MustGet("persona.json", "narrative-system"),
		User:        withAdjustments(prompt, adjustments),
		Temperature: narrativeTemperature,
		MaxTokens:   1024,
		Tier:        g.tier,
		JSONSchema:  schemas.MustDoc(schemas.Narrative),
	})
	if err != nil {
		return "", &APICallError{
			Facet:   string(types.FacetNarrative),
			Message: "failed to generate narrative",
			Cause:   err,
		}
	}

	return ParseNarrative(responseText)
}

// ParseNarrative parses the narrative payload. A plain-text story (the raw
// fallback when structured output is unavailable) is accepted as-is when it
// fits the length bounds.
func ParseNarrative(responseText string) (string, error) {
	cleaned := llm.CleanJSONBlock(responseText)

	var payload struct {
		BackgroundStory string `json:"background_story"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err == nil && payload.BackgroundStory != "" {
		return validateStory(payload.BackgroundStory)
	}

	// Raw text fallback: the model wrote the story directly.
	story := strings.TrimSpace(responseText)
	if story == "" || strings.HasPrefix(story, "{") {
		return "", &InvalidResponseError{
			Facet:   string(types.FacetNarrative),
			Message: "payload contains no background story",
		}
	}
	return validateStory(story)
}

func validateStory(story string) (string, error) {
	story = strings.TrimSpace(story)
	// Bounds count characters, not bytes; accented names must not shift them.
	if n := utf8.RuneCountInString(story); n < storyMinChars || n > storyMaxChars {
		return "", &SchemaValidationError{
			Facet:   string(types.FacetNarrative),
			Message: "background story is outside the 80-400 character bounds",
		}
	}
	return story, nil
}
