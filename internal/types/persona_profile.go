package types

import "time"

// ProfileMetadata records how and when a profile was generated.
type ProfileMetadata struct {
	CreatedAt                 time.Time           `json:"created_at"`
	PipelineVersion           string              `json:"pipeline_version"`
	SourceInsights            PersonalityInsights `json:"source_insights"`
	GenerationDurationSeconds float64             `json:"generation_duration_seconds"`
	EstimatedTokenCount       int                 `json:"estimated_token_count"`
	PreviewReady              bool                `json:"preview_ready"`
}

// PersonaProfile is the final assembled output of a synthesis run. It is
// immutable once returned; the caller owns it for persistence and display.
type PersonaProfile struct {
	Name            string                  `json:"name"`
	Archetype       string                  `json:"archetype"`
	SystemPrompt    string                  `json:"system_prompt"`
	CoreValues      []string                `json:"core_values"`
	BackgroundStory string                  `json:"background_story"`
	Voice           VoiceCharacteristics    `json:"voice_characteristics"`
	Style           InteractionStyle        `json:"interaction_style"`
	AdaptationRules []AdaptationRule        `json:"adaptation_rules"`
	Nutrition       NutritionRecommendation `json:"nutrition_recommendation"`
	Metadata        ProfileMetadata         `json:"metadata"`
}

// Facet identifies one independently regenerable component of a persona.
type Facet string

// Facet identifiers accepted by the facet-regeneration entry point.
const (
	FacetVoicePack    Facet = "voicePack"
	FacetNarrative    Facet = "narrative"
	FacetSystemPrompt Facet = "systemPrompt"
	FacetNutrition    Facet = "nutrition"
)

// Valid reports whether f names a known facet.
func (f Facet) Valid() bool {
	switch f {
	case FacetVoicePack, FacetNarrative, FacetSystemPrompt, FacetNutrition:
		return true
	}
	return false
}
