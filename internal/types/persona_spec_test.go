package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSpec() PersonaSpec {
	return PersonaSpec{
		Identity: Identity{
			Name:           "Marisol Vega",
			Archetype:      "steady strategist",
			CoreValues:     []string{"consistency", "honesty", "patience"},
			SignatureMotif: "small hinges swing big doors",
		},
		Voice: VoiceGuardrails{
			Energy: "balanced", Pace: "steady", Warmth: "warm", Vocabulary: "everyday",
			SentenceStructure: "varied", HumorLevel: "light",
			FormalityLevel: "conversational", ResponseLength: "moderate",
		},
		Beliefs: CoachingBeliefs{
			Philosophy: "Sustainable progress beats heroic effort; we build the smallest habit that survives a bad week.",
			AdaptationRules: []AdaptationRule{
				{Trigger: "stress", Condition: "stressful day", Adjustment: "shorten the plan"},
				{Trigger: "mood", Condition: "low mood", Adjustment: "lead with a win"},
			},
			MotivationalStance: "quiet confidence",
		},
		Nutrition:    DefaultNutritionGuardrails(),
		Fingerprints: []string{"makes soup every Sunday"},
		Seed:         "ab12cd34ef56ab78",
	}
}

func TestPersonaSpec_RoundTrip(t *testing.T) {
	spec := validSpec()

	data, err := json.Marshal(&spec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"signature_motif"`)
	assert.Contains(t, string(data), `"nutrition_guardrails"`)

	var decoded PersonaSpec
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, spec, decoded)
	assert.NoError(t, decoded.Validate())
}

func TestPersonaSpec_Validate_BadEnum(t *testing.T) {
	spec := validSpec()
	spec.Voice.Energy = "frenetic"
	assert.Error(t, spec.Validate())

	spec = validSpec()
	spec.Beliefs.AdaptationRules[0].Trigger = "weather"
	assert.Error(t, spec.Validate())

	spec = validSpec()
	spec.Identity.CoreValues = []string{"only", "two"}
	assert.Error(t, spec.Validate())
}

func TestPersonaSpec_Validate_InvertedRange(t *testing.T) {
	spec := validSpec()
	spec.Nutrition.ProteinRange = Range{Min: 1.2, Max: 0.5}
	assert.Error(t, spec.Validate())

	spec = validSpec()
	spec.Nutrition.FatPctRange = Range{Min: 0.5, Max: 0.15}
	assert.Error(t, spec.Validate())

	// A degenerate single-point interval is still well formed.
	spec = validSpec()
	spec.Nutrition.ProteinRange = Range{Min: 0.8, Max: 0.8}
	assert.NoError(t, spec.Validate())
}

func TestRange_Contains(t *testing.T) {
	r := Range{Min: 0.5, Max: 1.2}
	assert.True(t, r.Contains(0.5))
	assert.True(t, r.Contains(1.2))
	assert.False(t, r.Contains(0.49))
	assert.False(t, r.Contains(1.21))
}

func TestFacet_Valid(t *testing.T) {
	assert.True(t, FacetVoicePack.Valid())
	assert.True(t, FacetNutrition.Valid())
	assert.False(t, Facet("hairstyle").Valid())
}

func TestConversationData_Quotes(t *testing.T) {
	conv := ConversationData{UserMessages: []string{"one", "two", "three"}}
	assert.Equal(t, []string{"one", "two"}, conv.Quotes(2))
	assert.Equal(t, []string{"one", "two", "three"}, conv.Quotes(10))
}
