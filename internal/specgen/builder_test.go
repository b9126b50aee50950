package specgen

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/persona-forge/internal/llm"
	"github.com/jonathan/persona-forge/internal/llm/llmtest"
	"github.com/jonathan/persona-forge/internal/types"
)

const specResponse = `{
  "identity": {
    "name": "Marisol Vega",
    "archetype": "steady strategist",
    "core_values": ["consistency", "honesty", "patience"],
    "signature_motif": "small hinges swing big doors"
  },
  "voice_guardrails": {
    "energy": "calm", "pace": "steady", "warmth": "warm", "vocabulary": "everyday",
    "sentence_structure": "varied", "humor_level": "light",
    "formality_level": "conversational", "response_length": "moderate"
  },
  "coaching_beliefs": {
    "philosophy": "Sustainable progress beats heroic effort; we build the smallest habit that survives a bad week.",
    "adaptation_rules": [
      {"trigger": "stress", "condition": "user reports a stressful day", "adjustment": "shorten the plan"},
      {"trigger": "progress", "condition": "user hits a weekly target", "adjustment": "raise one variable"}
    ],
    "motivational_stance": "quiet confidence"
  },
  "nutrition_guardrails": {
    "approach": "flexible tracking",
    "protein_range": {"min": 0.7, "max": 1.0},
    "fat_pct_range": {"min": 0.2, "max": 0.35},
    "carb_strategy_hint": "carbs around training"
  },
  "fingerprints": ["kept the same gym locker for nine years", "makes soup every Sunday"]
}`

func testInputs() (*types.ConversationData, *types.PersonalityInsights) {
	conv := &types.ConversationData{
		Transcript:   "full transcript",
		UserMessages: []string{"I want to lose weight", "mornings work best for me"},
		Summary:      "wants sustainable weight loss, trains in the morning",
		PrimaryGoal:  "lose weight",
		TurnCount:    12,
	}
	insights := &types.PersonalityInsights{
		DominantTraits:      []string{"supportive", "analytical"},
		CommunicationStyle:  "direct",
		MotivationType:      "intrinsic",
		EnergyLevel:         "moderate",
		PreferredComplexity: "simple",
		StressResponse:      "withdraws",
		PreferredTimesOfDay: []string{"morning"},
	}
	return conv, insights
}

func TestBuild_ValidResponse(t *testing.T) {
	client := &llmtest.Client{
		Handler: func(req llm.Request) (string, error) { return specResponse, nil },
	}
	builder := NewBuilder(client, llm.TierStandard)
	conv, insights := testInputs()

	spec, err := builder.Build(context.Background(), conv, insights)
	require.NoError(t, err)

	assert.Equal(t, "Marisol Vega", spec.Identity.Name)
	assert.Equal(t, "small hinges swing big doors", spec.Identity.SignatureMotif)
	assert.Len(t, spec.Beliefs.AdaptationRules, 2)
	assert.NotEmpty(t, spec.Seed)

	reqs := client.Requests()
	require.Len(t, reqs, 1)
	assert.InDelta(t, 0.5, reqs[0].Temperature, 1e-6)
	assert.NotEmpty(t, reqs[0].JSONSchema, "spec call must be schema-constrained")
	assert.Contains(t, reqs[0].User, "lose weight")
	assert.Contains(t, reqs[0].User, `"I want to lose weight"`)
}

func TestBuild_FallbackFromFencedText(t *testing.T) {
	wrapped := "Here is the persona specification you asked for:\n```json\n" + specResponse + "\n```"
	client := &llmtest.Client{
		Handler: func(req llm.Request) (string, error) { return wrapped, nil },
	}
	builder := NewBuilder(client, llm.TierStandard)
	conv, insights := testInputs()

	spec, err := builder.Build(context.Background(), conv, insights)
	require.NoError(t, err)
	assert.Equal(t, "steady strategist", spec.Identity.Archetype)
}

func TestParseSpec_Unparseable(t *testing.T) {
	_, err := ParseSpec("I'm sorry, I can't help with that.")
	require.Error(t, err)

	_, ok := err.(*InvalidResponseError)
	assert.True(t, ok, "expected InvalidResponseError, got %T", err)
}

func TestParseSpec_MissingRequiredFields(t *testing.T) {
	_, err := ParseSpec(`{"identity": {"name": "Sam"}}`)
	require.Error(t, err)

	_, ok := err.(*SchemaValidationError)
	assert.True(t, ok, "expected SchemaValidationError, got %T", err)
}

func TestParseSpec_DefaultsForOmittedGuardrails(t *testing.T) {
	withoutRanges := strings.Replace(specResponse,
		`"approach": "flexible tracking",
    "protein_range": {"min": 0.7, "max": 1.0},
    "fat_pct_range": {"min": 0.2, "max": 0.35},
    "carb_strategy_hint": "carbs around training"`,
		`"approach": "flexible tracking"`, 1)

	spec, err := ParseSpec(withoutRanges)
	require.NoError(t, err)

	defaults := types.DefaultNutritionGuardrails()
	assert.Equal(t, defaults.ProteinRange, spec.Nutrition.ProteinRange)
	assert.Equal(t, defaults.FatPctRange, spec.Nutrition.FatPctRange)
	assert.Equal(t, "flexible tracking", spec.Nutrition.Approach)
}

func TestParseSpec_InvertedGuardrailRange(t *testing.T) {
	inverted := strings.Replace(specResponse,
		`"protein_range": {"min": 0.7, "max": 1.0}`,
		`"protein_range": {"min": 1.0, "max": 0.7}`, 1)

	_, err := ParseSpec(inverted)
	require.Error(t, err)

	_, ok := err.(*SchemaValidationError)
	assert.True(t, ok, "expected SchemaValidationError, got %T", err)
}

func TestSeed_Deterministic(t *testing.T) {
	conv, insights := testInputs()

	assert.Equal(t, Seed(conv, insights), Seed(conv, insights))

	other := *conv
	other.PrimaryGoal = "gain muscle"
	assert.NotEqual(t, Seed(conv, insights), Seed(&other, insights))
}

func TestRegenerateIdentity_KeepsCoreValues(t *testing.T) {
	client := &llmtest.Client{
		Handler: func(req llm.Request) (string, error) {
			return `{"name": "Theo Brandt", "archetype": "relentless optimist", "signature_motif": "stack one honest brick"}`, nil
		},
	}
	builder := NewBuilder(client, llm.TierStandard)

	spec, err := ParseSpec(specResponse)
	require.NoError(t, err)

	identity, err := builder.RegenerateIdentity(context.Background(), spec, "lose weight", "make them grittier")
	require.NoError(t, err)

	assert.Equal(t, "Theo Brandt", identity.Name)
	assert.Equal(t, "stack one honest brick", identity.SignatureMotif)
	assert.Equal(t, spec.Identity.CoreValues, identity.CoreValues)

	reqs := client.Requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].User, "Marisol Vega")
	assert.Contains(t, reqs[0].User, "make them grittier")
}

func TestRegenerateIdentity_MissingFields(t *testing.T) {
	client := &llmtest.Client{
		Handler: func(req llm.Request) (string, error) {
			return `{"name": "Theo Brandt"}`, nil
		},
	}
	builder := NewBuilder(client, llm.TierStandard)

	spec, err := ParseSpec(specResponse)
	require.NoError(t, err)

	_, err = builder.RegenerateIdentity(context.Background(), spec, "", "")
	require.Error(t, err)

	_, ok := err.(*SchemaValidationError)
	assert.True(t, ok, "expected SchemaValidationError, got %T", err)
}
