package facets

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/persona-forge/internal/llm"
	"github.com/jonathan/persona-forge/internal/llm/llmtest"
	"github.com/jonathan/persona-forge/internal/types"
)

const voicePackResponse = `{
  "voice_characteristics": {
    "energy": "balanced", "pace": "steady", "warmth": "warm",
    "vocabulary": "everyday", "sentence_structure": "varied"
  },
  "interaction_style": {
    "greeting": "Morning. Ready when you are.",
    "closing": "Same time tomorrow.",
    "encouragement_phrases": ["Small hinges swing big doors.", "That counts."],
    "acknowledgment_style": "names the effort before the result",
    "correction_style": "one correction at a time, framed as an experiment",
    "humor_level": "light",
    "formality_level": "conversational",
    "response_length": "moderate"
  }
}`

const storyText = "Marisol spent nine years coaching out of the same community gym, where a taped-up sign over the door reads small hinges swing big doors. She still makes soup every Sunday for whoever shows up."

const nutritionResponse = `{
  "approach": "flexible tracking",
  "protein_grams_per_pound": 0.9,
  "fat_percentage": 0.25,
  "carb_strategy": "push carbs toward training windows",
  "rationale": "protein anchors recovery while calories stay flexible",
  "flexibility_notes": "weekends trade precision for consistency"
}`

func testSpec() *types.PersonaSpec {
	return &types.PersonaSpec{
		Identity: types.Identity{
			Name:           "Marisol Vega",
			Archetype:      "steady strategist",
			CoreValues:     []string{"consistency", "honesty", "patience"},
			SignatureMotif: "small hinges swing big doors",
		},
		Voice: types.VoiceGuardrails{
			Energy: "balanced", Pace: "steady", Warmth: "warm", Vocabulary: "everyday",
			SentenceStructure: "varied", HumorLevel: "light",
			FormalityLevel: "conversational", ResponseLength: "moderate",
		},
		Beliefs: types.CoachingBeliefs{
			Philosophy: "Sustainable progress beats heroic effort; we build the smallest habit that survives a bad week.",
			AdaptationRules: []types.AdaptationRule{
				{Trigger: "stress", Condition: "stressful day", Adjustment: "shorten the plan"},
				{Trigger: "mood", Condition: "low mood", Adjustment: "lead with a win"},
			},
			MotivationalStance: "quiet confidence",
		},
		Nutrition:    types.DefaultNutritionGuardrails(),
		Fingerprints: []string{"makes soup every Sunday"},
	}
}

func testConvInsights() (*types.ConversationData, *types.PersonalityInsights) {
	return &types.ConversationData{PrimaryGoal: "lose weight"},
		&types.PersonalityInsights{
			DominantTraits:     []string{"supportive"},
			CommunicationStyle: "direct",
			EnergyLevel:        "moderate",
		}
}

// scriptedHandler routes facet requests by prompt content.
func scriptedHandler(systemPromptText string) func(req llm.Request) (string, error) {
	return func(req llm.Request) (string, error) {
		switch {
		case strings.Contains(req.User, "voice characteristics"):
			return voicePackResponse, nil
		case strings.Contains(req.User, "background story"):
			return `{"background_story": ` + quoteJSON(storyText) + `}`, nil
		case strings.Contains(req.User, "nutrition recommendation"):
			return nutritionResponse, nil
		case strings.Contains(req.User, "system prompt"):
			return systemPromptText, nil
		}
		return "", errors.New("unrecognized prompt")
	}
}

func quoteJSON(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func TestVoicePack_ParsesAndNormalizes(t *testing.T) {
	client := &llmtest.Client{Handler: func(req llm.Request) (string, error) {
		return strings.Replace(voicePackResponse, `"energy": "balanced"`, `"energy": "Balanced"`, 1), nil
	}}
	g := NewGenerator(client, llm.TierStandard)

	pack, err := g.VoicePack(context.Background(), testSpec(), "")
	require.NoError(t, err)
	assert.Equal(t, "balanced", pack.Voice.Energy)
	assert.Len(t, pack.Style.EncouragementPhrases, 2)

	reqs := client.Requests()
	require.Len(t, reqs, 1)
	assert.InDelta(t, 0.7, reqs[0].Temperature, 1e-6)
	assert.NotEmpty(t, reqs[0].JSONSchema)
}

func TestVoicePack_BadEnum(t *testing.T) {
	client := &llmtest.Client{Handler: func(req llm.Request) (string, error) {
		return strings.Replace(voicePackResponse, `"energy": "balanced"`, `"energy": "frenetic"`, 1), nil
	}}
	g := NewGenerator(client, llm.TierStandard)

	_, err := g.VoicePack(context.Background(), testSpec(), "")
	require.Error(t, err)

	var schemaErr *SchemaValidationError
	assert.True(t, errors.As(err, &schemaErr))
}

func TestNarrative_StructuredPayload(t *testing.T) {
	client := &llmtest.Client{Handler: func(req llm.Request) (string, error) {
		return `{"background_story": ` + quoteJSON(storyText) + `}`, nil
	}}
	g := NewGenerator(client, llm.TierStandard)

	story, err := g.Narrative(context.Background(), testSpec(), "")
	require.NoError(t, err)
	assert.Contains(t, story, "small hinges swing big doors")
}

func TestParseNarrative_RawTextFallback(t *testing.T) {
	story, err := ParseNarrative(storyText)
	require.NoError(t, err)
	assert.Equal(t, storyText, story)
}

func TestParseNarrative_CountsCharactersNotBytes(t *testing.T) {
	// 60 characters but 120 bytes; a byte count would wrongly accept it.
	short := strings.Repeat("é", 60)
	_, err := ParseNarrative(`{"background_story": "` + short + `"}`)
	require.Error(t, err)

	var schemaErr *SchemaValidationError
	assert.True(t, errors.As(err, &schemaErr))

	accented := "Señora Muñoz spent a decade coaching out of a São Paulo café, where the chalkboard above the squat rack still reads construye el hábito más pequeño."
	story, err := ParseNarrative(`{"background_story": "` + accented + `"}`)
	require.NoError(t, err)
	assert.Equal(t, accented, story)
}

func TestParseNarrative_TooShort(t *testing.T) {
	_, err := ParseNarrative(`{"background_story": "too short to count"}`)
	require.Error(t, err)

	var schemaErr *SchemaValidationError
	assert.True(t, errors.As(err, &schemaErr))
}

func TestSystemPrompt_StreamsDeltas(t *testing.T) {
	promptText := "You are Marisol Vega. Small hinges swing big doors: that is how you coach."
	client := &llmtest.Client{Handler: scriptedHandler(promptText)}
	g := NewGenerator(client, llm.TierStandard)
	conv, insights := testConvInsights()

	var streamed strings.Builder
	got, err := g.SystemPrompt(context.Background(), testSpec(), conv, insights, "", func(delta string) {
		streamed.WriteString(delta)
	})
	require.NoError(t, err)
	assert.Equal(t, promptText, got)
	assert.Equal(t, promptText, streamed.String())

	reqs := client.Requests()
	require.Len(t, reqs, 1)
	assert.Empty(t, reqs[0].JSONSchema, "system prompt is plain text, not schema-constrained")
}

func TestNutrition_Parses(t *testing.T) {
	client := &llmtest.Client{Handler: func(req llm.Request) (string, error) {
		return nutritionResponse, nil
	}}
	g := NewGenerator(client, llm.TierStandard)

	rec, err := g.Nutrition(context.Background(), testSpec(), "")
	require.NoError(t, err)
	assert.Equal(t, 0.9, rec.ProteinGramsPerPound)

	reqs := client.Requests()
	require.Len(t, reqs, 1)
	assert.InDelta(t, 0.4, reqs[0].Temperature, 1e-6)
	assert.Contains(t, reqs[0].User, "0.50")
}

func TestParseNutrition_Garbage(t *testing.T) {
	_, err := ParseNutrition("not json at all")
	require.Error(t, err)

	var invalidErr *InvalidResponseError
	assert.True(t, errors.As(err, &invalidErr))
}

func TestGenerateAll_JoinsAllFacets(t *testing.T) {
	promptText := "You are Marisol Vega. Small hinges swing big doors, and you say so often."
	client := &llmtest.Client{Handler: scriptedHandler(promptText)}
	g := NewGenerator(client, llm.TierStandard)
	conv, insights := testConvInsights()

	results, err := g.GenerateAll(context.Background(), testSpec(), conv, insights)
	require.NoError(t, err)

	assert.NotNil(t, results.Pack)
	assert.NotEmpty(t, results.Story)
	assert.Equal(t, promptText, results.SystemPrompt)
	assert.Equal(t, 0.25, results.Nutrition.FatPercentage)
	assert.Equal(t, 4, client.CallCount())
}

func TestGenerateAll_FirstErrorWins(t *testing.T) {
	client := &llmtest.Client{Handler: func(req llm.Request) (string, error) {
		return "", errors.New("provider down")
	}}
	g := NewGenerator(client, llm.TierStandard)
	conv, insights := testConvInsights()

	_, err := g.GenerateAll(context.Background(), testSpec(), conv, insights)
	require.Error(t, err)
}

func TestGenerateAllSequential_OrderedCalls(t *testing.T) {
	promptText := "You are Marisol Vega. Small hinges swing big doors; keep saying it."
	client := &llmtest.Client{Handler: scriptedHandler(promptText)}
	g := NewGenerator(client, llm.TierStandard)
	conv, insights := testConvInsights()

	results, err := g.GenerateAllSequential(context.Background(), testSpec(), conv, insights)
	require.NoError(t, err)
	require.Equal(t, 4, client.CallCount())

	reqs := client.Requests()
	assert.Contains(t, reqs[0].User, "voice characteristics")
	assert.Contains(t, reqs[1].User, "background story")
	assert.Contains(t, reqs[2].User, "system prompt")
	assert.Contains(t, reqs[3].User, "nutrition recommendation")
	assert.NotNil(t, results.Pack)
}
