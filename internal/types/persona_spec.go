package types

import (
	"github.com/go-playground/validator/v10"
)

// Voice guardrail enumerations. These are closed sets; the schema layer
// rejects anything outside them and the validator tags repeat the constraint
// at the struct level.
const (
	EnergyCalm     = "calm"
	EnergyBalanced = "balanced"
	EnergyHigh     = "high"
	EnergyIntense  = "intense"

	FormalityCasual         = "casual"
	FormalityConversational = "conversational"
	FormalityProfessional   = "professional"

	ResponseBrief    = "brief"
	ResponseModerate = "moderate"
	ResponseDetailed = "detailed"
)

// Identity is the nameable core of a persona. It is the only part of a
// PersonaSpec that may be replaced wholesale, during identity regeneration.
type Identity struct {
	Name           string   `json:"name" validate:"required,min=1"`
	Archetype      string   `json:"archetype" validate:"required,min=1"`
	CoreValues     []string `json:"core_values" validate:"required,min=3,max=5,dive,min=1"`
	SignatureMotif string   `json:"signature_motif" validate:"required,min=1"`
}

// VoiceGuardrails bound every later voice-facet choice to a closed enumeration.
type VoiceGuardrails struct {
	Energy            string `json:"energy" validate:"required,oneof=calm balanced high intense"`
	Pace              string `json:"pace" validate:"required,oneof=slow steady brisk"`
	Warmth            string `json:"warmth" validate:"required,oneof=cool neutral warm effusive"`
	Vocabulary        string `json:"vocabulary" validate:"required,oneof=simple everyday technical scientific"`
	SentenceStructure string `json:"sentence_structure" validate:"required,oneof=short varied flowing"`
	HumorLevel        string `json:"humor_level" validate:"required,oneof=none light playful frequent"`
	FormalityLevel    string `json:"formality_level" validate:"required,oneof=casual conversational professional"`
	ResponseLength    string `json:"response_length" validate:"required,oneof=brief moderate detailed"`
}

// AdaptationRule describes one conditional behavior shift the coach applies.
type AdaptationRule struct {
	Trigger    string `json:"trigger" validate:"required,oneof=timeOfDay stress progress mood"`
	Condition  string `json:"condition" validate:"required,min=1"`
	Adjustment string `json:"adjustment" validate:"required,min=1"`
}

// CoachingBeliefs holds the persona's philosophy and situational adjustments.
type CoachingBeliefs struct {
	Philosophy         string           `json:"philosophy" validate:"required,min=50,max=260"`
	AdaptationRules    []AdaptationRule `json:"adaptation_rules" validate:"required,min=2,max=6,dive"`
	MotivationalStance string           `json:"motivational_stance" validate:"required,min=1"`
}

// Range is a closed numeric interval. An inverted interval would make
// clamping collapse every value to Max, so Min <= Max is enforced.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max" validate:"gtefield=Min"`
}

// Contains reports whether v lies within the closed interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// NutritionGuardrails bound the nutrition facet's numeric output.
type NutritionGuardrails struct {
	Approach         string `json:"approach" validate:"required,min=1"`
	ProteinRange     Range  `json:"protein_range"`
	FatPctRange      Range  `json:"fat_pct_range"`
	CarbStrategyHint string `json:"carb_strategy_hint,omitempty"`
}

// PersonaSpec is the structured scaffold every facet generator works from.
// It is built once per synthesis run and is immutable afterwards, except
// that Identity may be swapped by the uniqueness guard.
type PersonaSpec struct {
	Identity     Identity            `json:"identity" validate:"required"`
	Voice        VoiceGuardrails     `json:"voice_guardrails" validate:"required"`
	Beliefs      CoachingBeliefs     `json:"coaching_beliefs" validate:"required"`
	Nutrition    NutritionGuardrails `json:"nutrition_guardrails" validate:"required"`
	Fingerprints []string            `json:"fingerprints" validate:"required,min=1,max=6,dive,min=1"`
	Seed         string              `json:"seed,omitempty"`
}

// Validate validates the PersonaSpec using the validator.
func (s *PersonaSpec) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// DefaultNutritionGuardrails returns the guardrails used when the spec call
// omits ranges. Protein is grams per pound of bodyweight; fat is a fraction
// of total calories.
func DefaultNutritionGuardrails() NutritionGuardrails {
	return NutritionGuardrails{
		Approach:     "balanced",
		ProteinRange: Range{Min: 0.5, Max: 1.2},
		FatPctRange:  Range{Min: 0.15, Max: 0.5},
	}
}
