package types

import "github.com/go-playground/validator/v10"

// VoiceCharacteristics is the generated voice facet. Every field must stay
// inside the spec's voice guardrail enumerations.
type VoiceCharacteristics struct {
	Energy            string `json:"energy" validate:"required,oneof=calm balanced high intense"`
	Pace              string `json:"pace" validate:"required,oneof=slow steady brisk"`
	Warmth            string `json:"warmth" validate:"required,oneof=cool neutral warm effusive"`
	Vocabulary        string `json:"vocabulary" validate:"required,oneof=simple everyday technical scientific"`
	SentenceStructure string `json:"sentence_structure" validate:"required,oneof=short varied flowing"`
}

// InteractionStyle is the generated conversational-habit facet.
type InteractionStyle struct {
	Greeting             string   `json:"greeting" validate:"required,min=1"`
	Closing              string   `json:"closing" validate:"required,min=1"`
	EncouragementPhrases []string `json:"encouragement_phrases" validate:"required,min=1,dive,min=1"`
	AcknowledgmentStyle  string   `json:"acknowledgment_style" validate:"required,min=1"`
	CorrectionStyle      string   `json:"correction_style" validate:"required,min=1"`
	HumorLevel           string   `json:"humor_level" validate:"required,oneof=none light playful frequent"`
	FormalityLevel       string   `json:"formality_level" validate:"required,oneof=casual conversational professional"`
	ResponseLength       string   `json:"response_length" validate:"required,oneof=brief moderate detailed"`
}

// VoicePack bundles the two outputs of the voice facet call.
type VoicePack struct {
	Voice VoiceCharacteristics `json:"voice_characteristics" validate:"required"`
	Style InteractionStyle     `json:"interaction_style" validate:"required"`
}

// NutritionRecommendation is the numeric nutrition facet. ProteinGramsPerPound
// and FatPercentage are clamped into the spec's guardrail ranges before the
// profile is assembled.
type NutritionRecommendation struct {
	Approach             string  `json:"approach" validate:"required,min=1"`
	ProteinGramsPerPound float64 `json:"protein_grams_per_pound" validate:"required,gt=0"`
	FatPercentage        float64 `json:"fat_percentage" validate:"required,gt=0"`
	CarbStrategy         string  `json:"carb_strategy" validate:"required,min=1"`
	Rationale            string  `json:"rationale,omitempty"`
	FlexibilityNotes     string  `json:"flexibility_notes,omitempty"`
}

// Validate validates the VoicePack using the validator.
func (p *VoicePack) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Validate validates the NutritionRecommendation using the validator.
func (n *NutritionRecommendation) Validate() error {
	validate := validator.New()
	return validate.Struct(n)
}
