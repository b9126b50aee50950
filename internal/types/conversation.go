// Package types provides type definitions for structured data used throughout the persona-forge system.
package types

// ConversationData captures the raw interview that drives persona synthesis.
// It is assembled by the interview collector and treated as immutable input.
type ConversationData struct {
	Transcript   string            `json:"transcript"`
	UserMessages []string          `json:"user_messages"`
	Summary      string            `json:"summary"`
	PrimaryGoal  string            `json:"primary_goal"`
	Variables    map[string]string `json:"variables,omitempty"`
	TurnCount    int               `json:"turn_count"`
}

// PersonalityInsights holds the categorical signals extracted from the
// interview by the analysis component. Immutable input.
type PersonalityInsights struct {
	DominantTraits      []string `json:"dominant_traits"`
	CommunicationStyle  string   `json:"communication_style"`
	MotivationType      string   `json:"motivation_type"`
	EnergyLevel         string   `json:"energy_level"`
	PreferredComplexity string   `json:"preferred_complexity"`
	EmotionalTones      []string `json:"emotional_tones,omitempty"`
	StressResponse      string   `json:"stress_response,omitempty"`
	PreferredTimesOfDay []string `json:"preferred_times_of_day,omitempty"`
}

// Quotes returns up to max verbatim user messages for prompt grounding.
func (c *ConversationData) Quotes(max int) []string {
	if max <= 0 || len(c.UserMessages) == 0 {
		return nil
	}
	if len(c.UserMessages) <= max {
		return c.UserMessages
	}
	return c.UserMessages[:max]
}
