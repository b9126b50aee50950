// Package qa validates structural coherence across assembled persona facets.
// Violations are returned as a typed, catchable error so callers can retry,
// report, or degrade instead of aborting the process.
package qa

import (
	"fmt"
	"strings"

	"github.com/jonathan/persona-forge/internal/types"
)

// CoherenceError reports one or more coherence invariant violations.
type CoherenceError struct {
	Violations []string
}

func (e *CoherenceError) Error() string {
	return fmt.Sprintf("persona failed coherence checks: %s", strings.Join(e.Violations, "; "))
}

// CheckCoherence validates the assembled facets against the spec's identity.
// It returns nil when every invariant holds, or a *CoherenceError listing
// each violation.
func CheckCoherence(spec *types.PersonaSpec, story, systemPrompt string, voice types.VoiceCharacteristics, style types.InteractionStyle) error {
	var violations []string

	motif := strings.ToLower(strings.TrimSpace(spec.Identity.SignatureMotif))
	if motif != "" {
		inStory := strings.Contains(strings.ToLower(story), motif)
		inPrompt := strings.Contains(strings.ToLower(systemPrompt), motif)
		if !inStory && !inPrompt {
			violations = append(violations,
				fmt.Sprintf("signature motif %q missing from background story and system prompt", spec.Identity.SignatureMotif))
		}
	}

	// A calm voice should not default to long, buttoned-up replies.
	if voice.Energy == types.EnergyCalm &&
		style.ResponseLength == types.ResponseDetailed &&
		style.FormalityLevel == types.FormalityProfessional {
		violations = append(violations,
			"calm energy paired with detailed response length and professional formality")
	}

	if len(violations) > 0 {
		return &CoherenceError{Violations: violations}
	}
	return nil
}
