package pipeline

import (
	"time"

	"github.com/jonathan/persona-forge/internal/facets"
	"github.com/jonathan/persona-forge/internal/types"
)

// estimateTokens is a rough chars/4 heuristic; it is only used for metadata.
func estimateTokens(text string) int {
	return len(text) / 4
}

func assembleProfile(spec *types.PersonaSpec, results *facets.Results, insights *types.PersonalityInsights, start time.Time) *types.PersonaProfile {
	meta := types.ProfileMetadata{
		CreatedAt:                 time.Now().UTC(),
		PipelineVersion:           PipelineVersion,
		GenerationDurationSeconds: time.Since(start).Seconds(),
		EstimatedTokenCount:       estimateTokens(results.SystemPrompt),
		PreviewReady:              true,
	}
	if insights != nil {
		meta.SourceInsights = *insights
	}
	return &types.PersonaProfile{
		Name:            spec.Identity.Name,
		Archetype:       spec.Identity.Archetype,
		SystemPrompt:    results.SystemPrompt,
		CoreValues:      spec.Identity.CoreValues,
		BackgroundStory: results.Story,
		Voice:           results.Pack.Voice,
		Style:           results.Pack.Style,
		AdaptationRules: spec.Beliefs.AdaptationRules,
		Nutrition:       results.Nutrition,
		Metadata:        meta,
	}
}
