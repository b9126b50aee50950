package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/persona-forge/internal/facets"
	"github.com/jonathan/persona-forge/internal/guardrails"
	"github.com/jonathan/persona-forge/internal/qa"
	"github.com/jonathan/persona-forge/internal/types"
)

// RegenerateRequest names the facets to regenerate and optional per-facet
// adjustment instructions. Facets not listed carry over from the profile.
type RegenerateRequest struct {
	Facets      []types.Facet
	Adjustments map[types.Facet]string
}

// RegenerateFacets regenerates the requested facets of an existing profile,
// keeping every other facet byte-for-byte, then re-clamps, re-checks
// coherence, and returns a fresh profile with updated metadata. The spec must
// be the one the profile was synthesized from.
func (s *Synthesizer) RegenerateFacets(ctx context.Context, spec *types.PersonaSpec, profile *types.PersonaProfile, conv *types.ConversationData, req RegenerateRequest, onProgress ProgressCallback) (*types.PersonaProfile, error) {
	if len(req.Facets) == 0 {
		return nil, fmt.Errorf("no facets requested")
	}
	requested := make(map[types.Facet]bool, len(req.Facets))
	for _, f := range req.Facets {
		if !f.Valid() {
			return nil, fmt.Errorf("unknown facet %q", f)
		}
		requested[f] = true
	}
	if requested[types.FacetSystemPrompt] && conv == nil {
		return nil, fmt.Errorf("regenerating the system prompt requires the original conversation")
	}

	start := time.Now()
	rep := newReporter(onProgress, uuid.NewString())

	// Carry over the current facets; the goroutines below overwrite only the
	// requested ones.
	results := &facets.Results{
		Pack:         &types.VoicePack{Voice: profile.Voice, Style: profile.Style},
		Story:        profile.BackgroundStory,
		SystemPrompt: profile.SystemPrompt,
		Nutrition:    profile.Nutrition,
	}

	rep.emit(PhaseGeneratingFacets, 0.2, "Regenerating requested facets")
	eg, egCtx := errgroup.WithContext(ctx)
	if requested[types.FacetVoicePack] {
		eg.Go(func() error {
			pack, err := s.generator.VoicePack(egCtx, spec, req.Adjustments[types.FacetVoicePack])
			if err != nil {
				return err
			}
			results.Pack = pack
			return nil
		})
	}
	if requested[types.FacetNarrative] {
		eg.Go(func() error {
			story, err := s.generator.Narrative(egCtx, spec, req.Adjustments[types.FacetNarrative])
			if err != nil {
				return err
			}
			results.Story = story
			return nil
		})
	}
	if requested[types.FacetSystemPrompt] {
		eg.Go(func() error {
			insights := profile.Metadata.SourceInsights
			prompt, err := s.generator.SystemPrompt(egCtx, spec, conv, &insights, req.Adjustments[types.FacetSystemPrompt], nil)
			if err != nil {
				return err
			}
			results.SystemPrompt = prompt
			return nil
		})
	}
	if requested[types.FacetNutrition] {
		eg.Go(func() error {
			rec, err := s.generator.Nutrition(egCtx, spec, req.Adjustments[types.FacetNutrition])
			if err != nil {
				return err
			}
			results.Nutrition = rec
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("facet regeneration failed: %w", err)
	}

	rep.emit(PhaseClampingNutrition, 0.7, "Bounding nutrition values")
	results.Nutrition = guardrails.ApplyNutrition(results.Nutrition, spec.Nutrition)

	rep.emit(PhaseQualityAssurance, 0.85, "Checking coherence invariants")
	if err := qa.CheckCoherence(spec, results.Story, results.SystemPrompt, results.Pack.Voice, results.Pack.Style); err != nil {
		return nil, err
	}

	rep.emit(PhaseAssembling, 0.95, "Assembling the persona profile")
	insights := profile.Metadata.SourceInsights
	updated := assembleProfile(spec, results, &insights, start)
	rep.finish(fmt.Sprintf("Facets refreshed for %q", updated.Name))
	return updated, nil
}
