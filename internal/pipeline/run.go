// Package pipeline provides the high-level orchestration for faceted persona
// synthesis: spec building, concurrent facet generation, guardrail clamping,
// uniqueness enforcement, coherence checks, and final assembly.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/persona-forge/internal/facets"
	"github.com/jonathan/persona-forge/internal/guardrails"
	"github.com/jonathan/persona-forge/internal/llm"
	"github.com/jonathan/persona-forge/internal/observability"
	"github.com/jonathan/persona-forge/internal/qa"
	"github.com/jonathan/persona-forge/internal/specgen"
	"github.com/jonathan/persona-forge/internal/types"
	"github.com/jonathan/persona-forge/internal/uniqueness"
)

// PipelineVersion is recorded in every profile's metadata.
const PipelineVersion = "2.0.0"

// Options configures a Synthesizer.
type Options struct {
	Client    llm.Client
	Memory    *uniqueness.Memory
	Logger    *observability.Logger
	SpecTier  llm.ModelTier
	FacetTier llm.ModelTier
}

// Synthesizer owns the in-flight state of persona synthesis runs. One
// Synthesizer may serve concurrent runs; each run's mutable state is local to
// the call, and the shared similarity memory serializes its own access.
type Synthesizer struct {
	builder   *specgen.Builder
	generator *facets.Generator
	memory    *uniqueness.Memory
	log       *observability.Logger
}

// NewSynthesizer creates a Synthesizer from options. Client and Memory are
// required; a nil Logger disables logging.
func NewSynthesizer(opts Options) (*Synthesizer, error) {
	if opts.Client == nil {
		return nil, fmt.Errorf("llm client is required")
	}
	if opts.Memory == nil {
		return nil, fmt.Errorf("similarity memory is required")
	}
	log := opts.Logger
	if log == nil {
		log = observability.NewNopLogger()
	}
	return &Synthesizer{
		builder:   specgen.NewBuilder(opts.Client, opts.SpecTier),
		generator: facets.NewGenerator(opts.Client, opts.FacetTier),
		memory:    opts.Memory,
		log:       log,
	}, nil
}

// Synthesize runs the full pipeline and returns the assembled profile.
// Parse and schema errors abort the run; no partial profile is ever returned.
func (s *Synthesizer) Synthesize(ctx context.Context, conv *types.ConversationData, insights *types.PersonalityInsights, onProgress ProgressCallback) (*types.PersonaProfile, error) {
	start := time.Now()
	runID := uuid.NewString()
	rep := newReporter(onProgress, runID)
	log := s.log.With("run_id", runID)

	rep.emit(PhaseBuildingSpec, 0.05, "Distilling the interview into a persona spec")
	spec, err := s.builder.Build(ctx, conv, insights)
	if err != nil {
		return nil, fmt.Errorf("spec building failed: %w", err)
	}
	log.Info("persona spec built",
		"name", spec.Identity.Name,
		"archetype", spec.Identity.Archetype,
		"seed", spec.Seed)

	rep.emit(PhaseGeneratingFacets, 0.3, "Generating voice, narrative, system prompt, and nutrition")
	results, err := s.generator.GenerateAll(ctx, spec, conv, insights)
	if err != nil {
		return nil, fmt.Errorf("facet generation failed: %w", err)
	}

	rep.emit(PhaseClampingNutrition, 0.65, "Bounding nutrition values")
	results.Nutrition = guardrails.ApplyNutrition(results.Nutrition, spec.Nutrition)

	rep.emit(PhaseCheckingUniqueness, 0.72, "Comparing against remembered personas")
	blob := acceptedBlob(results)
	if s.memory.TooSimilar(blob) {
		log.Warn("persona too similar to a remembered persona",
			"max_similarity", s.memory.MaxSimilarity(blob))

		rep.emit(PhaseRegeneratingIdentity, 0.75, "Re-rolling identity for uniqueness")
		previousName := spec.Identity.Name
		identity, err := s.builder.RegenerateIdentity(ctx, spec, conv.PrimaryGoal, "")
		if err != nil {
			return nil, fmt.Errorf("identity regeneration failed: %w", err)
		}
		spec.Identity = identity
		log.Info("identity regenerated", "old_name", previousName, "new_name", identity.Name)

		results, err = s.generator.GenerateAllSequential(ctx, spec, conv, insights)
		if err != nil {
			return nil, fmt.Errorf("facet regeneration failed: %w", err)
		}
		results.Nutrition = guardrails.ApplyNutrition(results.Nutrition, spec.Nutrition)

		blob = acceptedBlob(results)
		if s.memory.TooSimilar(blob) {
			// The single bounded regeneration cycle is exhausted; the run is
			// accepted as-is rather than retried.
			log.Warn("regenerated persona still similar; accepting",
				"max_similarity", s.memory.MaxSimilarity(blob))
		}
	}

	rep.emit(PhaseQualityAssurance, 0.88, "Checking coherence invariants")
	if err := qa.CheckCoherence(spec, results.Story, results.SystemPrompt, results.Pack.Voice, results.Pack.Style); err != nil {
		return nil, err
	}

	if err := s.memory.Remember(ctx, blob); err != nil {
		return nil, err
	}

	rep.emit(PhaseAssembling, 0.95, "Assembling the persona profile")
	profile := assembleProfile(spec, results, insights, start)

	log.Info("persona synthesized",
		"name", profile.Name,
		"duration_s", profile.Metadata.GenerationDurationSeconds,
		"estimated_tokens", profile.Metadata.EstimatedTokenCount)
	rep.finish(fmt.Sprintf("Persona %q ready", profile.Name))
	return profile, nil
}

// acceptedBlob is the lower-cased narrative+prompt text compared against and
// stored in the similarity memory.
func acceptedBlob(results *facets.Results) string {
	return strings.ToLower(results.Story + "\n" + results.SystemPrompt)
}
