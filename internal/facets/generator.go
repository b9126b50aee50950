// Package facets generates the independent components of a persona: voice
// pack, narrative, system prompt, and nutrition recommendation. Each facet is
// a pure function of the PersonaSpec (the system prompt additionally reads
// the original conversation and insights) issuing one generative call.
package facets

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/persona-forge/internal/llm"
	"github.com/jonathan/persona-forge/internal/types"
)

// Per-facet sampling temperatures. Creative prose runs hotter than numbers.
const (
	voiceTemperature     = 0.7
	narrativeTemperature = 0.8
	promptTemperature    = 0.7
	nutritionTemperature = 0.4
)

// Generator issues facet calls against one LLM client.
type Generator struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewGenerator creates a facet generator using the given model tier.
func NewGenerator(client llm.Client, tier llm.ModelTier) *Generator {
	if tier == "" {
		tier = llm.TierStandard
	}
	return &Generator{client: client, tier: tier}
}

// Results bundles the outputs of all four facet calls.
type Results struct {
	Pack         *types.VoicePack
	Story        string
	SystemPrompt string
	Nutrition    types.NutritionRecommendation
}

// GenerateAll runs the four facet calls concurrently and joins them. The
// first error cancels the remaining in-flight calls.
func (g *Generator) GenerateAll(ctx context.Context, spec *types.PersonaSpec, conv *types.ConversationData, insights *types.PersonalityInsights) (*Results, error) {
	results := &Results{}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		pack, err := g.VoicePack(egCtx, spec, "")
		if err != nil {
			return err
		}
		results.Pack = pack
		return nil
	})
	eg.Go(func() error {
		story, err := g.Narrative(egCtx, spec, "")
		if err != nil {
			return err
		}
		results.Story = story
		return nil
	})
	eg.Go(func() error {
		prompt, err := g.SystemPrompt(egCtx, spec, conv, insights, "", nil)
		if err != nil {
			return err
		}
		results.SystemPrompt = prompt
		return nil
	})
	eg.Go(func() error {
		rec, err := g.Nutrition(egCtx, spec, "")
		if err != nil {
			return err
		}
		results.Nutrition = rec
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// GenerateAllSequential runs the four facet calls one after another. Used by
// the identity-regeneration pass, which is bounded and never retried.
func (g *Generator) GenerateAllSequential(ctx context.Context, spec *types.PersonaSpec, conv *types.ConversationData, insights *types.PersonalityInsights) (*Results, error) {
	pack, err := g.VoicePack(ctx, spec, "")
	if err != nil {
		return nil, err
	}
	story, err := g.Narrative(ctx, spec, "")
	if err != nil {
		return nil, err
	}
	prompt, err := g.SystemPrompt(ctx, spec, conv, insights, "", nil)
	if err != nil {
		return nil, err
	}
	rec, err := g.Nutrition(ctx, spec, "")
	if err != nil {
		return nil, err
	}
	return &Results{Pack: pack, Story: story, SystemPrompt: prompt, Nutrition: rec}, nil
}

// withAdjustments appends an optional user adjustment request to a prompt.
func withAdjustments(prompt, adjustments string) string {
	if strings.TrimSpace(adjustments) == "" {
		return prompt
	}
	return prompt + "\n\nAdjustment request from the user: " + strings.TrimSpace(adjustments)
}
