package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/persona-forge/internal/pipeline"
	"github.com/jonathan/persona-forge/internal/types"
)

var regenerateCommand = &cobra.Command{
	Use:   "regenerate-facets",
	Short: "Re-roll selected facets of an existing persona profile",
	Long: `Regenerates only the named facets (voicePack, narrative, systemPrompt, nutrition) of a previously synthesized profile, keeping everything else unchanged. Requires the spec and profile JSON saved from the original run.`,
	RunE: runRegenerateCmd,
}

var (
	regenConfigPath  string
	regenSpecPath    string
	regenProfilePath string
	regenFacets      []string
	regenAdjust      string
	regenInterview   string
	regenOutput      string
)

func init() {
	regenerateCommand.Flags().StringVar(&regenConfigPath, "config", "", "Path to config.json file")
	regenerateCommand.Flags().StringVar(&regenSpecPath, "spec", "", "Path to the persona spec JSON (required)")
	regenerateCommand.Flags().StringVar(&regenProfilePath, "profile", "", "Path to the persona profile JSON (required)")
	regenerateCommand.Flags().StringSliceVarP(&regenFacets, "facet", "f", nil, "Facet to regenerate; repeatable (voicePack, narrative, systemPrompt, nutrition)")
	regenerateCommand.Flags().StringVar(&regenAdjust, "adjust", "", "Adjustment instruction applied to every regenerated facet")
	regenerateCommand.Flags().StringVarP(&regenInterview, "interview", "i", "", "Path to the interview JSON file (required when regenerating systemPrompt)")
	regenerateCommand.Flags().StringVarP(&regenOutput, "output", "o", "", "Path to write the updated profile JSON (default: stdout)")

	_ = regenerateCommand.MarkFlagRequired("spec")
	_ = regenerateCommand.MarkFlagRequired("profile")
	_ = regenerateCommand.MarkFlagRequired("facet")

	rootCmd.AddCommand(regenerateCommand)
}

// parseFacets converts flag values into facet identifiers.
func parseFacets(names []string) ([]types.Facet, error) {
	facets := make([]types.Facet, 0, len(names))
	for _, name := range names {
		f := types.Facet(strings.TrimSpace(name))
		if !f.Valid() {
			return nil, fmt.Errorf("unknown facet %q (want voicePack, narrative, systemPrompt, or nutrition)", name)
		}
		facets = append(facets, f)
	}
	return facets, nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func runRegenerateCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(regenConfigPath)
	if err != nil {
		return err
	}

	facets, err := parseFacets(regenFacets)
	if err != nil {
		return err
	}

	var spec types.PersonaSpec
	if err := readJSONFile(regenSpecPath, &spec); err != nil {
		return err
	}
	var profile types.PersonaProfile
	if err := readJSONFile(regenProfilePath, &profile); err != nil {
		return err
	}

	var conv *types.ConversationData
	if regenInterview != "" {
		interview, err := loadInterview(regenInterview)
		if err != nil {
			return err
		}
		conv = interview.Conversation
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	req := pipeline.RegenerateRequest{Facets: facets}
	if regenAdjust != "" {
		req.Adjustments = make(map[types.Facet]string, len(facets))
		for _, f := range facets {
			req.Adjustments[f] = regenAdjust
		}
	}

	updated, err := a.synth.RegenerateFacets(ctx, &spec, &profile, conv, req, nil)
	if err != nil {
		return err
	}

	return writeProfile(updated, regenOutput)
}
