package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/persona-forge/internal/pipeline"
	"github.com/jonathan/persona-forge/internal/types"
)

var synthesizeCommand = &cobra.Command{
	Use:   "synthesize",
	Short: "Synthesize a coach persona from an interview file",
	Long: `Runs the full synthesis pipeline: spec building -> facet generation -> guardrail clamping -> uniqueness check -> coherence check -> assembly.

The interview file is JSON with "conversation" and "insights" objects. The finished profile is written as JSON to --output or stdout.`,
	RunE: runSynthesizeCmd,
}

var (
	synthConfigPath string
	synthInput      string
	synthOutput     string
	synthAPIKey     string
	synthQuiet      bool
)

func init() {
	synthesizeCommand.Flags().StringVar(&synthConfigPath, "config", "", "Path to config.json file")
	synthesizeCommand.Flags().StringVarP(&synthInput, "interview", "i", "", "Path to interview JSON file (required)")
	synthesizeCommand.Flags().StringVarP(&synthOutput, "output", "o", "", "Path to write the profile JSON (default: stdout)")
	synthesizeCommand.Flags().StringVar(&synthAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	synthesizeCommand.Flags().BoolVarP(&synthQuiet, "quiet", "q", false, "Suppress progress output")

	_ = synthesizeCommand.MarkFlagRequired("interview")

	rootCmd.AddCommand(synthesizeCommand)
}

// InterviewFile is the on-disk input for synthesis.
type InterviewFile struct {
	Conversation *types.ConversationData    `json:"conversation"`
	Insights     *types.PersonalityInsights `json:"insights"`
}

// loadInterview reads and validates an interview file.
func loadInterview(path string) (*InterviewFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read interview file: %w", err)
	}
	var in InterviewFile
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse interview JSON: %w", err)
	}
	if in.Conversation == nil || in.Conversation.PrimaryGoal == "" {
		return nil, fmt.Errorf("interview file must set conversation.primary_goal")
	}
	if in.Insights == nil {
		return nil, fmt.Errorf("interview file must include insights")
	}
	return &in, nil
}

// writeProfile writes the profile JSON to path, or stdout when path is empty.
func writeProfile(profile *types.PersonaProfile, path string) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

func runSynthesizeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(synthConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = synthAPIKey
	}

	interview, err := loadInterview(synthInput)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	var onProgress pipeline.ProgressCallback
	if !synthQuiet {
		onProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%3.0f%%] %s: %s\n", event.Progress*100, event.Phase, event.Message)
		}
	}

	profile, err := a.synth.Synthesize(ctx, interview.Conversation, interview.Insights, onProgress)
	if err != nil {
		return err
	}

	return writeProfile(profile, synthOutput)
}
