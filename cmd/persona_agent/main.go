// Package main provides the entry point for the persona-forge CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "persona_agent",
	Short: "Persona Forge coach persona synthesis",
	Long:  "Persona Forge turns an onboarding interview into a distinctive AI coach persona: identity, voice, backstory, production system prompt, and nutrition guidance.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
