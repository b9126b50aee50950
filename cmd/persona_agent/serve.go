package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/persona-forge/internal/server"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the persona synthesis HTTP API server",
	Long:  `Starts the HTTP server exposing synthesis and facet regeneration, including an SSE endpoint that streams pipeline progress. Blocks until interrupted.`,
	RunE:  runServeCmd,
}

var (
	serveConfigPath string
	serveAddr       string
	serveAPIKey     string
)

func init() {
	serveCommand.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCommand.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8080)")
	serveCommand.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(serveCommand)
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.ServerAddr = serveAddr
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = serveAPIKey
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	srv, err := server.New(server.Config{Addr: cfg.ServerAddr}, a.synth, a.log)
	if err != nil {
		return err
	}
	return srv.Start()
}
