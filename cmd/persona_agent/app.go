package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/persona-forge/internal/config"
	"github.com/jonathan/persona-forge/internal/llm"
	"github.com/jonathan/persona-forge/internal/memstore"
	"github.com/jonathan/persona-forge/internal/observability"
	"github.com/jonathan/persona-forge/internal/pipeline"
	"github.com/jonathan/persona-forge/internal/uniqueness"
)

// app bundles the wired dependencies a command needs.
type app struct {
	cfg    *config.Config
	client llm.Client
	store  memstore.Store
	synth  *pipeline.Synthesizer
	log    *observability.Logger
}

// loadConfig merges the config file, environment, and built-in defaults.
func loadConfig(configPath string) (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.FromEnv(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp wires the model client, similarity store, and synthesizer from config.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required: set GEMINI_API_KEY or api_key in the config file")
	}

	logger, err := observability.NewLogger(cfg.LogMode)
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		client.Close()
		return nil, err
	}

	memory, err := uniqueness.NewMemory(ctx, store)
	if err != nil {
		client.Close()
		store.Close()
		return nil, fmt.Errorf("failed to load similarity memory: %w", err)
	}

	synth, err := pipeline.NewSynthesizer(pipeline.Options{
		Client:    client,
		Memory:    memory,
		Logger:    logger,
		SpecTier:  llm.ModelTier(cfg.SpecTier),
		FacetTier: llm.ModelTier(cfg.FacetTier),
	})
	if err != nil {
		client.Close()
		store.Close()
		return nil, err
	}

	return &app{cfg: cfg, client: client, store: store, synth: synth, log: logger}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (memstore.Store, error) {
	switch cfg.MemoryBackend {
	case config.MemoryBackendRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis_url: %w", err)
		}
		return memstore.NewRedisStore(redis.NewClient(opts), ""), nil
	case config.MemoryBackendPostgres:
		return memstore.NewPostgresStore(ctx, cfg.DatabaseURL, "")
	default:
		return memstore.NewFileStore(cfg.MemoryPath), nil
	}
}

func (a *app) close() {
	if err := a.client.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: closing model client: %v\n", err)
	}
	if err := a.store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: closing memory store: %v\n", err)
	}
	a.log.Sync()
}
