package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Request describes one generative call. If JSONSchema is non-empty the
// provider is asked for schema-conformant JSON output; callers must still be
// prepared to parse an equivalent shape from raw text.
type Request struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int32
	Tier        ModelTier
	JSONSchema  string
}

// DeltaFunc receives incremental text deltas during a streaming call.
type DeltaFunc func(delta string)

// Client is an abstraction over LLM providers
type Client interface {
	// Generate issues one call and returns the full response text.
	Generate(ctx context.Context, req Request) (string, error)
	// GenerateStream issues one call, invoking onDelta for each incremental
	// chunk, and returns the accumulated response text.
	GenerateStream(ctx context.Context, req Request, onDelta DeltaFunc) (string, error)
	// GetModel returns the underlying provider model for a tier (for direct access if needed)
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return NewGeminiClient(ctx, config, apiKey)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// model builds a configured GenerativeModel for the request.
func (c *GeminiClient) model(req Request) (*genai.GenerativeModel, error) {
	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return nil, fmt.Errorf("no model configured for tier %s", req.Tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(req.Temperature)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(req.MaxTokens)
	}
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}
	if req.JSONSchema != "" {
		model.ResponseMIMEType = "application/json"
	}
	return model, nil
}

// Generate issues one call and returns the full response text.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	model, err := c.model(req)
	if err != nil {
		return "", err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userPayload(req)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}
	if req.JSONSchema != "" {
		return CleanJSONBlock(text), nil
	}
	return text, nil
}

// GenerateStream issues one streaming call, invoking onDelta per chunk.
func (c *GeminiClient) GenerateStream(ctx context.Context, req Request, onDelta DeltaFunc) (string, error) {
	model, err := c.model(req)
	if err != nil {
		return "", err
	}

	iter := model.GenerateContentStream(ctx, genai.Text(userPayload(req)))
	var sb strings.Builder
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to stream content: %w", err)
		}
		chunk, err := extractTextFromResponse(resp)
		if err != nil {
			continue // chunks without text parts are skipped
		}
		sb.WriteString(chunk)
		if onDelta != nil {
			onDelta(chunk)
		}
	}

	text := sb.String()
	if text == "" {
		return "", fmt.Errorf("no text parts in streamed response")
	}
	if req.JSONSchema != "" {
		return CleanJSONBlock(text), nil
	}
	return text, nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// userPayload appends the schema instruction to the user message when a
// response schema was requested.
func userPayload(req Request) string {
	if req.JSONSchema == "" {
		return req.User
	}
	return req.User + "\n\n" + SchemaInstruction(req.JSONSchema)
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
