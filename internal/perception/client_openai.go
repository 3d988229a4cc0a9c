package perception

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"planforge/internal/logging"
)

// OpenAIClient implements LLMClient over the OpenAI chat completions API.
type OpenAIClient struct {
	client          *openai.Client
	model           string
	maxOutputTokens int

	mu          sync.Mutex
	lastRequest time.Time
}

// OpenAIConfig holds configuration for the OpenAI client.
type OpenAIConfig struct {
	APIKey          string
	BaseURL         string
	Model           string
	MaxOutputTokens int
}

// DefaultOpenAIConfig returns sensible defaults.
func DefaultOpenAIConfig(apiKey string) OpenAIConfig {
	return OpenAIConfig{
		APIKey:          apiKey,
		Model:           "gpt-4o-mini",
		MaxOutputTokens: 8192,
	}
}

// NewOpenAIClient creates an OpenAI client with default config.
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	return NewOpenAIClientWithConfig(DefaultOpenAIConfig(apiKey))
}

// NewOpenAIClientWithConfig creates an OpenAI client with custom config.
// A non-empty BaseURL points the client at an OpenAI-compatible endpoint.
func NewOpenAIClientWithConfig(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}

	var client *openai.Client
	if cfg.BaseURL != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		clientCfg.BaseURL = cfg.BaseURL
		client = openai.NewClientWithConfig(clientCfg)
	} else {
		client = openai.NewClient(cfg.APIKey)
	}

	return &OpenAIClient{
		client:          client,
		model:           model,
		maxOutputTokens: cfg.MaxOutputTokens,
	}, nil
}

// Complete sends a prompt and returns the completion.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteWithLimit(ctx, prompt, 0)
}

// CompleteWithLimit sends a prompt with an output token cap.
func (c *OpenAIClient) CompleteWithLimit(ctx context.Context, prompt string, maxOutputTokens int) (string, error) {
	c.throttle()

	if maxOutputTokens <= 0 {
		maxOutputTokens = c.maxOutputTokens
	}

	logging.APIDebug("openai request: model=%s prompt=%d chars limit=%d", c.model, len(prompt), maxOutputTokens)

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if maxOutputTokens > 0 {
		req.MaxCompletionTokens = maxOutputTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	logging.APIDebug("openai response: %d chars", len(text))
	return text, nil
}

func (c *OpenAIClient) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	elapsed := time.Since(c.lastRequest)
	if spacing := minRequestSpacingMillis * time.Millisecond; elapsed < spacing {
		time.Sleep(spacing - elapsed)
	}
	c.lastRequest = time.Now()
}

// SetModel changes the model used for completions.
func (c *OpenAIClient) SetModel(model string) {
	c.model = model
}

// GetModel returns the current model.
func (c *OpenAIClient) GetModel() string {
	return c.model
}
