package perception

import (
	"context"
	"fmt"

	"planforge/internal/config"
	"planforge/internal/logging"
)

// NewClientFromConfig resolves the configured provider into a live client.
// The provider and API key come from config (already merged with the
// environment by config.Load).
func NewClientFromConfig(ctx context.Context, cfg *config.Config) (LLMClient, error) {
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("no API key configured (set GEMINI_API_KEY or OPENAI_API_KEY)")
	}

	logging.Boot("collaborator provider: %s model: %s", cfg.LLM.Provider, cfg.LLM.Model)

	switch cfg.LLM.Provider {
	case "gemini", "":
		return NewGeminiClientWithConfig(ctx, GeminiConfig{
			APIKey:          cfg.LLM.APIKey,
			Model:           cfg.LLM.Model,
			MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		})
	case "openai":
		return NewOpenAIClientWithConfig(OpenAIConfig{
			APIKey:          cfg.LLM.APIKey,
			BaseURL:         cfg.LLM.BaseURL,
			Model:           cfg.LLM.Model,
			MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q (valid: %v)", cfg.LLM.Provider, config.ValidProviders)
	}
}
