package perception

import (
	"context"
	"testing"

	"planforge/internal/config"
)

func TestNewClientFromConfig_NoKey(t *testing.T) {
	cfg := config.DefaultConfig()
	if _, err := NewClientFromConfig(context.Background(), cfg); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestNewClientFromConfig_UnknownProvider(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LLM.APIKey = "k"
	cfg.LLM.Provider = "martian"
	if _, err := NewClientFromConfig(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewClientFromConfig_OpenAI(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LLM.APIKey = "k"
	cfg.LLM.Provider = "openai"
	cfg.LLM.Model = "gpt-4o-mini"

	client, err := NewClientFromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewClientFromConfig() error = %v", err)
	}
	oc, ok := client.(*OpenAIClient)
	if !ok {
		t.Fatalf("client type = %T, want *OpenAIClient", client)
	}
	if oc.GetModel() != "gpt-4o-mini" {
		t.Errorf("model = %q", oc.GetModel())
	}
}

func TestOpenAIClient_DefaultModel(t *testing.T) {
	c, err := NewOpenAIClientWithConfig(OpenAIConfig{APIKey: "k"})
	if err != nil {
		t.Fatalf("NewOpenAIClientWithConfig() error = %v", err)
	}
	if c.GetModel() != "gpt-4o-mini" {
		t.Errorf("default model = %q", c.GetModel())
	}
}

func TestOpenAIClient_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIClientWithConfig(OpenAIConfig{}); err == nil {
		t.Fatal("expected error without API key")
	}
}
