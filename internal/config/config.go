// Package config holds all planforge configuration. The config file is
// YAML at <workspace>/.planforge/config.yaml; a missing file yields
// defaults, and environment variables override on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all planforge configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Collaborator (LLM) configuration
	LLM LLMConfig `yaml:"llm"`

	// Account-plan contract and pipeline limits
	Plan PlanConfig `yaml:"plan"`

	// Plan store
	Store StoreConfig `yaml:"store"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the generation collaborator.
type LLMConfig struct {
	Provider        string `yaml:"provider"` // gemini, openai
	APIKey          string `yaml:"api_key"`
	Model           string `yaml:"model"`
	BaseURL         string `yaml:"base_url"`
	Timeout         string `yaml:"timeout"`
	MaxOutputTokens int    `yaml:"max_output_tokens"`
}

// PlanConfig fixes the required-section contract and pipeline bounds.
// Sections may vary between deployments but must stay consistent within
// one: plans persisted under one contract are edited under the same one.
type PlanConfig struct {
	Sections          []string `yaml:"sections"`
	CorpusPrefixChars int      `yaml:"corpus_prefix_chars"`
}

// StoreConfig configures the plan store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures categorized debug logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// DefaultSections is the default required-section contract.
var DefaultSections = []string{
	"company_overview",
	"key_stakeholders",
	"pain_points",
	"value_proposition",
	"engagement_strategy",
	"success_metrics",
	"next_steps",
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "planforge",
		Version: "1.0.0",

		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-flash",
			Timeout:  "120s",
		},

		Plan: PlanConfig{
			Sections:          append([]string(nil), DefaultSections...),
			CorpusPrefixChars: 1000,
		},

		Store: StoreConfig{
			Path: filepath.Join(".planforge", "plans.json"),
		},

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultConfigPath returns the config path inside a workspace.
func DefaultConfigPath(workspace string) string {
	return filepath.Join(workspace, ".planforge", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file is not an
// error; defaults plus environment overrides come back instead.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides. Later checks
// win so an explicit OPENAI_API_KEY beats a lingering GEMINI_API_KEY.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		if c.LLM.Provider == "" {
			c.LLM.Provider = "gemini"
		}
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = key
		c.LLM.Provider = "openai"
	}
	if model := os.Getenv("PLANFORGE_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if path := os.Getenv("PLANFORGE_STORE"); path != "" {
		c.Store.Path = path
	}
}

// GetLLMTimeout returns the collaborator timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}

// ValidProviders lists all supported collaborator providers.
var ValidProviders = []string{"gemini", "openai"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("collaborator API key not configured (set GEMINI_API_KEY or OPENAI_API_KEY)")
	}

	valid := false
	for _, p := range ValidProviders {
		if c.LLM.Provider == p {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid provider: %s (valid: %v)", c.LLM.Provider, ValidProviders)
	}

	if len(c.Plan.Sections) == 0 {
		return fmt.Errorf("plan section contract is empty")
	}
	return nil
}
