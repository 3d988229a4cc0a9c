package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"planforge/internal/config"
	"planforge/internal/perception"
	"planforge/internal/research"
	"planforge/internal/store"
)

// app bundles the wired components every command needs. Commands that only
// touch the store never construct a collaborator client.
type app struct {
	cfg   *config.Config
	store *store.PlanStore
}

func loadApp() (*app, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath(workspace)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	storePath := cfg.Store.Path
	if !filepath.IsAbs(storePath) {
		storePath = filepath.Join(workspace, storePath)
	}

	return &app{
		cfg:   cfg,
		store: store.NewPlanStore(storePath),
	}, nil
}

// pipeline constructs the research pipeline over a live collaborator
// client. Fails fast when no API key is configured.
func (a *app) pipeline(ctx context.Context) (*research.Pipeline, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := perception.NewClientFromConfig(ctx, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create collaborator client: %w", err)
	}

	return research.NewPipeline(client, a.cfg.Plan.Sections,
		research.WithCorpusPrefixLen(a.cfg.Plan.CorpusPrefixChars)), nil
}

// callTimeout resolves the effective collaborator timeout: the --timeout
// flag wins, then the config value.
func (a *app) callTimeout() time.Duration {
	if timeout > 0 {
		return timeout
	}
	return a.cfg.GetLLMTimeout()
}
