package main

import (
	"context"
	"fmt"

	"github.com/portside/shiplabel/internal/catalog"
	"github.com/portside/shiplabel/internal/config"
	"github.com/portside/shiplabel/internal/gitquery"
	"github.com/portside/shiplabel/internal/tracker"
)

// loadConfig merges the config file with command-line overrides.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flagConfig != "" {
		cfg, err = config.Load(flagConfig)
	} else {
		cfg, err = config.LoadOrDefault(config.DefaultPath)
	}
	if err != nil {
		return nil, err
	}

	if flagRepo != "" {
		cfg.Repo = flagRepo
	}
	if flagMainline != "" {
		cfg.Mainline = flagMainline
	}
	return cfg, nil
}

// newCatalog builds an unloaded catalog for the configured repository.
func newCatalog(ctx context.Context) (*catalog.Catalog, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	source, err := gitquery.NewGit(ctx, cfg.Repo)
	if err != nil {
		return nil, nil, err
	}

	return catalog.New(source, cfg.Mainline), cfg, nil
}

// openCatalog builds and fully loads a catalog. Loading is all-or-nothing;
// a failed load means no queries are possible.
func openCatalog(ctx context.Context) (*catalog.Catalog, *config.Config, error) {
	cat, cfg, err := newCatalog(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := cat.LoadAll(ctx); err != nil {
		return nil, nil, err
	}
	return cat, cfg, nil
}

// newLabeler constructs the GitHub labeler from config.
func newLabeler(ctx context.Context, cfg *config.Config) (*tracker.GitHub, error) {
	if cfg.GitHub.Owner == "" || cfg.GitHub.Repo == "" {
		return nil, fmt.Errorf("github owner and repo are not configured; set them in %s", config.DefaultPath)
	}
	return tracker.NewGitHub(ctx, cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.Token()), nil
}
