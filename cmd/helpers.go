package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ziadkadry99/blogrender/internal/config"
	"github.com/ziadkadry99/blogrender/internal/page"
	"github.com/ziadkadry99/blogrender/internal/posts"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `blogrender init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLoader creates the dataset loader shared by every command.
func newLoader(cfg *config.Config) *posts.Loader {
	client := &http.Client{Timeout: 30 * time.Second}
	return posts.NewLoader(cfg.Sources(), client, logger)
}

// newController creates a page controller over the configured dataset.
func newController(cfg *config.Config, loader *posts.Loader) *page.Controller {
	return page.New(loader, cfg.PageOptions(), logger)
}
