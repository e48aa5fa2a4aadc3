package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variable overrides.
const EnvPrefix = "BLOGRENDER_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (BLOGRENDER_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: BLOGRENDER_SITE_NAME -> site_name, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.FullSource == "" {
		return fmt.Errorf("full_source is required")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	for name, v := range map[string]int{
		"page_size":      c.PageSize,
		"excerpt_length": c.ExcerptLength,
		"carousel_size":  c.CarouselSize,
		"related_count":  c.RelatedCount,
		"recent_count":   c.RecentCount,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}

	d, err := time.ParseDuration(c.CarouselInterval)
	if err != nil {
		return fmt.Errorf("invalid carousel_interval %q: %w", c.CarouselInterval, err)
	}
	if d <= 0 {
		return fmt.Errorf("carousel_interval must be positive")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be non-negative")
	}

	return nil
}
