package config

import (
	"time"

	"github.com/ziadkadry99/blogrender/internal/page"
	"github.com/ziadkadry99/blogrender/internal/posts"
)

// DefaultConfigFile is the configuration file read by every command.
const DefaultConfigFile = ".blogrender.yml"

// DefaultExcludes are slug patterns left out of static builds by default.
var DefaultExcludes = []string{
	"draft-*",
	"_*",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	opts := page.DefaultOptions()
	return &Config{
		SiteName:         opts.SiteName,
		SiteDir:          ".",
		IndexSource:      "data/posts-index.json",
		FullSource:       "data/posts.json",
		OutputDir:        "public",
		PageSize:         opts.PageSize,
		ExcerptLength:    opts.ExcerptLength,
		CarouselSize:     opts.CarouselSize,
		CarouselInterval: "5s",
		RelatedCount:     opts.RelatedCount,
		RecentCount:      opts.RecentCount,
		Port:             8080,
		Exclude:          append([]string(nil), DefaultExcludes...),
		MaxConcurrency:   5,
	}
}

// PageOptions returns the section sizes for the page controller.
func (c *Config) PageOptions() page.Options {
	return page.Options{
		SiteName:      c.SiteName,
		PageSize:      c.PageSize,
		ExcerptLength: c.ExcerptLength,
		CarouselSize:  c.CarouselSize,
		RelatedCount:  c.RelatedCount,
		RecentCount:   c.RecentCount,
	}
}

// Sources returns the dataset locations, resolved against the site directory.
func (c *Config) Sources() posts.Sources {
	return posts.Sources{Index: c.IndexSource, Full: c.FullSource, BaseDir: c.SiteDir}
}

// Interval returns the carousel auto-advance period. Call Validate first;
// an unparseable value yields zero.
func (c *Config) Interval() time.Duration {
	d, _ := time.ParseDuration(c.CarouselInterval)
	return d
}
