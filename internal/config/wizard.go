package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// datasetCandidates are common locations of a generated posts dataset,
// paired with the lightweight index usually written next to it.
var datasetCandidates = []struct {
	Full  string
	Index string
}{
	{Full: "data/posts.json", Index: "data/posts-index.json"},
	{Full: "posts.json", Index: "posts-index.json"},
	{Full: "public/data/posts.json", Index: "public/data/posts-index.json"},
}

// detectDataset checks the site directory for a known dataset layout.
func detectDataset(siteDir string) (full, index string) {
	for _, c := range datasetCandidates {
		if _, err := os.Stat(filepath.Join(siteDir, c.Full)); err == nil {
			return c.Full, c.Index
		}
	}
	return "", ""
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to blogrender! Let's configure your blog.")
	fmt.Println()

	def := DefaultConfig()

	// 1. Site name.
	namePrompt := promptui.Prompt{
		Label:   "Site name",
		Default: def.SiteName,
	}
	siteName, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site name: %w", err)
	}

	// 2. Site directory.
	dirPrompt := promptui.Prompt{
		Label:   "Site directory (shells and static assets)",
		Default: def.SiteDir,
	}
	siteDir, err := dirPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site dir: %w", err)
	}

	// 3. Dataset location.
	full, index := detectDataset(siteDir)
	if full != "" {
		fmt.Printf("Detected dataset: %s\n\n", full)
	} else {
		full, index = def.FullSource, def.IndexSource
	}
	fullPrompt := promptui.Prompt{
		Label:   "Full dataset (path or URL)",
		Default: full,
	}
	if full, err = fullPrompt.Run(); err != nil {
		return nil, fmt.Errorf("full source: %w", err)
	}
	indexPrompt := promptui.Prompt{
		Label:   "Lightweight index (path or URL, blank to always load the full dataset)",
		Default: index,
	}
	if index, err = indexPrompt.Run(); err != nil {
		return nil, fmt.Errorf("index source: %w", err)
	}

	// 4. Page size.
	sizePrompt := promptui.Select{
		Label:     "Posts per page",
		Items:     []string{"6", "8", "9", "12"},
		CursorPos: 1,
	}
	_, sizeStr, err := sizePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("page size: %w", err)
	}
	pageSize, _ := strconv.Atoi(sizeStr)

	// 5. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for built pages",
		Default: def.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 6. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra slug exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	exclude := append([]string(nil), DefaultExcludes...)
	exclude = append(exclude, splitAndTrim(excludeStr)...)

	cfg := def
	cfg.SiteName = siteName
	cfg.SiteDir = siteDir
	cfg.FullSource = full
	cfg.IndexSource = index
	cfg.PageSize = pageSize
	cfg.OutputDir = outputDir
	cfg.Exclude = exclude

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
