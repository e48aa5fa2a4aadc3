package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/blogrender/internal/progress"
	"github.com/ziadkadry99/blogrender/internal/site"
)

var (
	buildOutput  string
	buildInclude []string
	buildExclude []string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Pre-render every page into a static site",
	Long: `Loads the full dataset once and writes one page per post, every index page,
the lightweight posts-index.json and the site's static assets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if buildOutput != "" {
			cfg.OutputDir = buildOutput
		}
		if cmd.Flags().Changed("include") {
			cfg.Include = buildInclude
		}
		if cmd.Flags().Changed("exclude") {
			cfg.Exclude = buildExclude
		}

		shells, err := site.LoadShells(cfg.SiteDir)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		b := &site.Builder{
			SiteDir:        cfg.SiteDir,
			OutputDir:      cfg.OutputDir,
			Options:        cfg.PageOptions(),
			Include:        cfg.Include,
			Exclude:        cfg.Exclude,
			MaxConcurrency: cfg.MaxConcurrency,
			Shells:         shells,
			Reporter:       progress.NewReporter("Building site"),
			Logger:         logger,
		}
		res, err := b.Build(ctx, newLoader(cfg))
		if err != nil {
			return fmt.Errorf("build failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Built %d posts and %d index pages into %s\n", res.Posts, res.IndexPages, cfg.OutputDir)
		if len(res.Skipped) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d posts with unsafe slugs\n", len(res.Skipped))
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output directory (overrides output_dir)")
	buildCmd.Flags().StringSliceVar(&buildInclude, "include", nil, "slug glob patterns to include")
	buildCmd.Flags().StringSliceVar(&buildExclude, "exclude", nil, "slug glob patterns to exclude")
	rootCmd.AddCommand(buildCmd)
}
