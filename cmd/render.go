package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/blogrender/internal/dom"
	"github.com/ziadkadry99/blogrender/internal/page"
	"github.com/ziadkadry99/blogrender/internal/site"
)

var (
	renderShell string
	renderSlug  string
	renderPage  int
	renderOut   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a single page shell",
	Long: `Renders one page and writes the resulting HTML. Without --shell the site's
post shell is used when --slug is given and the index shell otherwise.
Failures are rendered into the page; the command still exits non-zero.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		doc, err := loadRenderShell(cfg.SiteDir)
		if err != nil {
			return err
		}

		ctrl := newController(cfg, newLoader(cfg))
		renderErr := ctrl.Render(cmd.Context(), doc, page.Request{
			Slug:     renderSlug,
			Page:     renderPage,
			PageLink: site.IndexPageLink,
		})

		var w io.Writer = cmd.OutOrStdout()
		if renderOut != "" {
			f, err := os.Create(renderOut)
			if err != nil {
				return fmt.Errorf("creating %s: %w", renderOut, err)
			}
			defer f.Close()
			w = f
		}
		if err := doc.Render(w); err != nil {
			return err
		}
		if renderErr != nil {
			return fmt.Errorf("page rendered with error: %w", renderErr)
		}
		return nil
	},
}

func loadRenderShell(siteDir string) (*dom.Document, error) {
	if renderShell != "" {
		f, err := os.Open(renderShell)
		if err != nil {
			return nil, fmt.Errorf("opening shell: %w", err)
		}
		defer f.Close()
		return dom.Parse(f)
	}

	shells, err := site.LoadShells(siteDir)
	if err != nil {
		return nil, err
	}
	if renderSlug != "" {
		return shells.ParsePost()
	}
	return shells.ParseIndex()
}

func init() {
	renderCmd.Flags().StringVar(&renderShell, "shell", "", "HTML page shell to render")
	renderCmd.Flags().StringVar(&renderSlug, "slug", "", "post slug for post pages")
	renderCmd.Flags().IntVar(&renderPage, "page", 1, "page number for index pages")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(renderCmd)
}
