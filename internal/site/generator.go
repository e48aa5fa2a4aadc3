package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/blogrender/internal/blog"
	"github.com/ziadkadry99/blogrender/internal/dom"
	"github.com/ziadkadry99/blogrender/internal/page"
	"github.com/ziadkadry99/blogrender/internal/posts"
	"github.com/ziadkadry99/blogrender/internal/progress"
)

// Dataset loads the full post dataset. *posts.Loader implements it.
type Dataset interface {
	LoadFull(ctx context.Context) ([]posts.Post, error)
}

// Builder pre-renders the blog into a directory of static pages.
type Builder struct {
	SiteDir   string
	OutputDir string
	Options   page.Options
	Include   []string
	Exclude   []string
	// MaxConcurrency bounds parallel page renders. Zero means unbounded.
	MaxConcurrency int

	Shells   Shells
	Reporter progress.Reporter
	Logger   *zap.Logger

	// NewShuffler overrides the carousel randomness. Nil keeps the default.
	NewShuffler func() blog.Shuffler
}

// Result summarizes a build.
type Result struct {
	Posts      int
	IndexPages int
	Skipped    []string
}

// PostPath returns the output path of a post page relative to the output
// directory.
func PostPath(slug string) string {
	return filepath.Join("posts", slug, "index.html")
}

// IndexPagePath returns the output path of an index page.
func IndexPagePath(n int) string {
	if n <= 1 {
		return "index.html"
	}
	return filepath.Join("page", strconv.Itoa(n), "index.html")
}

// IndexPageLink is the URL of an index page in the built site.
func IndexPageLink(n int) string {
	if n <= 1 {
		return "/"
	}
	return fmt.Sprintf("/page/%d/", n)
}

// memorySource serves an already loaded dataset to the page controller.
type memorySource []posts.Post

func (m memorySource) LoadIndex(context.Context) ([]posts.Post, error) { return m, nil }
func (m memorySource) LoadFull(context.Context) ([]posts.Post, error)  { return m, nil }

type job struct {
	rel    string
	render func(ctx context.Context) (*dom.Document, error)
}

// Build loads the dataset once, then writes every post page, every index
// page, the lightweight index and the static assets.
func (b *Builder) Build(ctx context.Context, src Dataset) (Result, error) {
	logger := b.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("build")
	reporter := b.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}

	all, err := src.LoadFull(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("loading dataset: %w", err)
	}

	var res Result
	var selected []posts.Post
	for _, p := range Filter(all, b.Include, b.Exclude) {
		if !SafeSlug(p.Slug) {
			logger.Warn("skipping post with unsafe slug", zap.String("slug", p.Slug))
			res.Skipped = append(res.Skipped, p.Slug)
			continue
		}
		selected = append(selected, p)
	}

	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return Result{}, err
	}
	if err := b.copyAssets(); err != nil {
		return Result{}, fmt.Errorf("copying assets: %w", err)
	}
	if err := WriteIndex(BuildIndex(selected), filepath.Join(b.OutputDir, IndexFile)); err != nil {
		return Result{}, fmt.Errorf("writing index: %w", err)
	}

	ctrl := page.New(memorySource(selected), b.Options, logger)
	if b.NewShuffler != nil {
		ctrl.NewShuffler = b.NewShuffler
	}
	opts := ctrl.Options()

	var jobs []job
	for _, p := range selected {
		jobs = append(jobs, job{
			rel: PostPath(p.Slug),
			render: func(ctx context.Context) (*dom.Document, error) {
				doc, err := b.Shells.ParsePost()
				if err != nil {
					return nil, err
				}
				return doc, ctrl.Render(ctx, doc, page.Request{Slug: p.Slug, Preloaded: &p})
			},
		})
	}
	res.Posts = len(selected)
	res.IndexPages = max(1, blog.TotalPages(len(selected), opts.PageSize))
	for n := 1; n <= res.IndexPages; n++ {
		jobs = append(jobs, job{
			rel: IndexPagePath(n),
			render: func(ctx context.Context) (*dom.Document, error) {
				doc, err := b.Shells.ParseIndex()
				if err != nil {
					return nil, err
				}
				return doc, ctrl.Render(ctx, doc, page.Request{Page: n, PageLink: IndexPageLink})
			},
		})
	}

	reporter.Start(len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	if b.MaxConcurrency > 0 {
		g.SetLimit(b.MaxConcurrency)
	}
	for _, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := b.writePage(gctx, j); err != nil {
				return fmt.Errorf("rendering %s: %w", filepath.ToSlash(j.rel), err)
			}
			reporter.Advance(filepath.ToSlash(j.rel))
			return nil
		})
	}
	err = g.Wait()
	reporter.Finish()
	if err != nil {
		return Result{}, err
	}

	logger.Info("site built",
		zap.String("output", b.OutputDir),
		zap.Int("posts", res.Posts),
		zap.Int("index_pages", res.IndexPages))
	return res, nil
}

func (b *Builder) writePage(ctx context.Context, j job) error {
	doc, err := j.render(ctx)
	if err != nil {
		return err
	}

	outPath := filepath.Join(b.OutputDir, j.rel)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := doc.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// copyAssets copies the site directory into the output, skipping the shells
// and the output directory itself, then fills in any missing default asset.
func (b *Builder) copyAssets() error {
	if b.SiteDir != "" {
		if err := copyDir(b.SiteDir, b.OutputDir); err != nil {
			return err
		}
	}
	for name, content := range defaultAssets {
		dst := filepath.Join(b.OutputDir, name)
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		if err := os.WriteFile(dst, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// copyDir recursively copies src into dst.
func copyDir(src, dst string) error {
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return err
	}
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if abs, err := filepath.Abs(path); err == nil && abs == absDst {
				return filepath.SkipDir
			}
			if path != src && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == IndexShellFile || rel == PostShellFile {
			return nil
		}
		return copyFile(path, filepath.Join(dst, rel))
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// copyFile copies a single file.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
