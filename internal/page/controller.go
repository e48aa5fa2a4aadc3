// Package page decides what a page shell is and fills it: the paginated index
// with carousel and sidebar, or a single post with related posts.
package page

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/blogrender/internal/blog"
	"github.com/ziadkadry99/blogrender/internal/dom"
	"github.com/ziadkadry99/blogrender/internal/posts"
	"github.com/ziadkadry99/blogrender/internal/render"
)

var (
	// ErrNoSlug is returned when a post page is requested without a slug.
	ErrNoSlug = errors.New("no slug provided")
	// ErrSlugMismatch is returned when no post has the requested slug.
	ErrSlugMismatch = errors.New("slug mismatch")
)

// Source loads the post dataset. *posts.Loader implements it.
type Source interface {
	LoadIndex(ctx context.Context) ([]posts.Post, error)
	LoadFull(ctx context.Context) ([]posts.Post, error)
}

// Options sizes the rendered sections.
type Options struct {
	SiteName      string
	PageSize      int
	ExcerptLength int
	CarouselSize  int
	RelatedCount  int
	RecentCount   int
}

// DefaultOptions returns the stock section sizes.
func DefaultOptions() Options {
	return Options{
		SiteName:      "Blog",
		PageSize:      8,
		ExcerptLength: 150,
		CarouselSize:  5,
		RelatedCount:  3,
		RecentCount:   5,
	}
}

// Kind is the page type detected from the shell.
type Kind int

const (
	KindNone Kind = iota
	KindIndex
	KindPost
)

// Detect classifies a shell by the containers it exposes. A post container
// takes precedence over a grid.
func Detect(doc *dom.Document) Kind {
	switch {
	case doc.Has(dom.PostContent):
		return KindPost
	case doc.Has(dom.PostsGrid):
		return KindIndex
	default:
		return KindNone
	}
}

// Request carries the per-view inputs.
type Request struct {
	// Slug selects the post on a post page.
	Slug string
	// Page is the 1-based index page. Out-of-range values are clamped.
	Page int
	// Preloaded is a post whose body is already known. Its presence puts a
	// post page in static mode.
	Preloaded *posts.Post
	// PageLink builds pagination URLs. Nil uses "?page=N".
	PageLink func(page int) string
}

// Controller renders page shells. It holds no per-view state and is safe for
// concurrent use.
type Controller struct {
	src    Source
	opts   Options
	logger *zap.Logger

	// Now supplies the footer year.
	Now func() time.Time
	// NewShuffler returns the randomness source for one carousel sample.
	NewShuffler func() blog.Shuffler
	// RenderPost produces the article markup for a single post.
	RenderPost func(p posts.Post) (string, error)
}

// New creates a Controller. Zero option fields take their defaults.
func New(src Source, opts Options, logger *zap.Logger) *Controller {
	def := DefaultOptions()
	if opts.SiteName == "" {
		opts.SiteName = def.SiteName
	}
	if opts.PageSize <= 0 {
		opts.PageSize = def.PageSize
	}
	if opts.ExcerptLength <= 0 {
		opts.ExcerptLength = def.ExcerptLength
	}
	if opts.CarouselSize <= 0 {
		opts.CarouselSize = def.CarouselSize
	}
	if opts.RelatedCount <= 0 {
		opts.RelatedCount = def.RelatedCount
	}
	if opts.RecentCount <= 0 {
		opts.RecentCount = def.RecentCount
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		src:    src,
		opts:   opts,
		logger: logger.Named("page"),
		Now:    time.Now,
		NewShuffler: func() blog.Shuffler {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		RenderPost: render.Post,
	}
}

// Options returns the effective options.
func (c *Controller) Options() Options { return c.opts }

// renderContext is the state of a single view.
type renderContext struct {
	*Controller
	ctx context.Context
	doc *dom.Document
	req Request
	all []posts.Post
}

// Render fills doc in place. A failure is rendered into the affected
// container and also returned; the rest of the page is still rendered, so
// doc is always usable.
func (c *Controller) Render(ctx context.Context, doc *dom.Document, req Request) error {
	rc := &renderContext{Controller: c, ctx: ctx, doc: doc, req: req}
	rc.footer()

	switch Detect(doc) {
	case KindPost:
		return rc.post()
	case KindIndex:
		return rc.index()
	default:
		return nil
	}
}

func (rc *renderContext) footer() {
	if rc.doc.Has(dom.CurrentYear) {
		rc.doc.SetText(dom.CurrentYear, strconv.Itoa(rc.Now().Year()))
	}
}

// datasetFailure renders err into the container with id.
func (rc *renderContext) datasetFailure(id, what string, err error) {
	var de *posts.DatasetError
	if errors.As(err, &de) {
		rc.doc.SetHTML(id, render.ErrorBlock("Error loading "+what+": "+de.Err.Error(), de.Path))
		return
	}
	rc.doc.SetHTML(id, render.ErrorBlock("Error loading "+what+": "+err.Error(), ""))
}

func (rc *renderContext) index() error {
	all, err := rc.src.LoadIndex(rc.ctx)
	if err != nil {
		rc.datasetFailure(dom.PostsGrid, "posts", err)
		rc.doc.SetHTML(dom.Pagination, "")
		rc.doc.Hide(dom.HeroCarousel)
		rc.sidebar()
		return err
	}
	rc.all = all

	total := blog.TotalPages(len(all), rc.opts.PageSize)
	current := blog.ClampPage(rc.req.Page, total)
	if err := rc.grid(current); err != nil {
		return err
	}
	if err := rc.pagination(current, total); err != nil {
		return err
	}
	if err := rc.carousel(); err != nil {
		return err
	}
	rc.sidebar()
	return nil
}

func (rc *renderContext) grid(current int) error {
	markup, err := render.Grid(blog.Paginate(rc.all, current, rc.opts.PageSize), rc.opts.ExcerptLength)
	if err != nil {
		rc.doc.SetHTML(dom.PostsGrid, render.ErrorBlock("Error rendering posts: "+err.Error(), ""))
		return err
	}
	rc.doc.SetHTML(dom.PostsGrid, markup)
	return nil
}

func (rc *renderContext) pagination(current, total int) error {
	if !rc.doc.Has(dom.Pagination) {
		return nil
	}
	markup, err := render.Pager{Link: rc.req.PageLink}.Render(current, total)
	if err != nil {
		return err
	}
	rc.doc.SetHTML(dom.Pagination, markup)
	return nil
}

func (rc *renderContext) carousel() error {
	if !rc.doc.Has(dom.HeroCarousel) {
		return nil
	}
	slides := blog.Sample(rc.all, rc.opts.CarouselSize, rc.NewShuffler())
	if len(slides) == 0 {
		rc.doc.Hide(dom.HeroCarousel)
		return nil
	}
	slidesHTML, dotsHTML, err := render.Carousel(slides, rc.opts.ExcerptLength)
	if err != nil {
		return err
	}
	rc.doc.SetHTML(dom.HeroCarousel, slidesHTML)
	rc.doc.SetHTML(dom.CarouselDots, dotsHTML)
	return nil
}

// sidebar renders the category and recent lists from whatever posts the
// view has loaded. Missing containers are skipped.
func (rc *renderContext) sidebar() {
	if rc.doc.Has(dom.CategoryList) {
		if markup, err := render.Categories(blog.Categories(rc.all)); err == nil {
			rc.doc.SetHTML(dom.CategoryList, markup)
		} else {
			rc.logger.Warn("rendering categories", zap.Error(err))
		}
	}
	if rc.doc.Has(dom.RecentPosts) {
		if markup, err := render.RecentPosts(blog.Recent(rc.all, rc.opts.RecentCount)); err == nil {
			rc.doc.SetHTML(dom.RecentPosts, markup)
		} else {
			rc.logger.Warn("rendering recent posts", zap.Error(err))
		}
	}
}

func (rc *renderContext) related(current posts.Post) {
	if !rc.doc.Has(dom.RelatedPosts) {
		return
	}
	rel := blog.Related(current, rc.all, rc.opts.RelatedCount)
	if len(rel) == 0 {
		rc.doc.Hide(dom.RelatedPosts)
		return
	}
	markup, err := render.Related(rel)
	if err != nil {
		rc.logger.Warn("rendering related posts", zap.Error(err))
		rc.doc.Hide(dom.RelatedPosts)
		return
	}
	rc.doc.SetHTML(dom.RelatedPostsGrid, markup)
	rc.doc.Show(dom.RelatedPosts)
}
