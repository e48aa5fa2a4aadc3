package page

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ziadkadry99/blogrender/internal/dom"
	"github.com/ziadkadry99/blogrender/internal/posts"
	"github.com/ziadkadry99/blogrender/internal/render"
)

const staticMarker = "#" + dom.PostContent + " " + dom.PostBodySelector

// Static reports whether the post page was rendered ahead of time.
func Static(doc *dom.Document, req Request) bool {
	return req.Preloaded != nil || doc.Exists(staticMarker)
}

func (rc *renderContext) slug() string {
	if rc.req.Slug != "" {
		return rc.req.Slug
	}
	if rc.req.Preloaded != nil {
		return rc.req.Preloaded.Slug
	}
	s, _ := rc.doc.Attr(staticMarker, "data-slug")
	return s
}

func (rc *renderContext) post() error {
	if Static(rc.doc, rc.req) {
		return rc.staticPost()
	}

	slug := rc.slug()
	if slug == "" {
		rc.doc.SetHTML(dom.PostContent, render.ErrorBlock("Post not found (No slug provided)", ""))
		rc.loadSidebarOnly()
		rc.doc.Hide(dom.RelatedPosts)
		return ErrNoSlug
	}

	all, err := rc.src.LoadFull(rc.ctx)
	if err != nil {
		rc.datasetFailure(dom.PostContent, "post", err)
		rc.doc.Hide(dom.RelatedPosts)
		rc.sidebar()
		return err
	}
	rc.all = all

	p, ok := posts.Find(all, slug)
	if !ok {
		rc.doc.SetHTML(dom.PostContent, render.ErrorBlock("Post not found (Slug mismatch)", ""))
		rc.doc.Hide(dom.RelatedPosts)
		rc.sidebar()
		return fmt.Errorf("%w: %q", ErrSlugMismatch, slug)
	}

	if err := rc.article(p); err != nil {
		rc.doc.Hide(dom.RelatedPosts)
		rc.sidebar()
		return err
	}
	rc.related(p)
	rc.sidebar()
	return nil
}

// staticPost fills only the surroundings of a pre-rendered post. The body is
// rendered here only when it was preloaded into a shell without one.
func (rc *renderContext) staticPost() error {
	slug := rc.slug()

	var articleErr error
	if p := rc.req.Preloaded; p != nil && !rc.doc.Exists(staticMarker) {
		articleErr = rc.article(*p)
	}

	all, err := rc.src.LoadIndex(rc.ctx)
	if err != nil {
		rc.logger.Warn("sidebar data unavailable", zap.String("slug", slug), zap.Error(err))
	}
	rc.all = all

	if articleErr != nil {
		rc.doc.Hide(dom.RelatedPosts)
		rc.sidebar()
		return articleErr
	}

	current, ok := posts.Find(all, slug)
	if !ok {
		if rc.req.Preloaded != nil {
			current = *rc.req.Preloaded
		} else {
			current = posts.Post{Slug: slug}
		}
	}
	rc.related(current)
	rc.sidebar()
	return nil
}

func (rc *renderContext) article(p posts.Post) error {
	markup, err := rc.RenderPost(p)
	if err != nil {
		rc.doc.SetHTML(dom.PostContent, render.ErrorBlock("Error rendering post: "+err.Error(), ""))
		return fmt.Errorf("rendering post %q: %w", p.Slug, err)
	}
	rc.doc.SetHTML(dom.PostContent, markup)
	ApplySEO(rc.doc, p, rc.opts.SiteName)
	return nil
}

func (rc *renderContext) loadSidebarOnly() {
	all, err := rc.src.LoadIndex(rc.ctx)
	if err != nil {
		rc.logger.Warn("sidebar data unavailable", zap.Error(err))
	}
	rc.all = all
	rc.sidebar()
}

// ApplySEO sets the document title and description metadata for p.
func ApplySEO(doc *dom.Document, p posts.Post, siteName string) {
	title := p.Title
	if siteName != "" {
		title += " | " + siteName
	}
	doc.SetTitle(title)
	doc.SetMeta("name", "description", p.Excerpt)
	doc.SetMeta("property", "og:title", p.Title)
	doc.SetMeta("property", "og:description", p.Excerpt)
	if p.Image != "" {
		doc.SetMeta("property", "og:image", p.Image)
	}
}
