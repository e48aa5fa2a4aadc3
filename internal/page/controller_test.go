package page

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ziadkadry99/blogrender/internal/blog"
	"github.com/ziadkadry99/blogrender/internal/dom"
	"github.com/ziadkadry99/blogrender/internal/posts"
)

const indexShell = `<!DOCTYPE html><html><head><title>Blog</title></head><body>
<section id="heroCarousel"></section><div id="carouselDots"></div>
<button id="carouselPrev"></button><button id="carouselNext"></button>
<div id="postsGrid"></div><nav id="pagination"></nav>
<ul id="categoryList"></ul><ul id="recentPosts"></ul>
<footer>&copy; <span id="currentYear"></span></footer>
</body></html>`

const postShell = `<!DOCTYPE html><html><head><title>Post</title><meta name="description" content=""></head><body>
<main id="postContent"><p>Loading...</p></main>
<section id="relatedPosts" hidden><div id="relatedPostsGrid"></div></section>
<ul id="categoryList"></ul><ul id="recentPosts"></ul>
<span id="currentYear"></span>
</body></html>`

type fakeSource struct {
	all       []posts.Post
	err       error
	indexHits int
	fullHits  int
}

func (f *fakeSource) LoadIndex(context.Context) ([]posts.Post, error) {
	f.indexHits++
	return f.all, f.err
}

func (f *fakeSource) LoadFull(context.Context) ([]posts.Post, error) {
	f.fullHits++
	return f.all, f.err
}

type identityShuffler struct{}

func (identityShuffler) Shuffle(int, func(i, j int)) {}

func dataset(n int) []posts.Post {
	cats := []string{"Recipes", "Travel", "Tips"}
	out := make([]posts.Post, n)
	for i := range out {
		out[i] = posts.Post{
			Slug:     fmt.Sprintf("p%02d", i),
			Title:    fmt.Sprintf("Post %d", i),
			Category: cats[i%len(cats)],
			Date:     fmt.Sprintf("2024-03-%02d", i%28+1),
			Excerpt:  "Excerpt " + fmt.Sprint(i),
			Content:  &posts.Content{Paragraphs: []string{"body"}},
		}
	}
	return out
}

func newController(src Source) *Controller {
	c := New(src, Options{SiteName: "Test Kitchen"}, nil)
	c.Now = func() time.Time { return time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC) }
	c.NewShuffler = func() blog.Shuffler { return identityShuffler{} }
	return c
}

func parse(t *testing.T, shell string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(shell)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestDetect(t *testing.T) {
	if Detect(parse(t, indexShell)) != KindIndex {
		t.Error("index shell not detected")
	}
	if Detect(parse(t, postShell)) != KindPost {
		t.Error("post shell not detected")
	}
	if Detect(parse(t, `<html><body><p>about</p></body></html>`)) != KindNone {
		t.Error("plain page should not be detected")
	}
}

func TestRenderIndex(t *testing.T) {
	doc := parse(t, indexShell)
	src := &fakeSource{all: dataset(20)}
	if err := newController(src).Render(t.Context(), doc, Request{Page: 2, PageLink: func(n int) string {
		return fmt.Sprintf("/page/%d/", n)
	}}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	grid := doc.HTML(dom.PostsGrid)
	if n := strings.Count(grid, `class="post-card"`); n != 8 {
		t.Errorf("page 2 has %d cards, want 8", n)
	}
	if !strings.Contains(grid, "Post 8<") || strings.Contains(grid, "Post 7<") {
		t.Error("page 2 should start at the ninth post")
	}

	pager := doc.HTML(dom.Pagination)
	if strings.Contains(pager, "pagination-ellipsis") {
		t.Error("three pages need no ellipsis")
	}
	for _, want := range []string{`href="/page/1/"`, `href="/page/3/"`, `aria-current="page"`} {
		if !strings.Contains(pager, want) {
			t.Errorf("pagination missing %s: %s", want, pager)
		}
	}

	if n := strings.Count(doc.HTML(dom.HeroCarousel), `class="carousel-slide`); n != 5 {
		t.Errorf("carousel has %d slides, want 5", n)
	}
	if n := strings.Count(doc.HTML(dom.CarouselDots), "carousel-dot"); n != 5 {
		t.Errorf("carousel has %d dots, want 5", n)
	}
	if !strings.Contains(doc.HTML(dom.CategoryList), `href="#recipes"`) {
		t.Error("category list not rendered")
	}
	if strings.Count(doc.HTML(dom.RecentPosts), "<li>") != 5 {
		t.Error("recent posts should list 5 entries")
	}
	if doc.Text(dom.CurrentYear) != "2031" {
		t.Errorf("footer year = %q", doc.Text(dom.CurrentYear))
	}
	if src.indexHits != 1 || src.fullHits != 0 {
		t.Errorf("index page loaded index %d and full %d times", src.indexHits, src.fullHits)
	}
}

func TestRenderIndexClampsPage(t *testing.T) {
	doc := parse(t, indexShell)
	if err := newController(&fakeSource{all: dataset(10)}).Render(t.Context(), doc, Request{Page: 40}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n := strings.Count(doc.HTML(dom.PostsGrid), `class="post-card"`); n != 2 {
		t.Errorf("clamped page has %d cards, want 2", n)
	}
}

func TestRenderIndexSinglePage(t *testing.T) {
	doc := parse(t, indexShell)
	if err := newController(&fakeSource{all: dataset(3)}).Render(t.Context(), doc, Request{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.TrimSpace(doc.HTML(dom.Pagination)) != "" {
		t.Error("single page should have no pagination controls")
	}
	if n := strings.Count(doc.HTML(dom.HeroCarousel), `class="carousel-slide`); n != 3 {
		t.Errorf("carousel has %d slides, want 3", n)
	}
}

func TestRenderIndexDatasetFailure(t *testing.T) {
	doc := parse(t, indexShell)
	failure := &posts.DatasetError{Path: "data/posts.json", Err: errors.New("HTTP 404 for data/posts.json")}
	err := newController(&fakeSource{err: failure}).Render(t.Context(), doc, Request{})

	var de *posts.DatasetError
	if !errors.As(err, &de) {
		t.Fatalf("expected a DatasetError, got %v", err)
	}
	grid := doc.HTML(dom.PostsGrid)
	if !strings.Contains(grid, "error-message") || !strings.Contains(grid, "data/posts.json") {
		t.Errorf("grid should show the failed path: %s", grid)
	}
	if doc.Text(dom.CurrentYear) != "2031" {
		t.Error("footer should render despite the failure")
	}
}

func TestRenderPost(t *testing.T) {
	all := dataset(9)
	all[3].Title = "<script>alert(1)</script>"
	all[3].Image = "/img/p03.jpg"
	doc := parse(t, postShell)
	src := &fakeSource{all: all}

	if err := newController(src).Render(t.Context(), doc, Request{Slug: "p03"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	content := doc.HTML(dom.PostContent)
	if strings.Contains(content, "<script>") || !strings.Contains(content, "&lt;script&gt;") {
		t.Errorf("title should be escaped: %s", content)
	}
	if doc.Title() != "<script>alert(1)</script> | Test Kitchen" {
		t.Errorf("title = %q", doc.Title())
	}
	if v, _ := doc.Meta("name", "description"); v != "Excerpt 3" {
		t.Errorf("description = %q", v)
	}
	if v, _ := doc.Meta("property", "og:image"); v != "/img/p03.jpg" {
		t.Errorf("og:image = %q", v)
	}
	if v, _ := doc.Meta("property", "og:title"); v != all[3].Title {
		t.Errorf("og:title = %q", v)
	}

	if doc.Hidden(dom.RelatedPosts) {
		t.Error("related posts should be visible")
	}
	related := doc.HTML(dom.RelatedPostsGrid)
	if strings.Count(related, "related-card") != 3 || strings.Contains(related, "/posts/p03/") {
		t.Errorf("related grid: %s", related)
	}
	if src.fullHits != 1 {
		t.Errorf("post page loaded the full dataset %d times", src.fullHits)
	}
}

func TestRenderPostNoSlug(t *testing.T) {
	doc := parse(t, postShell)
	err := newController(&fakeSource{all: dataset(3)}).Render(t.Context(), doc, Request{})
	if !errors.Is(err, ErrNoSlug) {
		t.Fatalf("err = %v, want ErrNoSlug", err)
	}
	if !strings.Contains(doc.HTML(dom.PostContent), "Post not found (No slug provided)") {
		t.Errorf("content: %s", doc.HTML(dom.PostContent))
	}
	if !doc.Hidden(dom.RelatedPosts) {
		t.Error("related posts should stay hidden")
	}
}

func TestRenderPostUnknownSlug(t *testing.T) {
	doc := parse(t, postShell)
	err := newController(&fakeSource{all: dataset(3)}).Render(t.Context(), doc, Request{Slug: "nope"})
	if !errors.Is(err, ErrSlugMismatch) {
		t.Fatalf("err = %v, want ErrSlugMismatch", err)
	}
	if !strings.Contains(doc.HTML(dom.PostContent), "Post not found (Slug mismatch)") {
		t.Errorf("content: %s", doc.HTML(dom.PostContent))
	}
	if !strings.Contains(doc.HTML(dom.CategoryList), "Recipes") {
		t.Error("sidebar should render despite the missing post")
	}
}

func TestRenderPostDatasetFailure(t *testing.T) {
	doc := parse(t, postShell)
	failure := &posts.DatasetError{Path: "/srv/posts.json", Err: errors.New("boom")}
	err := newController(&fakeSource{err: failure}).Render(t.Context(), doc, Request{Slug: "p01"})
	if !errors.As(err, new(*posts.DatasetError)) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(doc.HTML(dom.PostContent), "/srv/posts.json") {
		t.Error("post container should show the failed path")
	}
}

func TestRenderStaticPost(t *testing.T) {
	shell := strings.Replace(postShell, `<p>Loading...</p>`,
		`<article><div class="post-body" data-slug="p04"><p>pre-rendered</p></div></article>`, 1)
	doc := parse(t, shell)
	src := &fakeSource{all: dataset(9)}

	if err := newController(src).Render(t.Context(), doc, Request{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(doc.HTML(dom.PostContent), "pre-rendered") {
		t.Error("static body must be left alone")
	}
	if src.fullHits != 0 || src.indexHits != 1 {
		t.Errorf("static page loaded full %d and index %d times", src.fullHits, src.indexHits)
	}
	related := doc.HTML(dom.RelatedPostsGrid)
	if strings.Count(related, "related-card") != 3 || strings.Contains(related, "/posts/p04/") {
		t.Errorf("related grid: %s", related)
	}
	if doc.Title() != "Post" {
		t.Error("static mode should not rewrite the title")
	}
}

func TestRenderPreloadedPost(t *testing.T) {
	doc := parse(t, postShell)
	all := dataset(4)
	src := &fakeSource{all: all}

	if err := newController(src).Render(t.Context(), doc, Request{Preloaded: &all[2]}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(doc.HTML(dom.PostContent), `data-slug="p02"`) {
		t.Error("preloaded post should be rendered into the container")
	}
	if doc.Title() != "Post 2 | Test Kitchen" {
		t.Errorf("title = %q", doc.Title())
	}
	if src.fullHits != 0 {
		t.Error("preloaded post must not fetch the full dataset")
	}
}

func TestRenderPreloadedPostFailureKeepsSidebar(t *testing.T) {
	doc := parse(t, postShell)
	all := dataset(4)
	src := &fakeSource{all: all}
	c := newController(src)
	c.RenderPost = func(posts.Post) (string, error) { return "", errors.New("template broke") }

	err := c.Render(t.Context(), doc, Request{Preloaded: &all[1]})
	if err == nil || !strings.Contains(err.Error(), "template broke") {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(doc.HTML(dom.PostContent), "Error rendering post: template broke") {
		t.Error("post container should show the render error")
	}
	if !doc.Hidden(dom.RelatedPosts) {
		t.Error("related section should stay hidden")
	}
	if !strings.Contains(doc.HTML(dom.CategoryList), "Recipes") {
		t.Error("sidebar should still be rendered")
	}
	if doc.Text(dom.CurrentYear) != "2031" {
		t.Error("footer year should still be set")
	}
}

func TestApplySEOCreatesTags(t *testing.T) {
	doc := parse(t, `<html><head></head><body></body></html>`)
	ApplySEO(doc, posts.Post{Title: "Soup", Excerpt: "Warm"}, "")
	if doc.Title() != "Soup" {
		t.Errorf("title = %q", doc.Title())
	}
	if v, ok := doc.Meta("property", "og:description"); !ok || v != "Warm" {
		t.Errorf("og:description = %q, %v", v, ok)
	}
	if _, ok := doc.Meta("property", "og:image"); ok {
		t.Error("og:image should not be set without an image")
	}
}
