// Package render produces the HTML fragments injected into page shells.
// All post text goes through html/template, so it is always escaped.
package render

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/blogrender/internal/blog"
	"github.com/ziadkadry99/blogrender/internal/posts"
)

// AdAfterParagraph is the paragraph index followed by an in-content ad.
const AdAfterParagraph = 2

type postView struct {
	Post    posts.Post
	URL     string
	Excerpt string
}

func views(ps []posts.Post, excerptLen int) []postView {
	out := make([]postView, len(ps))
	for i, p := range ps {
		out[i] = postView{Post: p, URL: p.URL(), Excerpt: TruncateExcerpt(p.Excerpt, excerptLen)}
	}
	return out
}

func execute(name string, data any) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return b.String(), nil
}

// Grid renders one card per post.
func Grid(ps []posts.Post, excerptLen int) (string, error) {
	return execute("grid", views(ps, excerptLen))
}

// Pager renders pagination controls. Link maps a page number to its URL.
type Pager struct {
	Link func(page int) string
}

// QueryLink links pages through the "page" query parameter.
func QueryLink(page int) string {
	return fmt.Sprintf("?page=%d", page)
}

type controlView struct {
	Kind   string
	Page   int
	Href   string
	Active bool
}

// Render returns the pagination bar for current of total pages. It is empty
// when there is at most one page.
func (p Pager) Render(current, total int) (string, error) {
	controls := blog.PaginationControls(current, total)
	if len(controls) == 0 {
		return "", nil
	}
	link := p.Link
	if link == nil {
		link = QueryLink
	}

	out := make([]controlView, len(controls))
	for i, c := range controls {
		v := controlView{Page: c.Page, Active: c.Active}
		switch c.Kind {
		case blog.ControlPrev:
			v.Kind = "prev"
		case blog.ControlNext:
			v.Kind = "next"
		case blog.ControlEllipsis:
			v.Kind = "ellipsis"
		default:
			v.Kind = "page"
		}
		if c.Kind != blog.ControlEllipsis {
			v.Href = link(c.Page)
		}
		out[i] = v
	}
	return execute("pagination", out)
}

// Carousel renders the slides and the matching navigation dots. The first
// slide and dot are active.
func Carousel(slides []posts.Post, excerptLen int) (slidesHTML, dotsHTML string, err error) {
	vs := views(slides, excerptLen)
	if slidesHTML, err = execute("slides", vs); err != nil {
		return "", "", err
	}
	if dotsHTML, err = execute("dots", vs); err != nil {
		return "", "", err
	}
	return slidesHTML, dotsHTML, nil
}

type paragraphView struct {
	Text    string
	AdAfter bool
}

type articleView struct {
	Post        posts.Post
	Paragraphs  []paragraphView
	Ingredients []string
	Steps       []string
}

// Post renders a full article: header, optional image and body.
func Post(p posts.Post) (string, error) {
	v := articleView{Post: p}
	if c := p.Content; c != nil {
		for i, text := range c.Paragraphs {
			v.Paragraphs = append(v.Paragraphs, paragraphView{
				Text:    text,
				AdAfter: i == AdAfterParagraph,
			})
		}
		v.Ingredients = c.Ingredients
		v.Steps = c.Steps
	}
	return execute("post", v)
}

// Related renders the related-post cards.
func Related(ps []posts.Post) (string, error) {
	return execute("related", views(ps, 0))
}

// Categories renders the sidebar category list.
func Categories(cs []blog.CategoryCount) (string, error) {
	return execute("categories", cs)
}

// RecentPosts renders the sidebar recent-post list.
func RecentPosts(ps []posts.Post) (string, error) {
	return execute("recent", views(ps, 0))
}

// ErrorBlock renders a visible error message. path is omitted when empty.
func ErrorBlock(message, path string) string {
	s, err := execute("error", struct{ Message, Path string }{message, path})
	if err != nil {
		return `<div class="error-message"><p>` + Escape(message) + `</p></div>`
	}
	return s
}
