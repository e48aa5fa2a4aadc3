// Package dom wraps a parsed HTML page shell. Rendering code addresses the
// page through the element ids it exposes.
package dom

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
)

// Element ids and selectors a page shell may expose.
const (
	PostContent      = "postContent"
	PostsGrid        = "postsGrid"
	HeroCarousel     = "heroCarousel"
	CarouselDots     = "carouselDots"
	CarouselPrev     = "carouselPrev"
	CarouselNext     = "carouselNext"
	Pagination       = "pagination"
	CategoryList     = "categoryList"
	RecentPosts      = "recentPosts"
	RelatedPosts     = "relatedPosts"
	RelatedPostsGrid = "relatedPostsGrid"
	CurrentYear      = "currentYear"

	// PostBodySelector marks a post page whose body was rendered ahead of time.
	PostBodySelector = ".post-body"
)

// Document is a mutable HTML page.
type Document struct {
	doc *goquery.Document
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString parses an HTML page held in memory.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func (d *Document) byID(id string) *goquery.Selection {
	return d.doc.Find("#" + id).First()
}

// Has reports whether an element with the given id exists.
func (d *Document) Has(id string) bool {
	return d.byID(id).Length() > 0
}

// Exists reports whether any element matches the CSS selector.
func (d *Document) Exists(selector string) bool {
	return d.doc.Find(selector).Length() > 0
}

// Attr returns an attribute of the first element matching selector.
func (d *Document) Attr(selector, name string) (string, bool) {
	return d.doc.Find(selector).First().Attr(name)
}

// SetHTML replaces the children of the element with id by the given markup.
// It returns false if the element does not exist.
func (d *Document) SetHTML(id, markup string) bool {
	sel := d.byID(id)
	if sel.Length() == 0 {
		return false
	}
	sel.SetHtml(markup)
	return true
}

// HTML returns the inner markup of the element with id.
func (d *Document) HTML(id string) string {
	s, _ := d.byID(id).Html()
	return s
}

// SetText replaces the children of the element with id by a text node.
func (d *Document) SetText(id, text string) bool {
	sel := d.byID(id)
	if sel.Length() == 0 {
		return false
	}
	sel.SetText(text)
	return true
}

// Text returns the text content of the element with id.
func (d *Document) Text(id string) string {
	return d.byID(id).Text()
}

// Hide marks the element with id as hidden.
func (d *Document) Hide(id string) {
	d.byID(id).SetAttr("hidden", "")
}

// Show removes the hidden marker from the element with id.
func (d *Document) Show(id string) {
	d.byID(id).RemoveAttr("hidden")
}

// Hidden reports whether the element with id carries the hidden attribute.
func (d *Document) Hidden(id string) bool {
	_, ok := d.byID(id).Attr("hidden")
	return ok
}

// Title returns the document title.
func (d *Document) Title() string {
	return d.doc.Find("title").First().Text()
}

// SetTitle sets the document title, creating the element when missing.
func (d *Document) SetTitle(title string) {
	if sel := d.doc.Find("title").First(); sel.Length() > 0 {
		sel.SetText(title)
		return
	}
	d.head().AppendHtml("<title>" + html.EscapeString(title) + "</title>")
}

// SetMeta sets the content of the meta tag identified by attr=key
// (name="description", property="og:title", ...), creating it when missing.
func (d *Document) SetMeta(attr, key, content string) {
	sel := d.doc.Find(fmt.Sprintf(`meta[%s=%q]`, attr, key)).First()
	if sel.Length() > 0 {
		sel.SetAttr("content", content)
		return
	}
	d.head().AppendHtml(fmt.Sprintf(`<meta %s="%s" content="%s">`,
		attr, html.EscapeString(key), html.EscapeString(content)))
}

// Meta returns the content of the meta tag identified by attr=key.
func (d *Document) Meta(attr, key string) (string, bool) {
	return d.doc.Find(fmt.Sprintf(`meta[%s=%q]`, attr, key)).First().Attr("content")
}

func (d *Document) head() *goquery.Selection {
	return d.doc.Find("head").First()
}

// Render writes the whole document.
func (d *Document) Render(w io.Writer) error {
	for _, n := range d.doc.Nodes {
		if err := xhtml.Render(w, n); err != nil {
			return fmt.Errorf("rendering page: %w", err)
		}
	}
	return nil
}

// String renders the document into a string.
func (d *Document) String() (string, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
