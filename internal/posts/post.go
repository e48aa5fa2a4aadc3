package posts

import (
	"net/url"
	"strings"
	"time"
)

// Post is a single blog entry as it appears in the dataset.
type Post struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Date     string   `json:"date"`
	Excerpt  string   `json:"excerpt"`
	Image    string   `json:"image,omitempty"`
	Content  *Content `json:"content,omitempty"`
}

// Content is the structured body of a post. Every section is optional.
type Content struct {
	Paragraphs  []string `json:"paragraphs,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Steps       []string `json:"steps,omitempty"`
}

// Dataset is the JSON envelope shared by the index and the full resource.
// Count is only present on the index.
type Dataset struct {
	Posts []Post `json:"posts"`
	Count int    `json:"count,omitempty"`
}

// dateLayouts are tried in order when parsing Post.Date.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO-style date string.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Time returns the parsed publication date, or the zero time if Date
// cannot be parsed.
func (p Post) Time() time.Time {
	t, _ := ParseDate(p.Date)
	return t
}

// URL returns the canonical page URL of the post.
func (p Post) URL() string {
	return URLFor(p.Slug)
}

// URLFor returns the canonical page URL for a slug.
func URLFor(slug string) string {
	return "/posts/" + url.PathEscape(slug) + "/"
}

// Find returns the post with the given slug.
func Find(all []Post, slug string) (Post, bool) {
	for _, p := range all {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}

// Abbreviate returns a copy of p without its body, as stored in the index.
func Abbreviate(p Post) Post {
	p.Content = nil
	return p
}
