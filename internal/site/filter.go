package site

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ziadkadry99/blogrender/internal/posts"
)

// MatchesInclude returns true if the slug matches any of the include
// patterns. If patterns is empty, everything is included.
func MatchesInclude(slug string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(slug, patterns)
}

// MatchesExclude returns true if the slug matches any of the exclude
// patterns. If patterns is empty, nothing is excluded.
func MatchesExclude(slug string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(slug, patterns)
}

func matchesAny(slug string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, slug); err == nil && matched {
			return true
		}
	}
	return false
}

// Filter keeps the posts selected by include and not rejected by exclude,
// preserving order.
func Filter(all []posts.Post, include, exclude []string) []posts.Post {
	var out []posts.Post
	for _, p := range all {
		if MatchesInclude(p.Slug, include) && !MatchesExclude(p.Slug, exclude) {
			out = append(out, p)
		}
	}
	return out
}

// SafeSlug reports whether slug can be used as a single output directory
// name.
func SafeSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	if strings.HasPrefix(slug, ".") {
		return false
	}
	return !strings.ContainsAny(slug, `/\`+"\x00")
}
