package blog

import (
	"slices"
	"strings"
	"unicode"

	"github.com/ziadkadry99/blogrender/internal/posts"
)

// Shuffler permutes n elements through swap. *rand.Rand from math/rand/v2
// satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Sample shuffles a copy of all and keeps the first min(n, len(all)) posts.
func Sample(all []posts.Post, n int, s Shuffler) []posts.Post {
	if n <= 0 || len(all) == 0 {
		return nil
	}
	pool := slices.Clone(all)
	s.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:min(n, len(pool))]
}

// Related picks up to n posts for current: same-category posts first, then
// any other post in dataset order until n is reached.
func Related(current posts.Post, all []posts.Post, n int) []posts.Post {
	if n <= 0 {
		return nil
	}

	var picked []posts.Post
	chosen := make(map[string]bool)
	for _, p := range all {
		if len(picked) == n {
			return picked
		}
		if p.Slug == current.Slug || p.Category != current.Category {
			continue
		}
		picked = append(picked, p)
		chosen[p.Slug] = true
	}

	for _, p := range all {
		if len(picked) == n {
			break
		}
		if p.Slug == current.Slug || chosen[p.Slug] {
			continue
		}
		picked = append(picked, p)
	}
	return picked
}

// CategoryCount is one entry of the sidebar category list.
type CategoryCount struct {
	Name   string
	Anchor string
	Count  int
}

// Categories counts posts per category, keeping first-occurrence order.
func Categories(all []posts.Post) []CategoryCount {
	var out []CategoryCount
	index := make(map[string]int)
	for _, p := range all {
		if p.Category == "" {
			continue
		}
		if i, ok := index[p.Category]; ok {
			out[i].Count++
			continue
		}
		index[p.Category] = len(out)
		out = append(out, CategoryCount{Name: p.Category, Anchor: Anchor(p.Category), Count: 1})
	}
	return out
}

// Recent returns the n newest posts. all is not modified.
func Recent(all []posts.Post, n int) []posts.Post {
	if n <= 0 {
		return nil
	}
	sorted := slices.Clone(all)
	slices.SortStableFunc(sorted, func(a, b posts.Post) int {
		return b.Time().Compare(a.Time())
	})
	return sorted[:min(n, len(sorted))]
}

// Anchor turns a category name into a fragment identifier: "Quick Meals"
// becomes "quick-meals".
func Anchor(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
