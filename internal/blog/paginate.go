// Package blog holds the selection logic behind the blog pages: paging,
// carousel sampling, related posts and the sidebar derivations.
package blog

import "github.com/ziadkadry99/blogrender/internal/posts"

// TotalPages returns ceil(n/size).
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampPage moves page into [1, total]. It returns 1 when there are no pages.
func ClampPage(page, total int) int {
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the posts shown on the 1-based page.
func Paginate(all []posts.Post, page, size int) []posts.Post {
	if page < 1 || size <= 0 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(all) {
		return nil
	}
	end := min(start+size, len(all))
	return all[start:end]
}

// ControlKind identifies an element of the pagination bar.
type ControlKind int

const (
	ControlPrev ControlKind = iota
	ControlPage
	ControlEllipsis
	ControlNext
)

// Control is one element of the pagination bar. Page is the target page for
// Prev, Page and Next controls.
type Control struct {
	Kind   ControlKind
	Page   int
	Active bool
}

// PaginationControls lays out the pagination bar for the current page.
//
// Page 1 and the last page are always shown, together with a three page
// window around current (shifted inward at the edges). Every run of skipped
// pages collapses into one ellipsis. A single page produces no controls.
func PaginationControls(current, total int) []Control {
	if total <= 1 {
		return nil
	}
	current = ClampPage(current, total)

	start, end := current-1, current+1
	if start < 1 {
		end += 1 - start
		start = 1
	}
	if end > total {
		start -= end - total
		end = total
	}
	start = max(start, 1)

	var controls []Control
	if current > 1 {
		controls = append(controls, Control{Kind: ControlPrev, Page: current - 1})
	}

	controls = append(controls, Control{Kind: ControlPage, Page: 1, Active: current == 1})
	if start > 2 {
		controls = append(controls, Control{Kind: ControlEllipsis})
	}
	for i := max(start, 2); i <= min(end, total-1); i++ {
		controls = append(controls, Control{Kind: ControlPage, Page: i, Active: current == i})
	}
	if end < total-1 {
		controls = append(controls, Control{Kind: ControlEllipsis})
	}
	controls = append(controls, Control{Kind: ControlPage, Page: total, Active: current == total})

	if current < total {
		controls = append(controls, Control{Kind: ControlNext, Page: current + 1})
	}
	return controls
}
