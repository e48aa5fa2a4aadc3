// Package carousel implements the featured-post slideshow: a wrapping slide
// index plus an auto-advance timer that pauses while the pointer hovers.
package carousel

import (
	"sync"
	"time"

	"github.com/ziadkadry99/blogrender/internal/posts"
)

// DefaultInterval is the auto-advance period.
const DefaultInterval = 5 * time.Second

// State is the timer state of a carousel.
type State int

const (
	Idle State = iota
	AutoPlaying
)

func (s State) String() string {
	if s == AutoPlaying {
		return "auto-playing"
	}
	return "idle"
}

// Origin identifies which element of a slide received a click.
type Origin int

const (
	// OriginSlide is a click anywhere on the slide body.
	OriginSlide Origin = iota
	// OriginReadMore is the slide's own "Read More" link, which navigates
	// by itself.
	OriginReadMore
	// OriginControl is a prev/next button or a dot.
	OriginControl
)

// Carousel holds the slides and the active index. It is safe for concurrent
// use; the auto-advance timer runs on its own goroutine.
type Carousel struct {
	slides []posts.Post

	mu       sync.Mutex
	current  int
	onChange func(index int)

	timer *Repeater
}

// New builds a carousel positioned on the first slide. A non-positive
// interval uses DefaultInterval.
func New(slides []posts.Post, interval time.Duration) *Carousel {
	if interval <= 0 {
		interval = DefaultInterval
	}
	c := &Carousel{slides: slides}
	c.timer = NewRepeater(interval, c.Next)
	return c
}

// OnChange registers fn to be called with the new index after every slide
// change. fn runs without the carousel lock held.
func (c *Carousel) OnChange(fn func(index int)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Len returns the number of slides.
func (c *Carousel) Len() int { return len(c.slides) }

// Slides returns the slide posts in display order.
func (c *Carousel) Slides() []posts.Post { return c.slides }

// Current returns the active slide index.
func (c *Carousel) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// GoTo activates slide i, wrapping out-of-range indexes in both directions.
// It returns the resulting index. Timer state is unchanged.
func (c *Carousel) GoTo(i int) int {
	return c.move(func(int) int { return i })
}

// Next advances one slide.
func (c *Carousel) Next() { c.move(func(cur int) int { return cur + 1 }) }

// Prev goes back one slide.
func (c *Carousel) Prev() { c.move(func(cur int) int { return cur - 1 }) }

// move computes the target from the current index under one lock hold, so
// concurrent steps never collapse into one.
func (c *Carousel) move(target func(cur int) int) int {
	n := len(c.slides)
	if n == 0 {
		return 0
	}

	c.mu.Lock()
	i := target(c.current)
	i = ((i % n) + n) % n
	c.current = i
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(i)
	}
	return i
}

// Start begins auto-advancing. An empty carousel stays idle.
func (c *Carousel) Start() {
	if len(c.slides) == 0 {
		return
	}
	c.timer.Start()
}

// Stop halts auto-advance and waits for the timer goroutine to exit.
func (c *Carousel) Stop() { c.timer.Stop() }

// MouseEnter pauses auto-advance.
func (c *Carousel) MouseEnter() { c.Stop() }

// MouseLeave resumes auto-advance.
func (c *Carousel) MouseLeave() { c.Start() }

// State reports whether the carousel is auto-advancing.
func (c *Carousel) State() State {
	if c.timer.Running() {
		return AutoPlaying
	}
	return Idle
}

// Click resolves a click on slide index. It returns the post URL and whether
// the caller should navigate there. Clicks on the read-more link or on a
// navigation control do not navigate.
func (c *Carousel) Click(index int, origin Origin) (url string, navigate bool) {
	if index < 0 || index >= len(c.slides) {
		return "", false
	}
	url = c.slides[index].URL()
	return url, origin == OriginSlide
}
