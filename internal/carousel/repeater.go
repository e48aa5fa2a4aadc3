package carousel

import (
	"sync"
	"time"
)

// Repeater calls fn every interval on its own goroutine until stopped.
type Repeater struct {
	interval time.Duration
	fn       func()

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewRepeater returns a stopped repeater.
func NewRepeater(interval time.Duration, fn func()) *Repeater {
	return &Repeater{interval: interval, fn: fn}
}

// Start begins ticking. Calling Start on a running repeater restarts its
// interval.
func (r *Repeater) Start() {
	stop := make(chan struct{})
	done := make(chan struct{})

	r.mu.Lock()
	oldStop, oldDone := r.stop, r.done
	r.stop, r.done = stop, done
	go r.run(stop, done)
	r.mu.Unlock()

	// Whoever swaps a channel pair out owns closing it.
	if oldStop != nil {
		close(oldStop)
		<-oldDone
	}
}

func (r *Repeater) run(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.fn()
		}
	}
}

// Stop cancels the repeater and waits for its goroutine to exit. It must not
// be called from fn.
func (r *Repeater) Stop() {
	r.mu.Lock()
	stop, done := r.stop, r.done
	r.stop, r.done = nil, nil
	r.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Running reports whether the repeater is active.
func (r *Repeater) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil
}
