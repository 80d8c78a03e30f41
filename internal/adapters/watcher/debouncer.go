package watcher

import (
	"maps"
	"slices"
	"sync"
	"time"
)

// DefaultWindow is the quiet period before a batch of changes is delivered.
const DefaultWindow = 50 * time.Millisecond

// Debouncer collects paths and delivers them in one sorted batch once no new
// path arrived for the window.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[string]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)
}

// NewDebouncer creates a Debouncer.
func NewDebouncer(window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[string]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add records path and restarts the window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[path] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	paths := d.drain()
	if len(paths) > 0 && d.callback != nil {
		d.callback(paths)
	}
}

// Flush delivers pending paths now, on the calling goroutine.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil && !d.timer.Stop() {
		// Already firing.
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()
	d.fire()
}

func (d *Debouncer) drain() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.timer = nil
	if len(d.pending) == 0 {
		return nil
	}
	paths := slices.Sorted(maps.Keys(d.pending))
	clear(d.pending)
	return paths
}
