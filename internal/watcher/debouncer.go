package watcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Debouncer coalesces bursts of events for the same item into a single
// queue push. Each event resets the item's timer; the item is enqueued
// only after a quiet period of Delay.
type Debouncer struct {
	Delay time.Duration

	root  string
	queue *Queue
	log   *slog.Logger

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer feeding queue with item keys derived
// from paths under root.
func NewDebouncer(root string, delay time.Duration, queue *Queue, log *slog.Logger) *Debouncer {
	return &Debouncer{
		Delay:  delay,
		root:   root,
		queue:  queue,
		log:    log.With("component", "debounce"),
		timers: make(map[string]*time.Timer),
	}
}

// ItemKey maps an event path to the bundle it belongs to: the path itself
// for a root-level file, otherwise the first directory under root.
// Returns "" for paths outside root or for root itself.
func (d *Debouncer) ItemKey(path string) string {
	rel, err := filepath.Rel(d.root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	first, _, _ := strings.Cut(rel, string(filepath.Separator))
	return filepath.Join(d.root, first)
}

// OnEvent registers filesystem activity for path, starting or resetting
// the debounce timer for its item.
func (d *Debouncer) OnEvent(path string) {
	key := d.ItemKey(path)
	if key == "" {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if t, ok := d.timers[key]; ok {
		t.Reset(d.Delay)
		return
	}
	d.log.Debug("tracking item", "item", key)
	d.timers[key] = time.AfterFunc(d.Delay, func() {
		d.fire(key)
	})
}

// fire enqueues the item once its quiet period elapses. Items that
// vanished in the meantime are dropped.
func (d *Debouncer) fire(key string) {
	d.mu.Lock()
	delete(d.timers, key)
	stopped := d.stopped
	d.mu.Unlock()
	if stopped {
		return
	}

	if _, err := os.Stat(key); err != nil {
		d.log.Debug("item gone before settle", "item", key)
		return
	}
	if d.queue.Push(key) {
		d.log.Info("item settled", "item", key)
	}
}

// Stop cancels all pending timers. No items are enqueued after Stop
// returns.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
