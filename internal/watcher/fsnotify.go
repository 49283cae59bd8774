package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// NotifyBackend uses inotify-style kernel notifications. Watches are
// added recursively as directories appear, since fsnotify itself is
// non-recursive.
type NotifyBackend struct {
	root   string
	log    *slog.Logger
	events chan Event
}

// NewNotifyBackend creates a notification backend for root.
func NewNotifyBackend(root string, log *slog.Logger) *NotifyBackend {
	return &NotifyBackend{
		root:   root,
		log:    log.With("component", "watch", "backend", "fsnotify"),
		events: make(chan Event, 64),
	}
}

// Events returns the event stream. Closed when Run returns.
func (b *NotifyBackend) Events() <-chan Event {
	return b.events
}

// Run watches the root until ctx is cancelled.
func (b *NotifyBackend) Run(ctx context.Context) error {
	defer close(b.events)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := addRecursive(w, b.root); err != nil {
		return fmt.Errorf("watch %s: %w", b.root, err)
	}
	b.log.Info("watching", "root", b.root)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			b.log.Error("watch error", "error", err)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
				continue
			}

			info, err := os.Stat(ev.Name)
			if err != nil {
				continue
			}
			if info.IsDir() && ev.Has(fsnotify.Create) {
				// New directories need their own watch before files
				// land in them.
				if err := addRecursive(w, ev.Name); err != nil {
					b.log.Warn("watch subdirectory failed", "path", ev.Name, "error", err)
				}
			}

			select {
			case <-ctx.Done():
				return nil
			case b.events <- Event{Path: ev.Name, Dir: info.IsDir()}:
			}
		}
	}
}

// addRecursive watches path and every directory below it.
func addRecursive(w *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.Add(p)
	})
}
