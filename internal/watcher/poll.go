package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

type fileState struct {
	size  int64
	mtime time.Time
	dir   bool
}

// PollBackend detects changes by periodically walking the watch root and
// diffing size/mtime state. It works on any filesystem, including network
// mounts where inotify is unreliable.
type PollBackend struct {
	root     string
	interval time.Duration
	log      *slog.Logger

	events chan Event
	seen   map[string]fileState
}

// NewPollBackend creates a polling backend for root.
func NewPollBackend(root string, interval time.Duration, log *slog.Logger) *PollBackend {
	return &PollBackend{
		root:     root,
		interval: interval,
		log:      log.With("component", "watch", "backend", "poll"),
		events:   make(chan Event, 64),
		seen:     make(map[string]fileState),
	}
}

// Events returns the event stream. Closed when Run returns.
func (b *PollBackend) Events() <-chan Event {
	return b.events
}

// Run scans the root until ctx is cancelled. The first scan primes the
// state without emitting events when the root already has content; new
// and changed entries on later scans are emitted.
func (b *PollBackend) Run(ctx context.Context) error {
	defer close(b.events)

	if err := b.scan(ctx, false); err != nil {
		return err
	}
	b.log.Info("watching", "root", b.root, "interval", b.interval)

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := b.scan(ctx, true); err != nil {
				b.log.Error("scan failed", "error", err)
			}
		}
	}
}

func (b *PollBackend) scan(ctx context.Context, emit bool) error {
	current := make(map[string]fileState, len(b.seen))

	err := filepath.WalkDir(b.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if path == b.root {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		current[path] = fileState{
			size:  info.Size(),
			mtime: info.ModTime(),
			dir:   d.IsDir(),
		}
		return nil
	})
	if err != nil {
		return err
	}

	if emit {
		for path, st := range current {
			prev, existed := b.seen[path]
			if existed && prev == st {
				continue
			}
			select {
			case <-ctx.Done():
				return nil
			case b.events <- Event{Path: path, Dir: st.dir}:
			}
		}
	}
	b.seen = current
	return nil
}
