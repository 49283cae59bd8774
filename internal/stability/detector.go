// Package stability decides when a file tree has stopped changing and is
// safe to process.
package stability

import (
	"context"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"time"
)

// Detector polls a path until two consecutive size snapshots agree.
type Detector struct {
	Interval time.Duration
	Timeout  time.Duration

	log *slog.Logger
}

// NewDetector creates a detector with the given polling interval and
// overall timeout.
func NewDetector(interval, timeout time.Duration, log *slog.Logger) *Detector {
	return &Detector{
		Interval: interval,
		Timeout:  timeout,
		log:      log.With("component", "stability"),
	}
}

// Snapshot walks path and returns the sizes of every regular file keyed
// by full path. A plain file yields a single-entry map. Entries that
// disappear mid-walk are skipped rather than failing the snapshot.
func Snapshot(path string) (map[string]int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	sizes := make(map[string]int64)
	if !info.IsDir() {
		sizes[path] = info.Size()
		return sizes, nil
	}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		sizes[p] = fi.Size()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sizes, nil
}

// Wait blocks until path is stable, the timeout elapses, or ctx is
// cancelled. Stable means two snapshots taken Interval apart are equal
// and non-empty; an empty directory never stabilizes. Returns false with
// a nil error on timeout, and ctx.Err() on cancellation.
func (d *Detector) Wait(ctx context.Context, path string) (bool, error) {
	deadline := time.NewTimer(d.Timeout)
	defer deadline.Stop()

	prev, err := Snapshot(path)
	if err != nil {
		return false, err
	}

	ticker := time.NewTicker(d.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-deadline.C:
			d.log.Warn("file never stabilized", "path", path, "timeout", d.Timeout)
			return false, nil
		case <-ticker.C:
		}

		cur, err := Snapshot(path)
		if err != nil {
			return false, err
		}
		if len(cur) > 0 && maps.Equal(prev, cur) {
			d.log.Debug("path stable", "path", path, "files", len(cur))
			return true, nil
		}
		prev = cur
	}
}
