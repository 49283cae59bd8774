// Package processor turns a settled watch item into organized library
// files: classification, metadata resolution, versioning policy, delivery.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vmunix/watchrr/internal/metadata"
	"github.com/vmunix/watchrr/internal/probe"
	"github.com/vmunix/watchrr/pkg/medianame"
)

// Resolver identifies a parsed name.
type Resolver interface {
	Resolve(ctx context.Context, parsed medianame.ParsedName, hint metadata.Kind) (*metadata.Record, error)
}

//go:generate mockgen -destination=mocks/processor.go -package=mocks . Resolver

// Config carries the library layout and deletion policy.
type Config struct {
	MovieRoot    string
	SeriesRoot   string
	DeleteSource bool
}

// Processor drives the bundle flow for one watched item at a time. Safe
// for concurrent use; all per-item state lives on the stack.
type Processor struct {
	resolver Resolver
	prober   probe.Prober
	cfg      Config
	log      *slog.Logger
}

// New creates a processor. prober may be nil, in which case quality
// scoring relies on filename keywords alone.
func New(resolver Resolver, prober probe.Prober, cfg Config, log *slog.Logger) *Processor {
	return &Processor{
		resolver: resolver,
		prober:   prober,
		cfg:      cfg,
		log:      log.With("component", "processor"),
	}
}

// Process runs the full flow for the item at path: classify, resolve,
// deliver. The source is cleaned up afterward when deletion is enabled,
// whether or not delivery succeeded. Expected absences (no media, no
// metadata match) are logged and swallowed; only hard faults return an
// error.
func (p *Processor) Process(ctx context.Context, path string) error {
	defer p.cleanupSource(path)

	name := filepath.Base(path)
	p.log.Info("processing item", "item", name)

	bundle, err := Classify(path)
	if err != nil {
		if errors.Is(err, ErrNoMedia) {
			p.log.Error("no video files in item", "item", name)
			return nil
		}
		return fmt.Errorf("classify %s: %w", path, err)
	}

	hint := metadata.KindMovie
	if bundle.SeriesHint() {
		hint = metadata.KindSeries
	}
	p.log.Debug("type hint", "item", name, "hint", hint)

	rec, err := p.resolver.Resolve(ctx, medianame.Parse(name), hint)
	if err != nil {
		if metadata.IsNoMatch(err) {
			p.log.Error("could not identify item", "item", name, "reason", err)
			return nil
		}
		return fmt.Errorf("resolve %s: %w", name, err)
	}

	// The resolved kind is authoritative and may override the hint.
	switch rec.Kind {
	case metadata.KindSeries:
		return p.processSeries(ctx, bundle, rec)
	case metadata.KindMovie:
		return p.processMovie(ctx, bundle, rec)
	default:
		p.log.Warn("unrecognized media kind", "item", name, "kind", rec.Kind)
		return nil
	}
}

// destDirName builds the per-title library directory name.
func destDirName(rec *metadata.Record) string {
	return fmt.Sprintf("%s (%d) {tvdb-%d}", SanitizeFilename(rec.Name), rec.Year, rec.ID)
}

// copyIfMissing delivers src to dst, treating an occupied destination as
// an expected skip rather than a failure.
func (p *Processor) copyIfMissing(src, dst string) {
	_, err := CopyFile(src, dst)
	switch {
	case errors.Is(err, ErrDestinationExists):
		p.log.Warn("already in library, skipping", "dest", filepath.Base(dst))
	case err != nil:
		p.log.Error("copy failed", "source", src, "dest", dst, "error", err)
	default:
		p.log.Info("copied", "dest", filepath.Base(dst))
	}
}

// copyExtras delivers extras into category subdirectories of destDir,
// keeping their original filenames.
func (p *Processor) copyExtras(extras []MediaFile, destDir string) {
	for _, f := range extras {
		category := ExtraCategory(f.Name)
		if category == "" {
			continue
		}
		p.copyIfMissing(f.Path, filepath.Join(destDir, category, f.Name))
	}
}

// cleanupSource removes the source item when deletion is enabled.
// Failures are logged, never fatal.
func (p *Processor) cleanupSource(path string) {
	if !p.cfg.DeleteSource {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := os.RemoveAll(path); err != nil {
		p.log.Error("source cleanup failed", "path", path, "error", err)
		return
	}
	p.log.Info("cleaned up source", "path", path)
}
