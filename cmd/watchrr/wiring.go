package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/watchrr/internal/config"
	"github.com/vmunix/watchrr/internal/logging"
	"github.com/vmunix/watchrr/internal/metadata"
	"github.com/vmunix/watchrr/internal/probe"
	"github.com/vmunix/watchrr/internal/processor"
	"github.com/vmunix/watchrr/pkg/tvdb"
)

// app holds the assembled service components shared by the watch and
// organize commands.
type app struct {
	cfg   *config.Config
	log   *slog.Logger
	cache *metadata.Cache
	proc  *processor.Processor
}

// loadConfig reads and validates the config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &config.ConfigError{Path: configPath, Errors: errs}
	}
	return cfg, nil
}

// buildApp wires logger, metadata client, cache, resolver and processor
// from the validated config.
func buildApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	var searcher metadata.Searcher = tvdb.New(cfg.TVDB.APIKey, tvdb.WithLogger(log))

	var cache *metadata.Cache
	if cfg.TVDB.CachePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.TVDB.CachePath), 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
		cache, err = metadata.OpenCache(cfg.TVDB.CachePath)
		if err != nil {
			return nil, err
		}
		searcher = metadata.NewCachedSearcher(searcher, cache, log)
	}

	resolver := metadata.NewResolver(searcher, cfg.TVDB.Confidence, log)

	proc := processor.New(resolver, &probe.FFProbe{}, processor.Config{
		MovieRoot:    cfg.Libraries.Movies.Root,
		SeriesRoot:   cfg.Libraries.Series.Root,
		DeleteSource: cfg.Watch.DeleteSource,
	}, log)

	return &app{cfg: cfg, log: log, cache: cache, proc: proc}, nil
}

// close releases held resources.
func (a *app) close() {
	if a.cache != nil {
		_ = a.cache.Close()
	}
}

// ensureDirs creates the watch root and library roots up front so a
// misconfigured mount fails at startup rather than mid-delivery.
func (a *app) ensureDirs() error {
	dirs := []string{
		a.cfg.Watch.Root,
		a.cfg.Libraries.Movies.Root,
		a.cfg.Libraries.Series.Root,
	}
	var failed []string
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", dir, err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("create directories: %s", strings.Join(failed, "; "))
	}
	return nil
}
