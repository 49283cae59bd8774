// Package daemon wires the watch backend, debouncer, queue, stability
// detector and processor into the long-running service.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/watchrr/internal/stability"
	"github.com/vmunix/watchrr/internal/watcher"
)

// ItemProcessor handles one settled watch item.
type ItemProcessor interface {
	Process(ctx context.Context, path string) error
}

// Runner owns the daemon's goroutines: the watch backend, the event pump
// feeding the debouncer, and N workers draining the queue.
type Runner struct {
	backend   watcher.Backend
	debouncer *watcher.Debouncer
	queue     *watcher.Queue
	detector  *stability.Detector
	processor ItemProcessor
	workers   int
	log       *slog.Logger
}

// New assembles a runner. workers below 1 is clamped to 1.
func New(
	backend watcher.Backend,
	debouncer *watcher.Debouncer,
	queue *watcher.Queue,
	detector *stability.Detector,
	processor ItemProcessor,
	workers int,
	log *slog.Logger,
) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		backend:   backend,
		debouncer: debouncer,
		queue:     queue,
		detector:  detector,
		processor: processor,
		workers:   workers,
		log:       log.With("component", "daemon"),
	}
}

// Run blocks until ctx is cancelled and all in-flight work finishes.
// Shutdown is ordered: the backend stops producing, the pump stops the
// debouncer and closes the queue, and workers drain what remains before
// exiting. In-flight copies are never aborted mid-write.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := r.backend.Run(ctx); err != nil {
			return fmt.Errorf("watch backend: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		r.pump()
		return nil
	})

	for i := 0; i < r.workers; i++ {
		id := i
		g.Go(func() error {
			r.worker(id)
			return nil
		})
	}

	return g.Wait()
}

// pump forwards backend events to the debouncer until the backend stops,
// then shuts down the intake side.
func (r *Runner) pump() {
	defer func() {
		r.debouncer.Stop()
		r.queue.Close()
	}()

	for ev := range r.backend.Events() {
		r.debouncer.OnEvent(ev.Path)
	}
}

// worker drains the queue. Items are processed with a background context
// so cancellation never interrupts a copy in progress; the closed queue
// is the shutdown signal. A panic from one item is logged and must never
// take down the worker.
func (r *Runner) worker(id int) {
	log := r.log.With("worker", id)
	for {
		key, ok := r.queue.Pop(context.Background())
		if !ok {
			log.Debug("worker exiting")
			return
		}
		r.processItem(log, key)
	}
}

func (r *Runner) processItem(log *slog.Logger, key string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("panic while processing item",
				"item", key,
				"panic", rec,
				"stack", string(debug.Stack()))
		}
	}()

	stable, err := r.detector.Wait(context.Background(), key)
	if err != nil {
		log.Error("stability check failed", "item", key, "error", err)
		return
	}
	if !stable {
		log.Warn("item never stabilized, abandoning for this cycle", "item", key)
		return
	}

	if err := r.processor.Process(context.Background(), key); err != nil {
		log.Error("processing failed", "item", key, "error", err)
	}
}
