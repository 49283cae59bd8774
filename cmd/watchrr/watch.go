package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vmunix/watchrr/internal/daemon"
	"github.com/vmunix/watchrr/internal/stability"
	"github.com/vmunix/watchrr/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the watcher daemon",
	Long: `Watch the drop directory for new media and file it into the
libraries as it arrives. Runs until interrupted; in-flight copies are
allowed to finish on shutdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch() error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.ensureDirs(); err != nil {
		return err
	}

	wcfg := a.cfg.Watch

	var backend watcher.Backend
	switch wcfg.Backend {
	case "fsnotify":
		backend = watcher.NewNotifyBackend(wcfg.Root, a.log)
	default:
		backend = watcher.NewPollBackend(wcfg.Root, wcfg.PollInterval.Std(), a.log)
	}

	queue := watcher.NewQueue()
	debouncer := watcher.NewDebouncer(wcfg.Root, wcfg.ProcessDelay.Std(), queue, a.log)
	detector := stability.NewDetector(wcfg.StabilityInterval.Std(), wcfg.StabilityTimeout.Std(), a.log)

	runner := daemon.New(backend, debouncer, queue, detector, a.proc, wcfg.Workers, a.log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.log.Info("watchrr starting",
		"version", version,
		"watch_root", wcfg.Root,
		"backend", wcfg.Backend,
		"workers", wcfg.Workers)

	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("daemon: %w", err)
	}
	a.log.Info("watchrr stopped")
	return nil
}
