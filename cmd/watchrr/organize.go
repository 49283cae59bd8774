package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vmunix/watchrr/internal/stability"
)

var organizeCmd = &cobra.Command{
	Use:   "organize <path>...",
	Short: "Process files or bundles immediately",
	Long: `Process one or more files or bundle directories right now,
without watching or debouncing. Useful for content that was already in
place before the daemon started.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOrganize(args)
	},
}

func init() {
	rootCmd.AddCommand(organizeCmd)
}

func runOrganize(paths []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	detector := stability.NewDetector(
		a.cfg.Watch.StabilityInterval.Std(),
		a.cfg.Watch.StabilityTimeout.Std(),
		a.log)

	var failures int
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			a.log.Error("bad path", "path", path, "error", err)
			failures++
			continue
		}
		if _, err := os.Stat(abs); err != nil {
			a.log.Error("path does not exist", "path", abs)
			failures++
			continue
		}

		stable, err := detector.Wait(ctx, abs)
		if err != nil {
			a.log.Error("stability check failed", "path", abs, "error", err)
			failures++
			continue
		}
		if !stable {
			a.log.Error("path never stabilized", "path", abs)
			failures++
			continue
		}

		if err := a.proc.Process(ctx, abs); err != nil {
			a.log.Error("processing failed", "path", abs, "error", err)
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d items failed", failures, len(paths))
	}
	return nil
}
