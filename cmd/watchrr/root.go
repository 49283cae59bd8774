package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "watchrr",
	Short: "Filesystem media watcher and library organizer",
	Long: `watchrr - filesystem media watcher and library organizer

Watches a drop directory for finished downloads, identifies them
against TVDB, and files them into Plex-style movie and TV libraries
with edition and quality versioning.

Run 'watchrr watch' to start the daemon.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "watchrr.toml", "Path to config file")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("watchrr {{.Version}}\n")
}
