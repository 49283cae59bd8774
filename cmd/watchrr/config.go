package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vmunix/watchrr/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config file and report problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if errs := cfg.Validate(); len(errs) > 0 {
			color.Red("%s has %d problem(s):", configPath, len(errs))
			for _, e := range errs {
				fmt.Printf("  - %s\n", e)
			}
			return fmt.Errorf("invalid configuration")
		}
		color.Green("%s is valid", configPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with defaults applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		fmt.Printf("watch root:         %s\n", cfg.Watch.Root)
		fmt.Printf("backend:            %s\n", cfg.Watch.Backend)
		fmt.Printf("workers:            %d\n", cfg.Watch.Workers)
		fmt.Printf("delete source:      %t\n", cfg.Watch.DeleteSource)
		fmt.Printf("process delay:      %s\n", cfg.Watch.ProcessDelay.Std())
		fmt.Printf("stability interval: %s\n", cfg.Watch.StabilityInterval.Std())
		fmt.Printf("stability timeout:  %s\n", cfg.Watch.StabilityTimeout.Std())
		fmt.Printf("movie library:      %s\n", cfg.Libraries.Movies.Root)
		fmt.Printf("series library:     %s\n", cfg.Libraries.Series.Root)
		fmt.Printf("tvdb confidence:    %d\n", cfg.TVDB.Confidence)
		fmt.Printf("tvdb cache:         %s\n", cfg.TVDB.CachePath)
		fmt.Printf("log level:          %s\n", cfg.Log.Level)
		fmt.Printf("log format:         %s\n", cfg.Log.Format)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
