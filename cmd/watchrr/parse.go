package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/watchrr/pkg/medianame"
)

var parseCmd = &cobra.Command{
	Use:   "parse <filename>",
	Short: "Parse a media filename locally",
	Long: `Show how a filename is interpreted: title, year, season and
episode, edition tag, version label and quality score. Purely local, no
config or network needed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		parsed := medianame.Parse(name)

		fmt.Printf("title:    %s\n", parsed.Title)
		if parsed.Year > 0 {
			fmt.Printf("year:     %d\n", parsed.Year)
		}
		if parsed.HasEpisode() {
			fmt.Printf("season:   %d\n", parsed.Season)
			fmt.Printf("episode:  %d", parsed.StartEpisode)
			if parsed.EndEpisode > 0 {
				fmt.Printf("-%d", parsed.EndEpisode)
			}
			fmt.Println()
		} else if parsed.Season > 0 {
			fmt.Printf("season:   %d\n", parsed.Season)
		}

		if edition := medianame.EditionOf(name); edition != medianame.EditionNone {
			fmt.Printf("edition:  %s\n", edition.String())
		}
		if version := medianame.VersionString(name); version != "" {
			fmt.Printf("version:  %s\n", version)
		}
		fmt.Printf("score:    %d\n", medianame.ScoreName(name)+medianame.SourceBonus(name))
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
