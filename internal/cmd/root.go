// Package cmd contains all CLI commands for pathfinder.
package cmd

import (
	"fmt"
	"os"

	"github.com/natevvv/graph-search/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Version is the current version of pathfinder
	Version = "0.1.0"

	// Global flags
	debugLevel int
	configPath string

	// cfg is loaded before every command runs
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pathfinder",
	Short: "Shortest paths on implicit and explicit unit cost graphs",
	Long: `pathfinder computes shortest paths with pluggable search strategies.

The finders (bfs, bidirectional-bfs, astar, bidirectional-astar, nba) work on
sliding puzzles as well as on road graphs imported from OpenStreetMap.
The heuristic finders accept a d-ary heap, a bucket queue or a binary heap.

Configuration is read from .pathfinder/config.yaml in the working directory
or one of its parents. Flags override the configured values.

Examples:
  pathfinder solve --degree 3 --steps 40           # Solve a random 8-puzzle
  pathfinder solve --tiles 1,2,3,4,0,5,7,8,6       # Solve the given puzzle
  pathfinder benchmark --runs 20                   # Compare all finders and queues
  pathfinder import roads.osm.pbf -o roads.fmi     # Convert OSM highways to a graph
  pathfinder route --graph roads.fmi --from 48.7,9.1 --to 48.8,9.2
  pathfinder serve --graph roads.fmi               # Start the http api`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		if cmd.Flags().Changed("debug") {
			cfg.Search.DebugLevel = debugLevel
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&debugLevel, "debug", 0, "Debug level (0: quiet, 1: searches, 2: settled nodes, 3: relaxed edges)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: .pathfinder/config.yaml)")
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("working directory: %w", err)
	}
	return config.Load(workDir)
}
