package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flock",
		Short: "Boids flocking simulation",
		Long: `flock runs a Reynolds style boids simulation on a wrapping 2D world.

Agents steer by separation, alignment and cohesion with the neighbors
found inside a fixed radius. The world can be watched in a window or
stepped headless for a fixed number of ticks.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Config file (.json, .yaml, .yml or .toml)")
	rootCmd.PersistentFlags().String("log-level", "", "Override the config log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newHeadlessCmd(),
		newConfigCmd(),
	)
	return rootCmd
}
