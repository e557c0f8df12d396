package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

func newHeadlessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Step the world without a window and print a summary",
		Example: `  flock headless --steps 1000
  flock headless --config flock.yaml --steps 500 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := simulation.RunHeadless(ctx, cfg, steps, cfg.NewLogger())
			if err != nil {
				return err
			}
			return printValue(cmd, summary)
		},
	}
	cmd.Flags().Int("steps", 1000, "Number of ticks to run")
	return cmd
}
