package main

import (
	"github.com/spf13/cobra"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open a window and watch the flock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return simulation.RunGame(cmd.Context(), cfg, cfg.NewLogger())
		},
	}
}
