package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				_ = printValue(cmd, map[string]string{
					"version": version,
					"commit":  commit,
					"date":    date,
				})
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "flock version %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
