package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

// loadConfig reads --config (defaults when empty) and applies --log-level.
func loadConfig(cmd *cobra.Command) (*simulation.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")

	cfg := simulation.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = simulation.LoadConfig(path); err != nil {
			return nil, err
		}
	}
	if level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the config file and flags are applied.

The output is YAML unless --json is set, and can be saved and passed back
with --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return printValue(cmd, cfg)
		},
	}
}

// printValue writes v as JSON when --json is set, YAML otherwise.
func printValue(cmd *cobra.Command, v any) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
