package main

import (
	"fmt"
	"io"

	"github.com/kuhlman-labs/migration-cohorts/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newWeightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weights",
		Short: "Print the effective weight table, thresholds and cohort toggles.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			return writeWeights(cmd.OutOrStdout(), cfg.Cohorts)
		},
	}
}

// writeWeights dumps the validated cohort configuration as YAML.
func writeWeights(w io.Writer, cohorts config.CohortsConfig) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cohorts); err != nil {
		return fmt.Errorf("failed to encode weights: %w", err)
	}
	return enc.Close()
}
