package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/kuhlman-labs/migration-cohorts/internal/cohort"
	"github.com/kuhlman-labs/migration-cohorts/internal/config"
	"github.com/kuhlman-labs/migration-cohorts/internal/ingest"
	"github.com/kuhlman-labs/migration-cohorts/internal/logging"
	"github.com/kuhlman-labs/migration-cohorts/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type classifyFlags struct {
	verbose bool
	quiet   bool
}

func newClassifyCmd() *cobra.Command {
	var flags classifyFlags

	cmd := &cobra.Command{
		Use:   "classify [inventory.csv]",
		Short: "Classify every repository in a CSV inventory and write cohort reports.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Input.Path = args[0]
			}
			return runClassify(cmd.Context(), cfg, flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.String("format", "", "output format: text, csv, json, or parquet")
	f.String("output-dir", "", "directory for report files (default: console)")
	f.String("group-by", "", "secondary grouping: enterprise, organization, or none")
	f.Bool("detail", false, "include per-repository rows in text output")
	f.Int("workers", 0, "parallel classification workers (default: number of CPUs)")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "only log errors")

	_ = viper.BindPFlag("output.format", f.Lookup("format"))
	_ = viper.BindPFlag("output.dir", f.Lookup("output-dir"))
	_ = viper.BindPFlag("output.group_by", f.Lookup("group-by"))
	_ = viper.BindPFlag("output.detail", f.Lookup("detail"))
	_ = viper.BindPFlag("workers", f.Lookup("workers"))

	return cmd
}

// runClassify ingests the inventory, classifies it and writes the reports.
// Ingestion failures abort before the engine runs.
func runClassify(ctx context.Context, cfg *config.Config, flags classifyFlags, stdout, stderr io.Writer) error {
	if cfg.Input.Path == "" {
		return errors.New("no inventory given: pass a CSV path or set input.path")
	}

	runID := uuid.NewString()
	logger, levels := logging.NewLogger(cfg.Logging, stderr)
	switch {
	case flags.quiet:
		levels.SetQuiet()
	case flags.verbose:
		levels.SetDebugEnabled(true)
	}
	logger = logger.With("run_id", runID)

	started := time.Now()
	records, err := ingest.LoadFile(cfg.Input.Path)
	if err != nil {
		logger.Error("Failed to load inventory", "path", cfg.Input.Path, "error", err)
		return err
	}
	logger.Info("Loaded inventory", "path", cfg.Input.Path, "records", len(records))

	engine, err := cohort.NewEngine(cohort.EngineConfig{
		Cohorts:       cfg.Cohorts,
		Logger:        logger,
		Workers:       cfg.Workers,
		ProgressEvery: cfg.Output.ProgressEvery,
	})
	if err != nil {
		return err
	}

	assignments, err := engine.ClassifyAll(ctx, records)
	if err != nil {
		return err
	}

	rep := report.Build(runID, cfg.Cohorts.Version, cfg.Output.GroupBy, assignments, time.Now())
	for _, c := range rep.Cohorts {
		logger.Debug("Cohort summary",
			"cohort", c.Cohort,
			"repositories", c.Count,
			"average_weight", c.AverageWeight)
	}

	paths, err := report.Write(rep, report.Options{
		Format: cfg.Output.Format,
		Dir:    cfg.Output.Dir,
		Detail: cfg.Output.Detail,
	}, stdout)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	for _, p := range paths {
		logger.Info("Wrote report", "path", p)
	}

	logger.Info("Run complete",
		"repositories", rep.Totals.Count,
		"cohorts", len(rep.Cohorts),
		"duration", time.Since(started).Round(time.Millisecond))
	return nil
}
