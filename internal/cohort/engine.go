package cohort

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"

	"github.com/kuhlman-labs/migration-cohorts/internal/config"
	"github.com/kuhlman-labs/migration-cohorts/internal/models"
	"golang.org/x/sync/errgroup"
)

// Engine classifies repository records with a fixed, validated weight configuration.
type Engine struct {
	cohorts       config.CohortsConfig
	logger        *slog.Logger
	workers       int
	progressEvery int
}

// EngineConfig holds configuration for the cohort engine
type EngineConfig struct {
	Cohorts config.CohortsConfig
	Logger  *slog.Logger
	// Workers bounds parallel classification; 0 uses GOMAXPROCS
	Workers int
	// ProgressEvery logs progress every N records; 0 disables progress logging
	ProgressEvery int
}

// NewEngine validates the weight configuration and creates an engine.
// Configuration problems surface here, before any record is processed.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if err := cfg.Cohorts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cohort configuration: %w", err)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Engine{
		cohorts:       cfg.Cohorts,
		logger:        cfg.Logger,
		workers:       workers,
		progressEvery: cfg.ProgressEvery,
	}, nil
}

// Config returns the weight configuration the engine was built with.
func (e *Engine) Config() config.CohortsConfig {
	return e.cohorts
}

// Evaluate weighs and classifies a single record, detecting blocker presence once.
func (e *Engine) Evaluate(record models.RepositoryRecord) models.CohortAssignment {
	p := DetectPresence(record)
	weight, breakdown := Weigh(p, e.cohorts)
	return assign(record, p, weight, breakdown, e.cohorts)
}

// ClassifyAll evaluates every record in parallel. The result has the same order as
// records, so aggregation over it is deterministic.
func (e *Engine) ClassifyAll(ctx context.Context, records []models.RepositoryRecord) ([]models.CohortAssignment, error) {
	results := make([]models.CohortAssignment, len(records))
	total := len(records)
	var done atomic.Int64

	e.logger.Info("Classifying repositories",
		"records", total,
		"workers", e.workers,
		"config_version", e.cohorts.Version)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := range records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.Evaluate(records[i])

			n := done.Add(1)
			if e.progressEvery > 0 && n%int64(e.progressEvery) == 0 {
				e.logger.Debug("Classification progress",
					"processed", n,
					"total", total)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("classification aborted: %w", err)
	}
	// The loop may have stopped early without any worker observing the cancellation
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("classification aborted: %w", err)
	}

	e.logger.Info("Classification complete", "records", total)
	return results, nil
}
