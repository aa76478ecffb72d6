// Package report renders classification results as text tables, CSV, JSON or Parquet.
// It only consumes engine output; nothing here feeds back into classification.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kuhlman-labs/migration-cohorts/internal/cohort"
	"github.com/kuhlman-labs/migration-cohorts/internal/config"
	"github.com/kuhlman-labs/migration-cohorts/internal/models"
)

// Report is everything a renderer needs for one classification run.
type Report struct {
	RunID         string                    `json:"run_id"`
	ConfigVersion string                    `json:"config_version"`
	GeneratedAt   time.Time                 `json:"generated_at"`
	GroupBy       string                    `json:"group_by,omitempty"`
	Totals        models.Totals             `json:"totals"`
	Cohorts       []models.CohortAggregate  `json:"cohorts"`
	Groups        []models.GroupAggregate   `json:"groups,omitempty"`
	Assignments   []models.CohortAssignment `json:"assignments"`
}

// Build aggregates assignments into a report. groupBy selects the secondary grouping;
// "none" or an empty value skips it.
func Build(runID, configVersion, groupBy string, assignments []models.CohortAssignment, generatedAt time.Time) *Report {
	r := &Report{
		RunID:         runID,
		ConfigVersion: configVersion,
		GeneratedAt:   generatedAt.UTC(),
		Totals:        cohort.Totals(assignments),
		Cohorts:       cohort.Aggregate(assignments),
		Assignments:   assignments,
	}
	if key, ok := cohort.KeyFor(groupBy); ok {
		r.GroupBy = groupBy
		r.Groups = cohort.AggregateByGroup(assignments, key)
	}
	return r
}

// Options selects the output format and destination.
type Options struct {
	Format string
	// Dir receives report files; empty writes a single report to the console writer
	Dir string
	// Detail adds per-repository rows to text output
	Detail bool
}

// Output file names inside Options.Dir
const (
	SummaryFileName = "cohort_summary"
	GroupsFileName  = "group_summary"
	DetailFileName  = "repository_detail"
	TextFileName    = "cohorts.txt"
	JSONFileName    = "cohorts.json"
)

// Write renders the report and returns the paths of any files it created.
func Write(r *Report, opts Options, console io.Writer) ([]string, error) {
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	switch opts.Format {
	case config.FormatJSON:
		return writeTo(opts.Dir, JSONFileName, console, func(w io.Writer) error {
			return writeJSON(w, r)
		})
	case config.FormatCSV:
		return writeCSVReports(r, opts.Dir, console)
	case config.FormatParquet:
		if opts.Dir == "" {
			return nil, fmt.Errorf("parquet output requires an output directory")
		}
		return writeParquetReports(r, opts.Dir)
	case config.FormatText, "":
		return writeTo(opts.Dir, TextFileName, console, func(w io.Writer) error {
			return writeText(w, r, opts.Detail)
		})
	default:
		return nil, fmt.Errorf("unsupported output format %q", opts.Format)
	}
}

// writeTo writes to dir/name, or to the console writer when dir is empty.
func writeTo(dir, name string, console io.Writer, write func(io.Writer) error) ([]string, error) {
	if dir == "" {
		return nil, write(console)
	}

	path := filepath.Join(dir, name)
	if err := writeFile(path, write); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// writeFile handles creating, writing and closing a report file.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func joinReasons(reasons []string) string {
	return strings.Join(reasons, "; ")
}

func share(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return strconv.FormatFloat(float64(count)*100/float64(total), 'f', 1, 64) + "%"
}
