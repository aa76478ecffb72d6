package report

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/kuhlman-labs/migration-cohorts/internal/models"
	"github.com/parquet-go/parquet-go"
)

// AssignmentRow is one classified repository in the detail Parquet file.
type AssignmentRow struct {
	RunID        string    `parquet:"run_id,snappy,dict"`
	GeneratedAt  time.Time `parquet:"generated_at,snappy"`
	Enterprise   string    `parquet:"enterprise,snappy,dict"`
	Organization string    `parquet:"organization,snappy,dict"`
	Repository   string    `parquet:"repository,snappy"`
	Cohort       string    `parquet:"cohort,snappy,dict"`
	Weight       int32     `parquet:"weight,snappy"`
	ReasonCount  int32     `parquet:"reason_count,snappy"`
	Reasons      string    `parquet:"reasons,snappy"`
	Summary      string    `parquet:"summary,snappy"`
}

// CohortRow is one cohort aggregate in the summary Parquet file.
type CohortRow struct {
	RunID         string  `parquet:"run_id,snappy,dict"`
	ConfigVersion string  `parquet:"config_version,snappy,dict"`
	Cohort        string  `parquet:"cohort,snappy,dict"`
	Repositories  int32   `parquet:"repositories,snappy"`
	TotalWeight   int64   `parquet:"total_weight,snappy"`
	AverageWeight float64 `parquet:"average_weight,snappy"`
}

// AssignmentRows flattens the report's assignments into Parquet rows.
func AssignmentRows(r *Report) []AssignmentRow {
	rows := make([]AssignmentRow, 0, len(r.Assignments))
	for _, a := range r.Assignments {
		rows = append(rows, AssignmentRow{
			RunID:        r.RunID,
			GeneratedAt:  r.GeneratedAt,
			Enterprise:   a.Enterprise,
			Organization: a.Organization,
			Repository:   a.Repository,
			Cohort:       a.Cohort.String(),
			Weight:       int32(a.Weight),
			ReasonCount:  int32(len(a.Reasons)),
			Reasons:      joinReasons(a.Reasons),
			Summary:      a.Summary,
		})
	}
	return rows
}

// CohortRows flattens the report's cohort aggregates into Parquet rows.
func CohortRows(r *Report) []CohortRow {
	rows := make([]CohortRow, 0, len(r.Cohorts))
	for _, c := range r.Cohorts {
		rows = append(rows, CohortRow{
			RunID:         r.RunID,
			ConfigVersion: r.ConfigVersion,
			Cohort:        c.Cohort.String(),
			Repositories:  int32(c.Count),
			TotalWeight:   int64(c.TotalWeight),
			AverageWeight: c.AverageWeight,
		})
	}
	return rows
}

func writeParquetReports(r *Report, dir string) ([]string, error) {
	summaryPath := filepath.Join(dir, SummaryFileName+".parquet")
	if err := writeFile(summaryPath, func(w io.Writer) error {
		return writeParquet(w, CohortRows(r))
	}); err != nil {
		return nil, err
	}

	detailPath := filepath.Join(dir, DetailFileName+".parquet")
	if err := writeFile(detailPath, func(w io.Writer) error {
		return writeParquet(w, AssignmentRows(r))
	}); err != nil {
		return []string{summaryPath}, err
	}

	return []string{summaryPath, detailPath}, nil
}

// writeParquet writes rows with a schema inferred from the row struct tags.
func writeParquet[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)

	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
