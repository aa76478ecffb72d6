package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/kuhlman-labs/migration-cohorts/internal/cohort"
	"github.com/kuhlman-labs/migration-cohorts/internal/models"
)

var (
	summaryHeader = []string{"cohort", "repositories", "total_weight", "average_weight"}
	groupsHeader  = []string{"group", "cohort", "repositories", "total_weight", "average_weight"}
	detailHeader  = []string{"enterprise", "organization", "repository", "cohort", "weight", "reason_count", "reasons", "summary"}
)

// writeCSVReports writes summary, group and detail CSV files to dir. Without a dir
// only the cohort summary is written to the console writer.
func writeCSVReports(r *Report, dir string, console io.Writer) ([]string, error) {
	if dir == "" {
		return nil, writeSummaryCSV(console, r)
	}

	var paths []string
	files := []struct {
		name  string
		write func(io.Writer) error
		skip  bool
	}{
		{SummaryFileName + ".csv", func(w io.Writer) error { return writeSummaryCSV(w, r) }, false},
		{GroupsFileName + ".csv", func(w io.Writer) error { return writeGroupsCSV(w, r.Groups) }, len(r.Groups) == 0},
		{DetailFileName + ".csv", func(w io.Writer) error { return writeDetailCSV(w, r.Assignments) }, false},
	}

	for _, f := range files {
		if f.skip {
			continue
		}
		path := filepath.Join(dir, f.name)
		if err := writeFile(path, f.write); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// writeSummaryCSV lists every cohort, including empty ones, so runs line up in spreadsheets.
func writeSummaryCSV(w io.Writer, r *Report) error {
	return writeCSVWithHeader(w, summaryHeader, func(cw *csv.Writer) error {
		for _, c := range cohort.Complete(r.Cohorts) {
			if err := cw.Write(aggregateRow(c)); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeGroupsCSV(w io.Writer, groups []models.GroupAggregate) error {
	return writeCSVWithHeader(w, groupsHeader, func(cw *csv.Writer) error {
		for _, g := range groups {
			if err := cw.Write([]string{
				g.Group, "ALL", strconv.Itoa(g.Count), strconv.Itoa(g.TotalWeight), formatFloat(g.AverageWeight),
			}); err != nil {
				return err
			}
			for _, c := range g.Cohorts {
				if err := cw.Write(append([]string{g.Group}, aggregateRow(c)...)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func writeDetailCSV(w io.Writer, assignments []models.CohortAssignment) error {
	return writeCSVWithHeader(w, detailHeader, func(cw *csv.Writer) error {
		for _, a := range assignments {
			if err := cw.Write([]string{
				a.Enterprise,
				a.Organization,
				a.Repository,
				a.Cohort.String(),
				strconv.Itoa(a.Weight),
				strconv.Itoa(len(a.Reasons)),
				joinReasons(a.Reasons),
				a.Summary,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

func aggregateRow(c models.CohortAggregate) []string {
	return []string{c.Cohort.String(), strconv.Itoa(c.Count), strconv.Itoa(c.TotalWeight), formatFloat(c.AverageWeight)}
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
