package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/kuhlman-labs/migration-cohorts/internal/models"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Color variables for console output.
var (
	highColor        = color.New(color.FgRed, color.Bold)
	mediumColor      = color.New(color.FgYellow)
	lowColor         = color.New(color.FgCyan)
	cleanColor       = color.New(color.FgGreen)
	categoricalColor = color.New(color.FgMagenta, color.Bold)
)

// CohortLabel returns a colored cohort label for table output.
func CohortLabel(c models.Cohort) string {
	switch {
	case c.IsCategorical():
		return categoricalColor.Sprint(c)
	case c == models.CohortHighComplexity:
		return highColor.Sprint(c)
	case c == models.CohortMediumComplexity:
		return mediumColor.Sprint(c)
	case c == models.CohortLowComplexity:
		return lowColor.Sprint(c)
	case c == models.CohortClean:
		return cleanColor.Sprint(c)
	default:
		return c.String()
	}
}

func writeText(w io.Writer, r *Report, detail bool) error {
	if _, err := fmt.Fprintf(w, "Migration cohorts (run %s, weights %s)\n\n", r.RunID, r.ConfigVersion); err != nil {
		return err
	}

	if err := writeCohortTable(w, r); err != nil {
		return err
	}

	if len(r.Groups) > 0 {
		if _, err := fmt.Fprintf(w, "\nBy %s\n", r.GroupBy); err != nil {
			return err
		}
		if err := writeGroupTable(w, r.Groups); err != nil {
			return err
		}
	}

	if detail {
		if _, err := fmt.Fprintln(w, "\nRepositories"); err != nil {
			return err
		}
		if err := writeDetailTable(w, r.Assignments); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\n%d repositories, total weight %d, average weight %s\n",
		r.Totals.Count, r.Totals.TotalWeight, formatFloat(r.Totals.AverageWeight))
	return err
}

func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	return table
}

func render(table *tablewriter.Table, data [][]string) error {
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeCohortTable(w io.Writer, r *Report) error {
	table := newTable(w, []string{"Cohort", "Repositories", "Share", "Total Weight", "Avg Weight"})

	data := make([][]string, 0, len(r.Cohorts))
	for _, c := range r.Cohorts {
		data = append(data, []string{
			CohortLabel(c.Cohort),
			strconv.Itoa(c.Count),
			share(c.Count, r.Totals.Count),
			strconv.Itoa(c.TotalWeight),
			formatFloat(c.AverageWeight),
		})
	}
	return render(table, data)
}

func writeGroupTable(w io.Writer, groups []models.GroupAggregate) error {
	table := newTable(w, []string{"Group", "Cohort", "Repositories", "Total Weight", "Avg Weight"})

	var data [][]string
	for _, g := range groups {
		data = append(data, []string{
			g.Group,
			"ALL",
			strconv.Itoa(g.Count),
			strconv.Itoa(g.TotalWeight),
			formatFloat(g.AverageWeight),
		})
		for _, c := range g.Cohorts {
			data = append(data, []string{
				"",
				CohortLabel(c.Cohort),
				strconv.Itoa(c.Count),
				strconv.Itoa(c.TotalWeight),
				formatFloat(c.AverageWeight),
			})
		}
	}
	return render(table, data)
}

func writeDetailTable(w io.Writer, assignments []models.CohortAssignment) error {
	table := newTable(w, []string{"Repository", "Cohort", "Weight", "Reasons"})

	data := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		data = append(data, []string{
			a.FullName(),
			CohortLabel(a.Cohort),
			strconv.Itoa(a.Weight),
			joinReasons(a.Reasons),
		})
	}
	return render(table, data)
}
