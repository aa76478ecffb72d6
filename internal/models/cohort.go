package models

// CohortAssignment is the classification result for one repository.
// It is computed once per record and not modified afterwards.
type CohortAssignment struct {
	Enterprise   string           `json:"enterprise"`
	Organization string           `json:"organization"`
	Repository   string           `json:"repository"`
	Cohort       Cohort           `json:"cohort"`
	Weight       int              `json:"weight"`
	Reasons      []string         `json:"reasons"`
	Summary      string           `json:"summary"`
	Breakdown    map[Category]int `json:"breakdown,omitempty"`
}

// FullName returns "organization/repository", or just the repository when the organization is unknown.
func (a CohortAssignment) FullName() string {
	if a.Organization == "" {
		return a.Repository
	}
	return a.Organization + "/" + a.Repository
}

// CohortAggregate summarizes all assignments sharing a cohort label.
type CohortAggregate struct {
	Cohort        Cohort  `json:"cohort"`
	Count         int     `json:"count"`
	TotalWeight   int     `json:"total_weight"`
	AverageWeight float64 `json:"average_weight"`
}

// GroupAggregate nests cohort aggregates under a secondary grouping key such as the enterprise.
type GroupAggregate struct {
	Group         string            `json:"group"`
	Count         int               `json:"count"`
	TotalWeight   int               `json:"total_weight"`
	AverageWeight float64           `json:"average_weight"`
	Cohorts       []CohortAggregate `json:"cohorts"`
}

// Totals is the overall count and weight across a set of assignments.
type Totals struct {
	Count         int     `json:"count"`
	TotalWeight   int     `json:"total_weight"`
	AverageWeight float64 `json:"average_weight"`
}
