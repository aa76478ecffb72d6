package cohort

import (
	"sort"

	"github.com/kuhlman-labs/migration-cohorts/internal/config"
	"github.com/kuhlman-labs/migration-cohorts/internal/models"
)

// KeyFunc extracts the secondary grouping key from an assignment.
type KeyFunc func(models.CohortAssignment) string

// ByEnterprise groups assignments by enterprise name.
func ByEnterprise(a models.CohortAssignment) string { return a.Enterprise }

// ByOrganization groups assignments by organization name.
func ByOrganization(a models.CohortAssignment) string { return a.Organization }

// KeyFor resolves an output.group_by value. It returns false for "none" and unknown values.
func KeyFor(groupBy string) (KeyFunc, bool) {
	switch groupBy {
	case config.GroupByEnterprise:
		return ByEnterprise, true
	case config.GroupByOrganization:
		return ByOrganization, true
	default:
		return nil, false
	}
}

// Totals summarizes every assignment regardless of cohort.
func Totals(assignments []models.CohortAssignment) models.Totals {
	total := 0
	for _, a := range assignments {
		total += a.Weight
	}
	return models.Totals{
		Count:         len(assignments),
		TotalWeight:   total,
		AverageWeight: average(total, len(assignments)),
	}
}

// Aggregate partitions assignments by cohort and returns per-cohort count, weight sum
// and mean, sorted by mean weight descending. Ties keep the order in which each cohort
// first appears in the input.
func Aggregate(assignments []models.CohortAssignment) []models.CohortAggregate {
	index := make(map[models.Cohort]int)
	var result []models.CohortAggregate

	for _, a := range assignments {
		i, ok := index[a.Cohort]
		if !ok {
			i = len(result)
			index[a.Cohort] = i
			result = append(result, models.CohortAggregate{Cohort: a.Cohort})
		}
		result[i].Count++
		result[i].TotalWeight += a.Weight
	}

	for i := range result {
		result[i].AverageWeight = average(result[i].TotalWeight, result[i].Count)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AverageWeight > result[j].AverageWeight
	})

	return result
}

// Complete appends an empty aggregate for every cohort missing from aggs, in
// decision order, so summaries always list the full label set.
func Complete(aggs []models.CohortAggregate) []models.CohortAggregate {
	seen := make(map[models.Cohort]bool, len(aggs))
	result := make([]models.CohortAggregate, 0, len(models.AllCohorts()))
	for _, a := range aggs {
		seen[a.Cohort] = true
		result = append(result, a)
	}
	for _, c := range models.AllCohorts() {
		if !seen[c] {
			result = append(result, models.CohortAggregate{Cohort: c, AverageWeight: average(0, 0)})
		}
	}
	return result
}

// AggregateByGroup nests cohort aggregation inside each group produced by key.
// Empty keys fall into models.UnknownGroup. Groups are sorted by key.
func AggregateByGroup(assignments []models.CohortAssignment, key KeyFunc) []models.GroupAggregate {
	grouped := make(map[string][]models.CohortAssignment)
	for _, a := range assignments {
		k := key(a)
		if k == "" {
			k = models.UnknownGroup
		}
		grouped[k] = append(grouped[k], a)
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]models.GroupAggregate, 0, len(keys))
	for _, k := range keys {
		members := grouped[k]
		totals := Totals(members)
		result = append(result, models.GroupAggregate{
			Group:         k,
			Count:         totals.Count,
			TotalWeight:   totals.TotalWeight,
			AverageWeight: totals.AverageWeight,
			Cohorts:       Aggregate(members),
		})
	}

	return result
}

func average(total, count int) float64 {
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}
