package cohort

import (
	"testing"

	"github.com/kuhlman-labs/migration-cohorts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignment(enterprise, org string, cohort models.Cohort, weight int) models.CohortAssignment {
	return models.CohortAssignment{
		Enterprise:   enterprise,
		Organization: org,
		Repository:   "repo",
		Cohort:       cohort,
		Weight:       weight,
	}
}

func TestAggregate(t *testing.T) {
	assignments := []models.CohortAssignment{
		assignment("e1", "o1", models.CohortLowComplexity, 5),
		assignment("e1", "o1", models.CohortHighComplexity, 40),
		assignment("e1", "o2", models.CohortLowComplexity, 9),
		assignment("e2", "o3", models.CohortClean, 0),
		assignment("e2", "o3", models.CohortArchived, 30),
		assignment("e2", "o3", models.CohortHighComplexity, 60),
	}

	got := Aggregate(assignments)

	assert.Equal(t, []models.CohortAggregate{
		{Cohort: models.CohortHighComplexity, Count: 2, TotalWeight: 100, AverageWeight: 50},
		{Cohort: models.CohortArchived, Count: 1, TotalWeight: 30, AverageWeight: 30},
		{Cohort: models.CohortLowComplexity, Count: 2, TotalWeight: 14, AverageWeight: 7},
		{Cohort: models.CohortClean, Count: 1, TotalWeight: 0, AverageWeight: 0},
	}, got)
}

func TestAggregate_TotalsPreserved(t *testing.T) {
	var assignments []models.CohortAssignment
	sum := 0
	for i := range 50 {
		c := models.AllCohorts()[i%len(models.AllCohorts())]
		assignments = append(assignments, assignment("", "", c, i))
		sum += i
	}

	count, weight := 0, 0
	for _, a := range Aggregate(assignments) {
		count += a.Count
		weight += a.TotalWeight
	}

	assert.Equal(t, len(assignments), count)
	assert.Equal(t, sum, weight)
}

func TestAggregate_TiesKeepFirstOccurrence(t *testing.T) {
	assignments := []models.CohortAssignment{
		assignment("", "", models.CohortCodespaces, 10),
		assignment("", "", models.CohortMavenPackages, 10),
		assignment("", "", models.CohortArchived, 10),
		assignment("", "", models.CohortCodespaces, 10),
	}

	got := Aggregate(assignments)
	require.Len(t, got, 3)
	assert.Equal(t, models.CohortCodespaces, got[0].Cohort)
	assert.Equal(t, models.CohortMavenPackages, got[1].Cohort)
	assert.Equal(t, models.CohortArchived, got[2].Cohort)

	// Same input, same output
	assert.Equal(t, got, Aggregate(assignments))
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))

	totals := Totals(nil)
	assert.Equal(t, models.Totals{}, totals)
}

func TestComplete(t *testing.T) {
	aggs := Aggregate([]models.CohortAssignment{
		assignment("", "", models.CohortHighComplexity, 40),
	})

	got := Complete(aggs)
	require.Len(t, got, len(models.AllCohorts()))
	assert.Equal(t, models.CohortHighComplexity, got[0].Cohort)

	for _, a := range got[1:] {
		assert.NotEqual(t, models.CohortHighComplexity, a.Cohort)
		assert.Equal(t, 0, a.Count)
		assert.Equal(t, 0, a.TotalWeight)
		assert.Equal(t, 0.0, a.AverageWeight)
	}
	// Missing cohorts follow decision order
	assert.Equal(t, models.CohortUnmigratable, got[1].Cohort)
	assert.Equal(t, models.CohortMediumComplexity, got[len(got)-1].Cohort)
}

func TestAggregateByGroup(t *testing.T) {
	assignments := []models.CohortAssignment{
		assignment("zeta", "o1", models.CohortLowComplexity, 5),
		assignment("", "o2", models.CohortClean, 0),
		assignment("alpha", "o3", models.CohortHighComplexity, 40),
		assignment("zeta", "o1", models.CohortHighComplexity, 31),
		assignment("alpha", "o3", models.CohortHighComplexity, 30),
	}

	got := AggregateByGroup(assignments, ByEnterprise)
	require.Len(t, got, 3)

	assert.Equal(t, "Unknown", got[0].Group)
	assert.Equal(t, "alpha", got[1].Group)
	assert.Equal(t, "zeta", got[2].Group)

	alpha := got[1]
	assert.Equal(t, 2, alpha.Count)
	assert.Equal(t, 70, alpha.TotalWeight)
	assert.Equal(t, 35.0, alpha.AverageWeight)
	assert.Equal(t, []models.CohortAggregate{
		{Cohort: models.CohortHighComplexity, Count: 2, TotalWeight: 70, AverageWeight: 35},
	}, alpha.Cohorts)

	zeta := got[2]
	assert.Equal(t, 18.0, zeta.AverageWeight)
	require.Len(t, zeta.Cohorts, 2)
	assert.Equal(t, models.CohortHighComplexity, zeta.Cohorts[0].Cohort)

	total := 0
	for _, g := range got {
		total += g.Count
	}
	assert.Equal(t, len(assignments), total)
}

func TestKeyFor(t *testing.T) {
	a := assignment("ent", "org", models.CohortClean, 0)

	key, ok := KeyFor("enterprise")
	require.True(t, ok)
	assert.Equal(t, "ent", key(a))

	key, ok = KeyFor("organization")
	require.True(t, ok)
	assert.Equal(t, "org", key(a))

	_, ok = KeyFor("none")
	assert.False(t, ok)
	_, ok = KeyFor("")
	assert.False(t, ok)
}
