package cohort

import (
	"fmt"

	"github.com/kuhlman-labs/migration-cohorts/internal/config"
	"github.com/kuhlman-labs/migration-cohorts/internal/models"
)

// Classify assigns a cohort to a record whose weight has already been computed.
func Classify(record models.RepositoryRecord, weight int, cfg config.CohortsConfig) models.CohortAssignment {
	p := DetectPresence(record)
	_, breakdown := Weigh(p, cfg)
	return assign(record, p, weight, breakdown, cfg)
}

func assign(record models.RepositoryRecord, p Presence, weight int, breakdown map[models.Category]int, cfg config.CohortsConfig) models.CohortAssignment {
	cohort := Decide(p, weight, cfg)
	reasons := p.Reasons()

	return models.CohortAssignment{
		Enterprise:   record.Enterprise(),
		Organization: record.Organization(),
		Repository:   record.Repository(),
		Cohort:       cohort,
		Weight:       weight,
		Reasons:      reasons,
		Summary:      Summary(cohort, len(reasons), weight),
		Breakdown:    breakdown,
	}
}

// Decide walks the cohort decision list top to bottom; the first match wins.
// Categorical cohorts overlap, so the order here is what resolves a repository that
// is, say, both archived and using macOS runners.
func Decide(p Presence, weight int, cfg config.CohortsConfig) models.Cohort {
	f := cfg.Features

	switch {
	case f.Unmigratable && p.Has(models.CategoryUnmigratable):
		return models.CohortUnmigratable
	case p.Has(models.CategoryArchived):
		return models.CohortArchived
	case f.MacOSRunners && p.Has(models.CategoryMacOSRunners):
		return models.CohortMacOSRunners
	case f.MavenPackages && p.Has(models.CategoryMavenPackages):
		return models.CohortMavenPackages
	case f.Codespaces && p.Has(models.CategoryCodespaces):
		return models.CohortCodespaces
	}

	return Tier(weight, cfg.Thresholds)
}

// Tier maps a weight onto the complexity cohorts using inclusive upper bounds.
func Tier(weight int, t config.ThresholdsConfig) models.Cohort {
	if weight <= t.CleanMax {
		return models.CohortClean
	}
	if weight <= t.LowMax {
		return models.CohortLowComplexity
	}
	if weight <= t.MediumMax {
		return models.CohortMediumComplexity
	}
	return models.CohortHighComplexity
}

// Summary returns the one-line explanation shown next to a cohort.
func Summary(cohort models.Cohort, reasonCount, weight int) string {
	switch cohort {
	case models.CohortUnmigratable:
		return "Repository is flagged as unmigratable and needs a manual migration plan."
	case models.CohortArchived:
		return "Repository is archived; migrate as read-only with minimal validation."
	case models.CohortMacOSRunners:
		return "Repository depends on macOS runners, which need a replacement runner strategy."
	case models.CohortMavenPackages:
		return "Repository publishes Maven packages that must be migrated separately."
	case models.CohortCodespaces:
		return "Repository uses Codespaces, which must be recreated after migration."
	case models.CohortClean:
		return "No significant migration blockers; suitable for bulk migration."
	case models.CohortLowComplexity:
		return fmt.Sprintf("Low complexity: %s with a migration weight of %d.", pluralize(reasonCount, "blocker"), weight)
	case models.CohortMediumComplexity:
		return fmt.Sprintf("Medium complexity: %s with a migration weight of %d; plan follow-up work.", pluralize(reasonCount, "blocker"), weight)
	case models.CohortHighComplexity:
		return fmt.Sprintf("High complexity: %s with a migration weight of %d; schedule a dedicated migration.", pluralize(reasonCount, "blocker"), weight)
	default:
		return fmt.Sprintf("Migration weight: %d", weight)
	}
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
