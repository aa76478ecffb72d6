package cohort

import (
	"github.com/kuhlman-labs/migration-cohorts/internal/config"
	"github.com/kuhlman-labs/migration-cohorts/internal/models"
)

// ComputeWeight returns the migration weight of a record: the sum of the configured
// weights of every present blocker category. It never fails; malformed fields count
// as absent.
func ComputeWeight(record models.RepositoryRecord, cfg config.CohortsConfig) int {
	weight, _ := Weigh(DetectPresence(record), cfg)
	return weight
}

// Weigh sums the configured weights over the present categories and returns the
// per-category contributions alongside the total.
func Weigh(p Presence, cfg config.CohortsConfig) (int, map[models.Category]int) {
	breakdown := make(map[models.Category]int, p.Len())
	total := 0

	for _, f := range p.Findings() {
		w := cfg.Weight(f.Category)
		breakdown[f.Category] = w
		total += w
	}

	return total, breakdown
}
