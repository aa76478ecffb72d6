package cohort

import (
	"testing"

	"github.com/kuhlman-labs/migration-cohorts/internal/config"
	"github.com/kuhlman-labs/migration-cohorts/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeWeight(t *testing.T) {
	cfg := testCohortsConfig(map[models.Category]int{
		models.CategoryAppInstallations: 10,
		models.CategorySecrets:          5,
		models.CategoryProjects:         4,
		models.CategoryArchived:         1,
	})

	tests := []struct {
		name     string
		record   models.RepositoryRecord
		expected int
	}{
		{
			name:     "empty record",
			record:   models.RepositoryRecord{},
			expected: 0,
		},
		{
			name:     "single category",
			record:   models.RepositoryRecord{models.FieldAppInstallations: "2"},
			expected: 10,
		},
		{
			name:     "count does not scale weight",
			record:   models.RepositoryRecord{models.FieldAppInstallations: "200"},
			expected: 10,
		},
		{
			name: "several categories",
			record: models.RepositoryRecord{
				models.FieldAppInstallations: "1",
				models.FieldSecrets:          "3",
				models.FieldArchived:         "true",
			},
			expected: 16,
		},
		{
			name: "projects counted once",
			record: models.RepositoryRecord{
				models.FieldIssuesLinkedToProjects: "5",
				models.FieldProjectsLinkedToRepo:   "2",
			},
			expected: 4,
		},
		{
			name: "malformed fields are absent",
			record: models.RepositoryRecord{
				models.FieldAppInstallations: "lots",
				models.FieldSecrets:          "-4",
				models.FieldArchived:         "maybe",
			},
			expected: 0,
		},
		{
			name:     "zero-weight category present",
			record:   models.RepositoryRecord{models.FieldWebhooks: "9"},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeWeight(tt.record, cfg))
		})
	}
}

func TestComputeWeight_AllCategoriesDefaultConfig(t *testing.T) {
	cfg := config.DefaultCohortsConfig()

	expected := 0
	for _, w := range cfg.Weights {
		expected += w
	}

	assert.Equal(t, expected, ComputeWeight(fullRecord(), cfg))
}

func TestComputeWeight_Deterministic(t *testing.T) {
	cfg := config.DefaultCohortsConfig()
	rec := fullRecord()

	first := ComputeWeight(rec, cfg)
	for range 20 {
		assert.Equal(t, first, ComputeWeight(rec, cfg))
	}
	assert.GreaterOrEqual(t, first, 0)
}

func TestWeighBreakdown(t *testing.T) {
	cfg := testCohortsConfig(map[models.Category]int{
		models.CategoryLFSObjects: 7,
		models.CategoryWebhooks:   2,
	})

	p := DetectPresence(models.RepositoryRecord{
		models.FieldLFSObjects: "12",
		models.FieldWebhooks:   "1",
		models.FieldDeployKeys: "1",
	})
	total, breakdown := Weigh(p, cfg)

	assert.Equal(t, 9, total)
	assert.Equal(t, map[models.Category]int{
		models.CategoryLFSObjects: 7,
		models.CategoryWebhooks:   2,
		models.CategoryDeployKeys: 0,
	}, breakdown)
}
