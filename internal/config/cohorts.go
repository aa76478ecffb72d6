package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kuhlman-labs/migration-cohorts/internal/models"
)

// CohortsConfig is the weight configuration consumed by the classification engine.
// It is loaded once at startup and never mutated afterwards.
type CohortsConfig struct {
	Version    string           `mapstructure:"version" yaml:"version"`
	Weights    map[string]int   `mapstructure:"weights" yaml:"weights"`
	Thresholds ThresholdsConfig `mapstructure:"thresholds" yaml:"thresholds"`
	Features   FeaturesConfig   `mapstructure:"features" yaml:"features"`
}

// ThresholdsConfig holds the inclusive upper bounds of the weight tiers.
// Weights above MediumMax are high complexity.
type ThresholdsConfig struct {
	CleanMax  int `mapstructure:"clean_max" yaml:"clean_max"`
	LowMax    int `mapstructure:"low_max" yaml:"low_max"`
	MediumMax int `mapstructure:"medium_max" yaml:"medium_max"`
}

// FeaturesConfig toggles the optional categorical cohorts. Archived is always on.
type FeaturesConfig struct {
	Unmigratable  bool `mapstructure:"unmigratable" yaml:"unmigratable"`
	MacOSRunners  bool `mapstructure:"macos_runners" yaml:"macos_runners"`
	MavenPackages bool `mapstructure:"maven_packages" yaml:"maven_packages"`
	Codespaces    bool `mapstructure:"codespaces" yaml:"codespaces"`
}

// DefaultCohortsConfig returns the stock weight table with every cohort toggle enabled.
func DefaultCohortsConfig() CohortsConfig {
	return CohortsConfig{
		Version: "v3",
		Weights: map[string]int{
			string(models.CategoryAppInstallations):      10,
			string(models.CategoryLFSObjects):            10,
			string(models.CategoryPackages):              15,
			string(models.CategoryProjects):              5,
			string(models.CategoryCustomProperties):      2,
			string(models.CategoryRulesets):              3,
			string(models.CategorySecrets):               5,
			string(models.CategoryEnvironments):          5,
			string(models.CategorySelfHostedRunners):     10,
			string(models.CategoryWebhooks):              3,
			string(models.CategoryDiscussions):           5,
			string(models.CategoryDeployKeys):            3,
			string(models.CategoryPagesCustomDomain):     5,
			string(models.CategoryLargeReleases):         10,
			string(models.CategoryArchived):              0,
			string(models.CategoryExternalCollaborators): 3,
			string(models.CategoryUnmigratable):          30,
			string(models.CategoryMavenPackages):         20,
			string(models.CategoryCodespaces):            10,
			string(models.CategoryMacOSRunners):          20,
		},
		Thresholds: ThresholdsConfig{
			CleanMax:  0,
			LowMax:    10,
			MediumMax: 25,
		},
		Features: FeaturesConfig{
			Unmigratable:  true,
			MacOSRunners:  true,
			MavenPackages: true,
			Codespaces:    true,
		},
	}
}

// Validate fails when a category has no weight, an unknown category is configured,
// a weight is negative, or the thresholds are not ascending.
func (c CohortsConfig) Validate() error {
	var errs []error

	for _, name := range categoryNames() {
		if _, ok := c.Weights[name]; !ok {
			errs = append(errs, fmt.Errorf("cohorts.weights: missing weight for category %q", name))
		}
	}

	// Sorted so the error text is stable
	keys := make([]string, 0, len(c.Weights))
	for k := range c.Weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := models.ParseCategory(k); err != nil {
			errs = append(errs, fmt.Errorf("cohorts.weights: %w", err))
			continue
		}
		if c.Weights[k] < 0 {
			errs = append(errs, fmt.Errorf("cohorts.weights: weight for %q must be >= 0, got %d", k, c.Weights[k]))
		}
	}

	t := c.Thresholds
	if t.CleanMax < 0 {
		errs = append(errs, fmt.Errorf("cohorts.thresholds: clean_max must be >= 0, got %d", t.CleanMax))
	}
	if t.CleanMax > t.LowMax || t.LowMax > t.MediumMax {
		errs = append(errs, fmt.Errorf("cohorts.thresholds: must satisfy clean_max <= low_max <= medium_max, got %d, %d, %d",
			t.CleanMax, t.LowMax, t.MediumMax))
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// Weight returns the configured weight for a category. Only meaningful on a validated config.
func (c CohortsConfig) Weight(cat models.Category) int {
	return c.Weights[string(cat)]
}
