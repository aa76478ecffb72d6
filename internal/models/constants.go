// Package models provides domain types and constants for the migration cohort classifier.
//
// This file consolidates the cohort labels and blocker categories used throughout
// the application. Import these constants instead of defining local ones.
package models

import "fmt"

// Cohort is a migration cohort label. Every classified repository receives exactly one.
type Cohort string

// Categorical cohorts. These win over the weight-based tiers when their flag is present.
const (
	CohortUnmigratable  Cohort = "UNMIGRATABLE"
	CohortArchived      Cohort = "ARCHIVED"
	CohortMacOSRunners  Cohort = "MACOS_RUNNERS"
	CohortMavenPackages Cohort = "MAVEN_PACKAGES"
	CohortCodespaces    Cohort = "CODESPACES"
)

// Weight-based cohorts, in ascending order of complexity.
const (
	CohortClean            Cohort = "CLEAN"
	CohortLowComplexity    Cohort = "LOW_COMPLEXITY"
	CohortMediumComplexity Cohort = "MEDIUM_COMPLEXITY"
	CohortHighComplexity   Cohort = "HIGH_COMPLEXITY"
)

// AllCohorts returns every cohort label in decision order.
func AllCohorts() []Cohort {
	return []Cohort{
		CohortUnmigratable,
		CohortArchived,
		CohortMacOSRunners,
		CohortMavenPackages,
		CohortCodespaces,
		CohortClean,
		CohortLowComplexity,
		CohortMediumComplexity,
		CohortHighComplexity,
	}
}

// IsValid checks if the cohort is a member of the closed label set.
func (c Cohort) IsValid() bool {
	for _, v := range AllCohorts() {
		if v == c {
			return true
		}
	}
	return false
}

// IsCategorical reports whether the cohort is assigned from a flag rather than from weight.
func (c Cohort) IsCategorical() bool {
	switch c {
	case CohortUnmigratable, CohortArchived, CohortMacOSRunners, CohortMavenPackages, CohortCodespaces:
		return true
	default:
		return false
	}
}

func (c Cohort) String() string {
	return string(c)
}

// Category is a migration blocker category that contributes weight when present.
type Category string

// Blocker categories in reporting order.
const (
	CategoryAppInstallations      Category = "app_installations"
	CategoryLFSObjects            Category = "lfs_objects"
	CategoryPackages              Category = "packages"
	CategoryProjects              Category = "projects"
	CategoryCustomProperties      Category = "custom_properties"
	CategoryRulesets              Category = "rulesets"
	CategorySecrets               Category = "secrets"
	CategoryEnvironments          Category = "environments"
	CategorySelfHostedRunners     Category = "self_hosted_runners"
	CategoryWebhooks              Category = "webhooks"
	CategoryDiscussions           Category = "discussions"
	CategoryDeployKeys            Category = "deploy_keys"
	CategoryPagesCustomDomain     Category = "pages_custom_domain"
	CategoryLargeReleases         Category = "large_releases"
	CategoryArchived              Category = "archived"
	CategoryExternalCollaborators Category = "external_collaborators"
	CategoryUnmigratable          Category = "unmigratable"
	CategoryMavenPackages         Category = "maven_packages"
	CategoryCodespaces            Category = "codespaces"
	CategoryMacOSRunners          Category = "macos_runners"
)

// AllCategories returns every blocker category in reporting order.
func AllCategories() []Category {
	return []Category{
		CategoryAppInstallations,
		CategoryLFSObjects,
		CategoryPackages,
		CategoryProjects,
		CategoryCustomProperties,
		CategoryRulesets,
		CategorySecrets,
		CategoryEnvironments,
		CategorySelfHostedRunners,
		CategoryWebhooks,
		CategoryDiscussions,
		CategoryDeployKeys,
		CategoryPagesCustomDomain,
		CategoryLargeReleases,
		CategoryArchived,
		CategoryExternalCollaborators,
		CategoryUnmigratable,
		CategoryMavenPackages,
		CategoryCodespaces,
		CategoryMacOSRunners,
	}
}

// ParseCategory converts a configuration key into a Category.
func ParseCategory(name string) (Category, error) {
	for _, c := range AllCategories() {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", name)
}

// Input column names. Aliases cover the spellings seen in exported inventories.
const (
	FieldEnterprise   = "enterprise"
	FieldOrganization = "organization"
	FieldRepository   = "repository"

	FieldAppInstallations       = "app_installations"
	FieldLFSObjects             = "lfs_objects"
	FieldPackages               = "packages"
	FieldIssuesLinkedToProjects = "issues_linked_to_projects"
	FieldProjectsLinkedToRepo   = "projects_linked_to_repo"
	FieldCustomProperties       = "custom_properties"
	FieldRulesets               = "rulesets"
	FieldSecrets                = "secrets"
	FieldEnvironments           = "environments"
	FieldSelfHostedRunners      = "self_hosted_runners"
	FieldWebhooks               = "webhooks"
	FieldDiscussions            = "discussions"
	FieldDeployKeys             = "deploy_keys"
	FieldPagesCustomDomain      = "pages_custom_domain"
	FieldLargeReleases          = "large_releases"
	FieldArchived               = "isArchived"
	FieldExternalCollaborators  = "has_external_collaborators"
	FieldUnmigratable           = "unmigratable"
	FieldMavenPackages          = "has_maven_packages"
	FieldCodespaces             = "has_codespaces"
	FieldMacOSRunners           = "has_macos_runners"
)

// Group key used when a record carries no grouping value.
const UnknownGroup = "Unknown"
