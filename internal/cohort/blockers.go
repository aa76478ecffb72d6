// Package cohort implements the migration cohort engine: weighting repositories by
// their migration blockers, assigning each one a cohort, and aggregating the results.
//
// The engine is pure. It never reads files or the environment and never mutates
// its configuration; callers supply records and a validated config.CohortsConfig.
package cohort

import (
	"fmt"

	"github.com/kuhlman-labs/migration-cohorts/internal/models"
)

type presenceKind int

const (
	// kindCount is present when the count field is > 0
	kindCount presenceKind = iota
	// kindFlag is present when the boolean field is truthy
	kindFlag
	// kindEitherCount is present when either of two count fields is > 0
	kindEitherCount
)

// blocker is one row of the declarative category table. Fields holds one alias
// list per underlying value; only kindEitherCount has two.
type blocker struct {
	category models.Category
	kind     presenceKind
	fields   [][]string
	reason   string // fmt template for counts, literal text for flags
}

func countBlocker(cat models.Category, reason string, aliases ...string) blocker {
	return blocker{category: cat, kind: kindCount, fields: [][]string{aliases}, reason: reason}
}

func flagBlocker(cat models.Category, reason string, aliases ...string) blocker {
	return blocker{category: cat, kind: kindFlag, fields: [][]string{aliases}, reason: reason}
}

// blockers is in models.AllCategories() order. Adding a category means adding a row
// here, a constant in models and a weight in the config.
var blockers = []blocker{
	countBlocker(models.CategoryAppInstallations, "App installations (%d)", models.FieldAppInstallations),
	countBlocker(models.CategoryLFSObjects, "LFS objects (%d)", models.FieldLFSObjects),
	countBlocker(models.CategoryPackages, "Packages (%d)", models.FieldPackages),
	{
		category: models.CategoryProjects,
		kind:     kindEitherCount,
		fields:   [][]string{{models.FieldIssuesLinkedToProjects}, {models.FieldProjectsLinkedToRepo}},
		reason:   "Projects (issues linked: %d, linked to repository: %d)",
	},
	countBlocker(models.CategoryCustomProperties, "Custom properties (%d)", models.FieldCustomProperties),
	countBlocker(models.CategoryRulesets, "Rulesets (%d)", models.FieldRulesets),
	countBlocker(models.CategorySecrets, "Secrets (%d)", models.FieldSecrets),
	countBlocker(models.CategoryEnvironments, "Environments (%d)", models.FieldEnvironments),
	countBlocker(models.CategorySelfHostedRunners, "Self-hosted runners (%d)", models.FieldSelfHostedRunners),
	countBlocker(models.CategoryWebhooks, "Webhooks (%d)", models.FieldWebhooks),
	countBlocker(models.CategoryDiscussions, "Discussions (%d)", models.FieldDiscussions),
	countBlocker(models.CategoryDeployKeys, "Deploy keys (%d)", models.FieldDeployKeys),
	flagBlocker(models.CategoryPagesCustomDomain, "Pages custom domain configured", models.FieldPagesCustomDomain),
	countBlocker(models.CategoryLargeReleases, "Large releases (%d)", models.FieldLargeReleases),
	flagBlocker(models.CategoryArchived, "Repository is archived", models.FieldArchived, "is_archived", "archived"),
	flagBlocker(models.CategoryExternalCollaborators, "Has external collaborators", models.FieldExternalCollaborators),
	flagBlocker(models.CategoryUnmigratable, "Repository is flagged as unmigratable", models.FieldUnmigratable, "is_unmigratable"),
	flagBlocker(models.CategoryMavenPackages, "Maven packages (not supported by the target platform)", models.FieldMavenPackages),
	flagBlocker(models.CategoryCodespaces, "Codespaces (not supported by the target platform)", models.FieldCodespaces),
	flagBlocker(models.CategoryMacOSRunners, "macOS runners (not supported by the target platform)", models.FieldMacOSRunners),
}

// Finding is a present blocker category together with the raw counts that triggered it.
// Counts is empty for flag categories.
type Finding struct {
	Category models.Category
	Counts   []int
	reason   string
	kind     presenceKind
}

// Reason renders the human-readable reason for the finding.
func (f Finding) Reason() string {
	if f.kind == kindFlag {
		return f.reason
	}
	args := make([]any, len(f.Counts))
	for i, c := range f.Counts {
		args[i] = c
	}
	return fmt.Sprintf(f.reason, args...)
}

// Presence is the set of blocker categories present on one record, computed once
// and shared by weighting, classification and reason generation.
type Presence struct {
	findings []Finding
	present  map[models.Category]bool
}

// DetectPresence evaluates every blocker predicate against the record.
func DetectPresence(record models.RepositoryRecord) Presence {
	p := Presence{present: make(map[models.Category]bool)}

	for _, b := range blockers {
		var (
			counts []int
			found  bool
		)

		switch b.kind {
		case kindFlag:
			found = record.Bool(b.fields[0]...)
		case kindCount, kindEitherCount:
			counts = make([]int, len(b.fields))
			for i, aliases := range b.fields {
				counts[i] = record.Int(aliases...)
				if counts[i] > 0 {
					found = true
				}
			}
		}

		if !found {
			continue
		}
		p.present[b.category] = true
		p.findings = append(p.findings, Finding{
			Category: b.category,
			Counts:   counts,
			reason:   b.reason,
			kind:     b.kind,
		})
	}

	return p
}

// Has reports whether the category is present.
func (p Presence) Has(cat models.Category) bool {
	return p.present[cat]
}

// Findings returns the present categories in reporting order.
func (p Presence) Findings() []Finding {
	return p.findings
}

// Len is the number of present categories.
func (p Presence) Len() int {
	return len(p.findings)
}

// Reasons returns one reason string per present category in reporting order.
func (p Presence) Reasons() []string {
	reasons := make([]string, 0, len(p.findings))
	for _, f := range p.findings {
		reasons = append(reasons, f.Reason())
	}
	return reasons
}
