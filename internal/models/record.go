package models

import (
	"math"
	"strconv"
	"strings"
)

// RepositoryRecord is one row of the repository inventory: column name to raw value.
// Records are treated as immutable once ingested.
type RepositoryRecord map[string]string

// truthyValues is the enumerated set of boolean spellings accepted as true (compared lowercased).
var truthyValues = map[string]struct{}{
	"true": {},
	"1":    {},
	"yes":  {},
	"y":    {},
	"t":    {},
}

// nullValues are placeholders that exporters write for missing numbers.
var nullValues = map[string]struct{}{
	"":          {},
	"null":      {},
	"undefined": {},
	"nan":       {},
	"none":      {},
}

// Get returns the value of the first key present in the record.
func (r RepositoryRecord) Get(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			return v, true
		}
	}
	return "", false
}

// Int returns the first present key parsed as a non-negative count.
// Missing, null-like and unparsable values are 0.
func (r RepositoryRecord) Int(keys ...string) int {
	raw, ok := r.Get(keys...)
	if !ok {
		return 0
	}
	return ParseCount(raw)
}

// Bool returns true when the first present key holds a truthy spelling.
func (r RepositoryRecord) Bool(keys ...string) bool {
	raw, ok := r.Get(keys...)
	if !ok {
		return false
	}
	return ParseFlag(raw)
}

// Enterprise returns the enterprise identifier, or "" when absent.
func (r RepositoryRecord) Enterprise() string {
	v, _ := r.Get(FieldEnterprise, "enterprise_name", "Enterprise")
	return strings.TrimSpace(v)
}

// Organization returns the organization identifier, or "" when absent.
func (r RepositoryRecord) Organization() string {
	v, _ := r.Get(FieldOrganization, "org", "owner", "Organization")
	return strings.TrimSpace(v)
}

// Repository returns the repository name, or "" when absent.
func (r RepositoryRecord) Repository() string {
	v, _ := r.Get(FieldRepository, "repo_name", "name", "Repository")
	return strings.TrimSpace(v)
}

// ParseCount normalizes a raw numeric cell. Integral floats such as "3.0" are
// accepted; everything else that does not parse is 0.
func ParseCount(raw string) int {
	s := strings.TrimSpace(raw)
	if _, isNull := nullValues[strings.ToLower(s)]; isNull {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return min(max(n, 0), math.MaxInt32)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// ParseFlag normalizes a raw boolean cell against the truthy set.
func ParseFlag(raw string) bool {
	_, ok := truthyValues[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}
