// Package match resolves free-text exercise names against canonical or
// planned names. Matching never fails — absence of a match is a normal,
// representable outcome (false / -1).
package match

import "strings"

// lighterQualifier marks a deliberately distinct variant of a lift
// ("Squat (lighter)" is programmed separately from "Squat" and must never
// alias it).
const lighterQualifier = "lighter"

// aliasGroups maps a canonical lift name to accepted synonyms. Two names
// match when both fall in the same group. Kept as an explicit static table
// so the matching policy stays auditable.
var aliasGroups = map[string][]string{
	"bench press":      {"bench", "flat bench", "incline bench", "decline bench press"},
	"squat":            {"barbell squat", "barbell back squat", "back squat"},
	"ohp":              {"overhead press", "standing press", "military press"},
	"seated cable row": {"seated row", "cable row"},
	"barbell row":      {"bent over row", "pendlay row"},
}

// Resolve reports whether two exercise names denote the same exercise.
// Policy, in order: lighter-qualifier exclusion, case-insensitive equality,
// substring containment in either direction, alias-group membership.
func Resolve(name, target string) bool {
	nl := strings.ToLower(name)
	tl := strings.ToLower(target)

	if strings.Contains(nl, lighterQualifier) != strings.Contains(tl, lighterQualifier) {
		return false
	}
	if nl == tl || strings.Contains(nl, tl) || strings.Contains(tl, nl) {
		return true
	}
	for canonical, synonyms := range aliasGroups {
		if inGroup(nl, canonical, synonyms) && inGroup(tl, canonical, synonyms) {
			return true
		}
	}
	return false
}

func inGroup(name, canonical string, synonyms []string) bool {
	if name == canonical {
		return true
	}
	for _, s := range synonyms {
		if name == s {
			return true
		}
	}
	return false
}

// minSubstringQuery is the minimum query length for the substring tier of
// BestIndex; shorter tokens over-match ("row" would hit half the plan).
const minSubstringQuery = 4

// BestIndex picks one candidate for query from names, returning its index
// or -1. Tiers, each scanning candidates in order and returning the first
// hit: exact equality, prefix, substring containment (substring only when
// the query is at least 4 characters).
//
// When two candidates share a short common substring the substring tier can
// pick the earlier, unintended one; that tiered ordered-scan behavior is
// load-bearing for callers and intentionally preserved.
func BestIndex(query string, names []string) int {
	q := strings.ToLower(query)

	for i, n := range names {
		if strings.ToLower(n) == q {
			return i
		}
	}
	for i, n := range names {
		if strings.HasPrefix(strings.ToLower(n), q) {
			return i
		}
	}
	if len(q) >= minSubstringQuery {
		for i, n := range names {
			if strings.Contains(strings.ToLower(n), q) {
				return i
			}
		}
	}
	return -1
}
