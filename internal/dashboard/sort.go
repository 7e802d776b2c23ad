package dashboard

import (
	"sort"
	"strings"

	"seopilot/internal/domain"
)

// SortKey selects one of the four dashboard orderings.
type SortKey string

const (
	SortName     SortKey = "name"     // display name ascending
	SortHealth   SortKey = "health"   // health score descending
	SortIssues   SortKey = "issues"   // aggregate issue count descending
	SortLastSync SortKey = "lastSync" // most recently scanned first, never-scanned last
)

// ValidSortKey reports whether k names a known comparator.
func ValidSortKey(k SortKey) bool {
	switch k {
	case SortName, SortHealth, SortIssues, SortLastSync:
		return true
	}
	return false
}

// Sort orders conns in place by key. The sort is stable, so ties keep their
// filtered (input) order; an unknown key leaves the slice untouched.
func Sort(conns []domain.Connection, key SortKey) {
	switch key {
	case SortName:
		sort.SliceStable(conns, func(i, j int) bool {
			return strings.ToLower(conns[i].Name()) < strings.ToLower(conns[j].Name())
		})
	case SortHealth:
		sort.SliceStable(conns, func(i, j int) bool {
			return HealthScore(conns[i]) > HealthScore(conns[j])
		})
	case SortIssues:
		sort.SliceStable(conns, func(i, j int) bool {
			return conns[i].IssueCount > conns[j].IssueCount
		})
	case SortLastSync:
		sort.SliceStable(conns, func(i, j int) bool {
			a, b := conns[i].LastSync, conns[j].LastSync
			// Never-scanned connections are infinitely old.
			if a != nil && b == nil {
				return true
			}
			if a == nil {
				return false
			}
			return a.After(*b)
		})
	}
}
