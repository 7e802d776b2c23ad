// Package dashboard implements the derived-state pipeline behind the sites
// dashboard: per-connection health scoring, the filter chain, the sort
// comparator set, and selection tracking. Everything here is pure and
// synchronous; callers re-run the pipeline on every state change.
package dashboard

import "seopilot/internal/domain"

// HealthCategory buckets a health score for filtering and display.
type HealthCategory string

const (
	HealthExcellent HealthCategory = "excellent"
	HealthGood      HealthCategory = "good"
	HealthFair      HealthCategory = "fair"
	HealthPoor      HealthCategory = "poor"
)

// Severity deductions applied per sampled issue.
const (
	deductCritical = 15
	deductHigh     = 10
	deductMedium   = 5
	deductOther    = 2
)

// HealthScore reduces a connection's issue/fix history to a 0-100 integer.
//
// The zero-issue shortcut is decided on the aggregate IssueCount; the
// deduction pass walks the sampled Issues slice. When the aggregate count is
// nonzero but the sample is empty the deduction pass has nothing to charge
// and the score comes out 100. That mismatch is inherited behavior the rest
// of the product depends on; see the note on scoreOverSample in DESIGN.md
// before changing it.
func HealthScore(c domain.Connection) int {
	if c.IssueCount == 0 {
		if c.FixCount > 0 {
			return 100
		}
		return 90
	}

	var critical, high, medium int
	for _, is := range c.Issues {
		switch is.Severity {
		case domain.SeverityCritical:
			critical++
		case domain.SeverityHigh:
			high++
		case domain.SeverityMedium:
			medium++
		}
	}
	// LOW and any unrecognized severity share the light deduction.
	other := len(c.Issues) - critical - high - medium

	score := 100 - critical*deductCritical - high*deductHigh - medium*deductMedium - other*deductOther
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// CategoryFor maps a health score onto its display bucket.
func CategoryFor(score int) HealthCategory {
	switch {
	case score >= 90:
		return HealthExcellent
	case score >= 70:
		return HealthGood
	case score >= 50:
		return HealthFair
	default:
		return HealthPoor
	}
}

// Category is shorthand for bucketing a connection's computed score.
func Category(c domain.Connection) HealthCategory {
	return CategoryFor(HealthScore(c))
}
