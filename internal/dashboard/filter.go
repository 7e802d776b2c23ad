package dashboard

import (
	"strings"

	"seopilot/internal/domain"
)

// FilterAll is the selector value that disables a predicate.
const FilterAll = "all"

// Filters holds the three user-facing list predicates. The zero value (empty
// query, empty selectors) matches everything; empty selectors are treated
// like FilterAll so URL query params can be omitted.
type Filters struct {
	Query    string // case-insensitive substring over display name and domain
	Platform string // FilterAll or an exact domain.Platform value
	Health   string // FilterAll or an exact HealthCategory value
}

// Match reports whether c passes all three predicates. The predicates are a
// conjunction: every active one must hold.
func (f Filters) Match(c domain.Connection) bool {
	if q := strings.TrimSpace(f.Query); q != "" {
		q = strings.ToLower(q)
		name := strings.ToLower(c.Name())
		dom := strings.ToLower(c.Domain)
		if !strings.Contains(name, q) && !strings.Contains(dom, q) {
			return false
		}
	}
	if f.Platform != "" && f.Platform != FilterAll {
		if string(c.Platform) != f.Platform {
			return false
		}
	}
	if f.Health != "" && f.Health != FilterAll {
		if string(Category(c)) != f.Health {
			return false
		}
	}
	return true
}

// Apply returns the connections passing f, preserving input order. The
// result is always a fresh slice; the snapshot is never mutated.
func Apply(conns []domain.Connection, f Filters) []domain.Connection {
	out := make([]domain.Connection, 0, len(conns))
	for _, c := range conns {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}
