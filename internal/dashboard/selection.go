package dashboard

import (
	"sort"

	"seopilot/internal/domain"
)

// Selection is the set of connection IDs checked for bulk actions. It lives
// only in view state: it is cleared by explicit user action, never implicitly
// when a filter change hides selected rows.
type Selection map[string]struct{}

// NewSelection returns an empty selection.
func NewSelection() Selection { return make(Selection) }

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Toggle flips membership of id.
func (s Selection) Toggle(id string) {
	if s.Has(id) {
		delete(s, id)
	} else {
		s[id] = struct{}{}
	}
}

// Clear empties the selection unconditionally.
func (s Selection) Clear() {
	for id := range s {
		delete(s, id)
	}
}

// SelectAll is scoped to the visible (filtered) list: if the selection
// already holds exactly as many entries as visible, it clears; otherwise it
// becomes exactly the visible IDs. Selecting "all" under an active filter
// selects only the surviving subset.
func (s Selection) SelectAll(visible []domain.Connection) {
	if len(s) == len(visible) {
		s.Clear()
		return
	}
	s.Clear()
	for _, c := range visible {
		s[c.ID] = struct{}{}
	}
}

// IDs returns the selected ids in a deterministic order for request bodies
// and tests.
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}
