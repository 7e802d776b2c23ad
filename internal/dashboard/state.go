package dashboard

import "seopilot/internal/domain"

// ViewMode is the dashboard layout toggle. Switching modes changes rendering
// only; query, filters, sort and selection are untouched.
type ViewMode string

const (
	ModeGrid ViewMode = "grid"
	ModeList ViewMode = "list"
)

// ViewState is the whole of the dashboard's local state: everything a user
// interaction can change. It is serializable and independent of any
// rendering layer, so the derive pipeline is testable on its own.
type ViewState struct {
	Filters  Filters
	Sort     SortKey
	Mode     ViewMode
	Selected Selection
}

// NewViewState returns the dashboard defaults: no filters, name order, grid.
func NewViewState() ViewState {
	return ViewState{
		Filters:  Filters{Platform: FilterAll, Health: FilterAll},
		Sort:     SortName,
		Mode:     ModeGrid,
		Selected: NewSelection(),
	}
}

// Action is a single user interaction fed through Reduce.
type Action interface {
	apply(s *ViewState, snapshot []domain.Connection)
}

type (
	// SetQuery replaces the free-text search.
	SetQuery string
	// SetPlatform replaces the platform selector (FilterAll or a platform).
	SetPlatform string
	// SetHealth replaces the health-category selector.
	SetHealth string
	// SetSort replaces the sort key; unknown keys are ignored.
	SetSort SortKey
	// SetMode switches the layout between grid and list.
	SetMode ViewMode
	// ToggleSelect flips one connection's selection.
	ToggleSelect string
	// SelectAllVisible applies the filter-scoped select-all toggle.
	SelectAllVisible struct{}
	// ClearSelection empties the selection.
	ClearSelection struct{}
)

func (a SetQuery) apply(s *ViewState, _ []domain.Connection)    { s.Filters.Query = string(a) }
func (a SetPlatform) apply(s *ViewState, _ []domain.Connection) { s.Filters.Platform = string(a) }
func (a SetHealth) apply(s *ViewState, _ []domain.Connection)   { s.Filters.Health = string(a) }

func (a SetSort) apply(s *ViewState, _ []domain.Connection) {
	if ValidSortKey(SortKey(a)) {
		s.Sort = SortKey(a)
	}
}

func (a SetMode) apply(s *ViewState, _ []domain.Connection) {
	if a == SetMode(ModeGrid) || a == SetMode(ModeList) {
		s.Mode = ViewMode(a)
	}
}

func (a ToggleSelect) apply(s *ViewState, _ []domain.Connection) {
	s.Selected.Toggle(string(a))
}

func (SelectAllVisible) apply(s *ViewState, snapshot []domain.Connection) {
	s.Selected.SelectAll(Apply(snapshot, s.Filters))
}

func (ClearSelection) apply(s *ViewState, _ []domain.Connection) {
	s.Selected.Clear()
}

// Reduce returns the state after applying a against the given snapshot. The
// input state is not mutated; the snapshot is only consulted (select-all
// needs the filtered list) and never changed.
func Reduce(s ViewState, snapshot []domain.Connection, a Action) ViewState {
	next := s
	next.Selected = s.Selected.Clone()
	a.apply(&next, snapshot)
	return next
}

// Item is one row/card of the derived view.
type Item struct {
	domain.Connection
	Score    int
	Category HealthCategory
	Selected bool
}

// View is the fully derived dashboard: scored, filtered, sorted and
// annotated with selection. Total carries the unfiltered count so an empty
// Items can be told apart from having no connections at all.
type View struct {
	Items         []Item
	Mode          ViewMode
	Total         int
	SelectedCount int
}

// Derive runs the pipeline: score per item, filter, stable sort, annotate.
// It is pure and idempotent, so re-running it on every keystroke is safe.
func Derive(snapshot []domain.Connection, s ViewState) View {
	filtered := Apply(snapshot, s.Filters)
	Sort(filtered, s.Sort)

	items := make([]Item, len(filtered))
	for i, c := range filtered {
		score := HealthScore(c)
		items[i] = Item{
			Connection: c,
			Score:      score,
			Category:   CategoryFor(score),
			Selected:   s.Selected.Has(c.ID),
		}
	}
	return View{
		Items:         items,
		Mode:          s.Mode,
		Total:         len(snapshot),
		SelectedCount: len(s.Selected),
	}
}
