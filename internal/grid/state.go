package grid

import (
	"maps"
	"slices"
	"strings"
)

// Direction is a sort direction.
type Direction int

const (
	Unsorted Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	}
	return "none"
}

// ParseDirection maps "asc"/"desc" to a Direction.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending
	case "desc", "descending":
		return Descending
	}
	return Unsorted
}

// State is the presentation overlay on a dataset. Hidden and Filters are keyed by
// logical column index; Order maps display position to logical index. A State is a
// value: Update never modifies its input.
type State struct {
	Width   int
	Hidden  map[int]bool
	Filters map[int]string
	Order   []int
	SortCol int
	SortDir Direction
}

// NewState returns an all-visible, unfiltered, unsorted state for width columns.
func NewState(width int) State {
	order := make([]int, width)
	for i := range order {
		order[i] = i
	}
	return State{
		Width:   width,
		Hidden:  map[int]bool{},
		Filters: map[int]string{},
		Order:   order,
		SortCol: -1,
	}
}

// Visible reports whether the logical column is shown.
func (s State) Visible(col int) bool { return !s.Hidden[col] }

// Filter returns the applied filter for the logical column.
func (s State) Filter(col int) string { return s.Filters[col] }

// HiddenColumns returns hidden logical indices in ascending order.
func (s State) HiddenColumns() []int {
	out := make([]int, 0, len(s.Hidden))
	for c, h := range s.Hidden {
		if h {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out
}

func (s State) clone() State {
	n := State{
		Width:   s.Width,
		Hidden:  maps.Clone(s.Hidden),
		Filters: maps.Clone(s.Filters),
		Order:   slices.Clone(s.Order),
		SortCol: s.SortCol,
		SortDir: s.SortDir,
	}
	if n.Hidden == nil {
		n.Hidden = map[int]bool{}
	}
	if n.Filters == nil {
		n.Filters = map[int]string{}
	}
	return n
}

func (s State) valid(col int) bool { return col >= 0 && col < s.Width }

// Event is a user interaction against the grid.
type Event interface{ isEvent() }

// FilterChanged sets the filter text for a logical column.
type FilterChanged struct {
	Column int
	Value  string
}

// ColumnHidden hides a logical column.
type ColumnHidden struct{ Column int }

// ColumnShown re-shows a logical column.
type ColumnShown struct{ Column int }

// ColumnMoved moves the column at display position From to display position To.
type ColumnMoved struct{ From, To int }

// SortChanged sorts by a logical column; Column < 0 clears the sort.
type SortChanged struct {
	Column    int
	Direction Direction
}

func (FilterChanged) isEvent() {}
func (ColumnHidden) isEvent()  {}
func (ColumnShown) isEvent()   {}
func (ColumnMoved) isEvent()   {}
func (SortChanged) isEvent()   {}

// Update applies ev to s and returns the new state and whether anything changed.
// Events that would not change the state (same filter text, already hidden, out of
// range columns) return s untouched and false.
func Update(s State, ev Event) (State, bool) {
	switch e := ev.(type) {
	case FilterChanged:
		if !s.valid(e.Column) || s.Filters[e.Column] == e.Value {
			return s, false
		}
		n := s.clone()
		if e.Value == "" {
			delete(n.Filters, e.Column)
		} else {
			n.Filters[e.Column] = e.Value
		}
		return n, true
	case ColumnHidden:
		if !s.valid(e.Column) || s.Hidden[e.Column] {
			return s, false
		}
		n := s.clone()
		n.Hidden[e.Column] = true
		return n, true
	case ColumnShown:
		if !s.valid(e.Column) || !s.Hidden[e.Column] {
			return s, false
		}
		n := s.clone()
		delete(n.Hidden, e.Column)
		return n, true
	case ColumnMoved:
		if e.From == e.To || e.From < 0 || e.To < 0 || e.From >= len(s.Order) || e.To >= len(s.Order) {
			return s, false
		}
		n := s.clone()
		col := n.Order[e.From]
		n.Order = slices.Delete(n.Order, e.From, e.From+1)
		n.Order = slices.Insert(n.Order, e.To, col)
		return n, true
	case SortChanged:
		if e.Column < 0 || e.Direction == Unsorted {
			if s.SortCol < 0 {
				return s, false
			}
			n := s.clone()
			n.SortCol, n.SortDir = -1, Unsorted
			return n, true
		}
		if !s.valid(e.Column) || (s.SortCol == e.Column && s.SortDir == e.Direction) {
			return s, false
		}
		n := s.clone()
		n.SortCol, n.SortDir = e.Column, e.Direction
		return n, true
	}
	return s, false
}

// Apply folds events over s, returning the final state and whether any event changed it.
func Apply(s State, events ...Event) (State, bool) {
	changed := false
	for _, ev := range events {
		var c bool
		s, c = Update(s, ev)
		changed = changed || c
	}
	return s, changed
}

// WithOrder replaces the display order when order is a permutation of the logical
// columns. Anything else leaves s unchanged.
func WithOrder(s State, order []int) (State, bool) {
	if len(order) != s.Width || slices.Equal(order, s.Order) {
		return s, false
	}
	seen := make([]bool, s.Width)
	for _, c := range order {
		if !s.valid(c) || seen[c] {
			return s, false
		}
		seen[c] = true
	}
	n := s.clone()
	n.Order = slices.Clone(order)
	return n, true
}

// DisplayPosition returns the display position of a logical column, or -1.
func (s State) DisplayPosition(col int) int {
	return slices.Index(s.Order, col)
}
