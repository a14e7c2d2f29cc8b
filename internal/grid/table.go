package grid

import (
	"cmp"
	"slices"
	"strings"

	"github.com/KaramelBytes/dockfinder-cli/internal/dataset"
)

// Predicate decides whether a rendered cell text passes a column filter.
type Predicate func(text string) bool

// Contains returns a case-insensitive substring predicate. An empty needle yields nil.
func Contains(needle string) Predicate {
	if needle == "" {
		return nil
	}
	n := strings.ToLower(needle)
	return func(text string) bool {
		return strings.Contains(strings.ToLower(text), n)
	}
}

// Widget is the table rendering capability the presenter drives.
type Widget interface {
	Render(columns []string, rows [][]dataset.Cell) error
	SetColumnVisible(index int, visible bool)
	SetColumnFilter(index int, pred Predicate)
	SetSortOrder(index int, dir Direction)
}

// Reorderer is implemented by widgets that support drag-to-reorder columns.
type Reorderer interface {
	SetColumnOrder(order []int)
}

// FrameColumn is one visible column of a Frame.
type FrameColumn struct {
	Index int
	Name  string
}

// Frame is what a Table currently shows: visible columns in display order and the
// filtered, sorted rows projected onto those columns.
type Frame struct {
	Columns []FrameColumn
	Rows    [][]dataset.Cell
	Total   int
	SortCol int
	SortDir Direction
}

// Table is an in-memory Widget. Rendering surfaces read its Frame.
type Table struct {
	columns []string
	rows    [][]dataset.Cell
	hidden  map[int]bool
	filters map[int]Predicate
	order   []int
	sortCol int
	sortDir Direction
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{hidden: map[int]bool{}, filters: map[int]Predicate{}, sortCol: -1}
}

// Render loads columns and rows, resetting display order to identity.
func (t *Table) Render(columns []string, rows [][]dataset.Cell) error {
	t.columns = slices.Clone(columns)
	t.rows = rows
	t.order = make([]int, len(columns))
	for i := range t.order {
		t.order[i] = i
	}
	return nil
}

func (t *Table) SetColumnVisible(index int, visible bool) {
	if visible {
		delete(t.hidden, index)
		return
	}
	t.hidden[index] = true
}

func (t *Table) SetColumnFilter(index int, pred Predicate) {
	if pred == nil {
		delete(t.filters, index)
		return
	}
	t.filters[index] = pred
}

func (t *Table) SetSortOrder(index int, dir Direction) {
	if dir == Unsorted {
		index = -1
	}
	t.sortCol, t.sortDir = index, dir
}

// SetColumnOrder sets the display order. Orders that are not a permutation of the
// loaded columns are ignored.
func (t *Table) SetColumnOrder(order []int) {
	if len(order) != len(t.columns) {
		return
	}
	seen := make([]bool, len(order))
	for _, c := range order {
		if c < 0 || c >= len(order) || seen[c] {
			return
		}
		seen[c] = true
	}
	t.order = slices.Clone(order)
}

// Frame computes the current view.
func (t *Table) Frame() Frame {
	f := Frame{Total: len(t.rows), SortCol: t.sortCol, SortDir: t.sortDir}
	for _, c := range t.order {
		if t.hidden[c] {
			continue
		}
		f.Columns = append(f.Columns, FrameColumn{Index: c, Name: t.columns[c]})
	}

	matched := make([][]dataset.Cell, 0, len(t.rows))
	for _, row := range t.rows {
		if t.matches(row) {
			matched = append(matched, row)
		}
	}
	if t.sortCol >= 0 && t.sortCol < len(t.columns) && t.sortDir != Unsorted {
		col, desc := t.sortCol, t.sortDir == Descending
		slices.SortStableFunc(matched, func(a, b []dataset.Cell) int {
			c := compareCells(cellText(a, col), cellText(b, col))
			if desc {
				return -c
			}
			return c
		})
	}

	f.Rows = make([][]dataset.Cell, len(matched))
	for i, row := range matched {
		out := make([]dataset.Cell, len(f.Columns))
		for j, fc := range f.Columns {
			if fc.Index < len(row) {
				out[j] = row[fc.Index]
			}
		}
		f.Rows[i] = out
	}
	return f
}

func (t *Table) matches(row []dataset.Cell) bool {
	for idx, pred := range t.filters {
		if !pred(cellText(row, idx)) {
			return false
		}
	}
	return true
}

func cellText(row []dataset.Cell, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx].Text
}

// compareCells is a total order: numbers first, compared numerically, then
// everything else compared as case-insensitive text.
func compareCells(a, b string) int {
	fa, okA := dataset.ParseNumber(a)
	fb, okB := dataset.ParseNumber(b)
	switch {
	case okA && okB:
		return cmp.Compare(fa, fb)
	case okA:
		return -1
	case okB:
		return 1
	}
	return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
}

// Sync pushes s onto w.
func Sync(w Widget, s State) {
	for i := 0; i < s.Width; i++ {
		w.SetColumnVisible(i, s.Visible(i))
		w.SetColumnFilter(i, Contains(s.Filter(i)))
	}
	w.SetSortOrder(s.SortCol, s.SortDir)
	if r, ok := w.(Reorderer); ok {
		r.SetColumnOrder(s.Order)
	}
}

// DefaultState is the initial state for ds: everything visible and, when a header
// contains sortNeedle, sorted descending by that column.
func DefaultState(ds *dataset.Dataset, sortNeedle string) State {
	s := NewState(ds.Width())
	if ds == nil {
		return s
	}
	if idx, ok := dataset.FindColumn(ds.Header, sortNeedle); ok {
		s.SortCol, s.SortDir = idx, Descending
	}
	return s
}

// Build renders ds into a fresh Table and applies s.
func Build(ds *dataset.Dataset, s State) *Table {
	t := NewTable()
	if ds == nil {
		return t
	}
	_ = t.Render(ds.Header, dataset.RenderRows(ds))
	Sync(t, s)
	return t
}
