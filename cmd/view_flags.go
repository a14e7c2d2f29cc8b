package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dockfinder-cli/internal/dataset"
	"github.com/KaramelBytes/dockfinder-cli/internal/grid"
)

// View flags shared by table and export.
var (
	viewFilters []string
	viewHide    []string
	viewOrder   []string
	viewSort    string
	viewAsc     bool
	viewNoSort  bool
)

func addViewFlags(c *cobra.Command) {
	c.Flags().StringArrayVar(&viewFilters, "filter", nil, "column filter as <column>=<text> (repeatable; column is an index or a header fragment)")
	c.Flags().StringSliceVar(&viewHide, "hide", nil, "columns to hide (index or header fragment)")
	c.Flags().StringSliceVar(&viewOrder, "order", nil, "display order of all columns, e.g. 2,0,1")
	c.Flags().StringVar(&viewSort, "sort", "", "sort by column (default: first column containing the sort match, descending)")
	c.Flags().BoolVar(&viewAsc, "asc", false, "sort ascending instead of descending")
	c.Flags().BoolVar(&viewNoSort, "no-sort", false, "keep file order")
}

// resolveColumn accepts a logical index or a case-insensitive header fragment.
func resolveColumn(ds *dataset.Dataset, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if i, err := strconv.Atoi(ref); err == nil {
		if i < 0 || i >= ds.Width() {
			return -1, fmt.Errorf("column %d out of range (0-%d)", i, ds.Width()-1)
		}
		return i, nil
	}
	if i, ok := dataset.FindColumn(ds.Header, ref); ok {
		return i, nil
	}
	return -1, fmt.Errorf("no column matches %q", ref)
}

// viewState folds the view flags over the default state as grid events.
func viewState(ds *dataset.Dataset, base grid.State) (grid.State, error) {
	var events []grid.Event
	for _, f := range viewFilters {
		ref, text, ok := strings.Cut(f, "=")
		if !ok {
			return base, fmt.Errorf("invalid --filter %q (want <column>=<text>)", f)
		}
		col, err := resolveColumn(ds, ref)
		if err != nil {
			return base, fmt.Errorf("--filter: %w", err)
		}
		events = append(events, grid.FilterChanged{Column: col, Value: text})
	}
	for _, h := range viewHide {
		col, err := resolveColumn(ds, h)
		if err != nil {
			return base, fmt.Errorf("--hide: %w", err)
		}
		events = append(events, grid.ColumnHidden{Column: col})
	}
	switch {
	case viewNoSort:
		events = append(events, grid.SortChanged{Column: -1})
	case viewSort != "":
		col, err := resolveColumn(ds, viewSort)
		if err != nil {
			return base, fmt.Errorf("--sort: %w", err)
		}
		dir := grid.Descending
		if viewAsc {
			dir = grid.Ascending
		}
		events = append(events, grid.SortChanged{Column: col, Direction: dir})
	case viewAsc && base.SortCol >= 0:
		events = append(events, grid.SortChanged{Column: base.SortCol, Direction: grid.Ascending})
	}
	s, _ := grid.Apply(base, events...)

	if len(viewOrder) > 0 {
		order := make([]int, 0, len(viewOrder))
		for _, o := range viewOrder {
			col, err := resolveColumn(ds, o)
			if err != nil {
				return base, fmt.Errorf("--order: %w", err)
			}
			order = append(order, col)
		}
		next, ok := grid.WithOrder(s, order)
		if !ok && !equalOrder(order, s.Order) {
			return base, fmt.Errorf("--order must list every column exactly once (%d columns)", ds.Width())
		}
		s = next
	}
	return s, nil
}

func equalOrder(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
