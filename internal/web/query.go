package web

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/KaramelBytes/dockfinder-cli/internal/grid"
)

// Query parameters carrying grid state:
//
//	f<idx>=text   filter on logical column idx
//	hide=1,3      hidden logical columns
//	order=2,0,1   display order of logical columns
//	sort=<idx>    sort column, or "none"
//	dir=asc|desc  sort direction
const (
	paramHide  = "hide"
	paramOrder = "order"
	paramSort  = "sort"
	paramDir   = "dir"
	filterPfx  = "f"
)

// stateFromQuery applies the query on top of base through the grid update functions.
func stateFromQuery(base grid.State, q url.Values) grid.State {
	s := base
	if order, ok := parseInts(q.Get(paramOrder)); ok {
		s, _ = grid.WithOrder(s, order)
	}
	if hidden, ok := parseInts(q.Get(paramHide)); ok {
		for _, c := range hidden {
			s, _ = grid.Update(s, grid.ColumnHidden{Column: c})
		}
	}
	for key, vals := range q {
		if !strings.HasPrefix(key, filterPfx) || len(vals) == 0 {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimPrefix(key, filterPfx))
		if err != nil {
			continue
		}
		s, _ = grid.Update(s, grid.FilterChanged{Column: idx, Value: vals[0]})
	}
	if q.Has(paramSort) {
		raw := q.Get(paramSort)
		if raw == "" || raw == "none" {
			s, _ = grid.Update(s, grid.SortChanged{Column: -1})
		} else if idx, err := strconv.Atoi(raw); err == nil {
			dir := grid.ParseDirection(q.Get(paramDir))
			if dir == grid.Unsorted {
				dir = grid.Descending
			}
			s, _ = grid.Update(s, grid.SortChanged{Column: idx, Direction: dir})
		}
	}
	return s
}

// encodeState is the inverse of stateFromQuery.
func encodeState(s grid.State) url.Values {
	q := url.Values{}
	if !isIdentity(s.Order) {
		q.Set(paramOrder, joinInts(s.Order))
	}
	if hidden := s.HiddenColumns(); len(hidden) > 0 {
		q.Set(paramHide, joinInts(hidden))
	}
	cols := make([]int, 0, len(s.Filters))
	for c := range s.Filters {
		cols = append(cols, c)
	}
	slices.Sort(cols)
	for _, c := range cols {
		q.Set(filterPfx+strconv.Itoa(c), s.Filters[c])
	}
	if s.SortCol >= 0 && s.SortDir != grid.Unsorted {
		q.Set(paramSort, strconv.Itoa(s.SortCol))
		q.Set(paramDir, s.SortDir.String())
	} else {
		q.Set(paramSort, "none")
	}
	return q
}

func parseInts(raw string) ([]int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}

func isIdentity(order []int) bool {
	for i, c := range order {
		if i != c {
			return false
		}
	}
	return true
}
