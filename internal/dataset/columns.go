package dataset

import (
	"fmt"
	"strings"
)

const (
	// DockColumn is the header fragment that marks the dock indicator column.
	DockColumn = "contains_dock"
	// DockSortColumn is the header fragment used to pick the default sort column.
	DockSortColumn = "dock"
)

// FindColumn returns the index of the first header whose name contains needle,
// compared case-insensitively.
func FindColumn(header []string, needle string) (int, bool) {
	n := strings.ToLower(needle)
	for i, h := range header {
		if strings.Contains(strings.ToLower(h), n) {
			return i, true
		}
	}
	return -1, false
}

// IsTrue reports whether a cell holds the literal "true" (trimmed, any case).
func IsTrue(v string) bool {
	return strings.ToLower(strings.TrimSpace(v)) == "true"
}

// CountTrue counts rows whose cell at idx is true.
func CountTrue(ds *Dataset, idx int) int {
	if ds == nil || idx < 0 {
		return 0
	}
	n := 0
	for _, row := range ds.Rows {
		if idx < len(row) && IsTrue(row[idx]) {
			n++
		}
	}
	return n
}

// SummaryState distinguishes the summary line variants.
type SummaryState int

const (
	SummaryLoading SummaryState = iota
	SummaryCounted
	SummaryNoColumn
	SummaryFailed
)

func (s SummaryState) String() string {
	switch s {
	case SummaryLoading:
		return "loading"
	case SummaryCounted:
		return "counted"
	case SummaryNoColumn:
		return "no_column"
	case SummaryFailed:
		return "failed"
	}
	return "unknown"
}

// Summary is the one-line dock count shown above the grid.
type Summary struct {
	State  SummaryState
	Column int
	Count  int
	Err    error
}

// Summarize locates the indicator column by needle and counts true rows.
func Summarize(ds *Dataset, needle string) Summary {
	idx, ok := FindColumn(ds.headerOrNil(), needle)
	if !ok {
		return Summary{State: SummaryNoColumn, Column: -1}
	}
	return Summary{State: SummaryCounted, Column: idx, Count: CountTrue(ds, idx)}
}

// Text renders the summary for display.
func (s Summary) Text() string {
	switch s.State {
	case SummaryLoading:
		return "Loading..."
	case SummaryNoColumn:
		return "No docks near you"
	case SummaryFailed:
		return "Failed to load data"
	}
	if s.Count == 1 {
		return "1 listing with a dock"
	}
	return fmt.Sprintf("%d listings with a dock", s.Count)
}

func (d *Dataset) headerOrNil() []string {
	if d == nil {
		return nil
	}
	return d.Header
}
