package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/dockfinder-cli/internal/dataset"
)

// Column kinds.
const (
	KindEmpty       = "empty"
	KindNumeric     = "numeric"
	KindBoolean     = "boolean"
	KindLink        = "link"
	KindCategorical = "categorical"
	KindText        = "text"
)

// Options controls profiling.
type Options struct {
	// TopValues caps the most frequent values kept for categorical columns.
	TopValues int
	// MaxCategories is the unique-value ceiling for a column to count as categorical.
	MaxCategories int
}

// DefaultOptions returns reasonable defaults for listing data.
func DefaultOptions() Options {
	return Options{TopValues: 5, MaxCategories: 20}
}

// Report describes every column of a dataset.
type Report struct {
	Name string
	Rows int
	Cols []ColumnSummary
}

// ColumnSummary captures the inferred kind and statistics of one column.
type ColumnSummary struct {
	Index    int
	Name     string
	Kind     string
	NonEmpty int
	Missing  int
	Unique   int
	// Numeric stats
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	// Boolean columns: count of "true" cells
	True int
	Top  []CategoryCount
}

// CategoryCount is a value and how often it occurs.
type CategoryCount struct {
	Value string
	Count int
}

// Profile summarizes each column of ds. name is only used as a label.
func Profile(ds *dataset.Dataset, name string, opt Options) *Report {
	if opt.TopValues <= 0 {
		opt.TopValues = DefaultOptions().TopValues
	}
	if opt.MaxCategories <= 0 {
		opt.MaxCategories = DefaultOptions().MaxCategories
	}
	rep := &Report{Name: name}
	if ds == nil {
		return rep
	}
	rep.Rows = ds.Len()
	for idx, col := range ds.Header {
		rep.Cols = append(rep.Cols, profileColumn(ds, idx, col, opt))
	}
	return rep
}

func profileColumn(ds *dataset.Dataset, idx int, name string, opt Options) ColumnSummary {
	s := ColumnSummary{Index: idx, Name: name}
	counts := map[string]int{}
	var nums []float64
	var bools, links int
	for _, row := range ds.Rows {
		v := ""
		if idx < len(row) {
			v = strings.TrimSpace(row[idx])
		}
		if v == "" {
			s.Missing++
			continue
		}
		s.NonEmpty++
		counts[v]++
		if f, ok := dataset.ParseNumber(v); ok {
			nums = append(nums, f)
		}
		switch strings.ToLower(v) {
		case "true":
			bools++
			s.True++
		case "false":
			bools++
		}
		if dataset.IsURL(v) {
			links++
		}
	}
	s.Unique = len(counts)

	switch {
	case s.NonEmpty == 0:
		s.Kind = KindEmpty
	case bools == s.NonEmpty:
		s.Kind = KindBoolean
	case len(nums) == s.NonEmpty:
		s.Kind = KindNumeric
		s.Min, s.Max, s.Mean, s.Median = numStats(nums)
	case links == s.NonEmpty:
		s.Kind = KindLink
	case s.Unique <= opt.MaxCategories && s.Unique < s.NonEmpty:
		s.Kind = KindCategorical
		s.Top = topValues(counts, opt.TopValues)
	default:
		s.Kind = KindText
	}
	return s
}

func numStats(vals []float64) (lo, hi, mean, median float64) {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	var sum float64
	for _, v := range cp {
		sum += v
	}
	return cp[0], cp[len(cp)-1], sum / float64(len(cp)), quantile(cp, 0.5)
}

func topValues(counts map[string]int, n int) []CategoryCount {
	tops := make([]CategoryCount, 0, len(counts))
	for k, v := range counts {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > n {
		tops = tops[:n]
	}
	return tops
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Details renders the kind-specific part of a column summary on one line.
func (c ColumnSummary) Details() string {
	switch c.Kind {
	case KindNumeric:
		return fmt.Sprintf("min %.4g, max %.4g, mean %.4g, median %.4g", c.Min, c.Max, c.Mean, c.Median)
	case KindBoolean:
		return fmt.Sprintf("true %d of %d", c.True, c.NonEmpty)
	case KindCategorical:
		parts := make([]string, len(c.Top))
		for i, kv := range c.Top {
			parts[i] = fmt.Sprintf("%s(%d)", kv.Value, kv.Count)
		}
		return "top: " + strings.Join(parts, ", ")
	}
	return ""
}

// Markdown renders the report as a compact schema listing.
func (r *Report) Markdown() string {
	var b strings.Builder
	if r.Name != "" {
		fmt.Fprintf(&b, "# %s\n\n", r.Name)
	}
	fmt.Fprintf(&b, "Rows: %d\nColumns: %d\n\n", r.Rows, len(r.Cols))
	for _, c := range r.Cols {
		fmt.Fprintf(&b, "- [%d] %s: %s (non-empty %d, missing %d, unique %d)", c.Index, c.Name, c.Kind, c.NonEmpty, c.Missing, c.Unique)
		if d := c.Details(); d != "" {
			b.WriteString("; " + d)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
