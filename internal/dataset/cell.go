package dataset

import (
	"regexp"
	"strconv"
	"strings"
)

// linkPattern accepts an optional http/https scheme, then "://", then non-whitespace.
var linkPattern = regexp.MustCompile(`^(https?)?://\S+$`)

// Cell is a display-ready cell value. Href is set only for link cells.
type Cell struct {
	Text string
	Href string
}

// IsLink reports whether the cell renders as a hyperlink.
func (c Cell) IsLink() bool { return c.Href != "" }

// IsURL reports whether the trimmed value matches the link pattern. No other validation
// is done, so malformed values that fit the pattern still count.
func IsURL(v string) bool {
	return linkPattern.MatchString(strings.TrimSpace(v))
}

// RenderCell trims raw and turns URL-looking values into links.
func RenderCell(raw string) Cell {
	v := strings.TrimSpace(raw)
	if linkPattern.MatchString(v) {
		return Cell{Text: v, Href: v}
	}
	return Cell{Text: v}
}

// RenderRows converts every row of ds into display cells.
func RenderRows(ds *Dataset) [][]Cell {
	if ds == nil {
		return nil
	}
	out := make([][]Cell, len(ds.Rows))
	for i, row := range ds.Rows {
		cells := make([]Cell, len(row))
		for j, v := range row {
			cells[j] = RenderCell(v)
		}
		out[i] = cells
	}
	return out
}

var numberCleaner = strings.NewReplacer("$", "", ",", "", "%", "")

// ParseNumber reads v as a float after dropping currency, grouping and percent marks.
func ParseNumber(v string) (float64, bool) {
	v = strings.TrimSpace(numberCleaner.Replace(v))
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	return f, err == nil
}
