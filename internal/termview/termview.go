package termview

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/KaramelBytes/dockfinder-cli/internal/analysis"
	"github.com/KaramelBytes/dockfinder-cli/internal/dataset"
	"github.com/KaramelBytes/dockfinder-cli/internal/grid"
)

// WriteSummary prints the one-line dock summary.
func WriteSummary(w io.Writer, s dataset.Summary) error {
	_, err := fmt.Fprintln(w, s.Text())
	return err
}

// WriteFrame prints the frame as a bordered table followed by a row count.
func WriteFrame(w io.Writer, f grid.Frame) error {
	if len(f.Columns) == 0 {
		_, err := fmt.Fprintln(w, "(no visible columns)")
		return err
	}
	header := make([]any, len(f.Columns))
	for i, c := range f.Columns {
		name := c.Name
		if c.Index == f.SortCol {
			switch f.SortDir {
			case grid.Ascending:
				name += " ▲"
			case grid.Descending:
				name += " ▼"
			}
		}
		header[i] = name
	}
	rows := make([][]string, len(f.Rows))
	for i, r := range f.Rows {
		cells := make([]string, len(r))
		for j, c := range r {
			cells[j] = c.Text
		}
		rows[i] = cells
	}

	table := tablewriter.NewTable(w)
	table.Header(header...)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	_, err := fmt.Fprintf(w, "Showing %d of %d rows\n", len(f.Rows), f.Total)
	return err
}

// WriteProfile prints one line per column: index, name, kind and statistics.
func WriteProfile(w io.Writer, r *analysis.Report) error {
	table := tablewriter.NewTable(w)
	table.Header("#", "Column", "Kind", "Non-empty", "Missing", "Unique", "Details")
	for _, c := range r.Cols {
		row := []string{
			strconv.Itoa(c.Index), c.Name, c.Kind,
			strconv.Itoa(c.NonEmpty), strconv.Itoa(c.Missing), strconv.Itoa(c.Unique),
			c.Details(),
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("render profile: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render profile: %w", err)
	}
	_, err := fmt.Fprintf(w, "%d rows, %d columns\n", r.Rows, len(r.Cols))
	return err
}
