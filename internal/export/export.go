// Package export writes the visible grid to CSV or XLSX files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/dockfinder-cli/internal/grid"
	"github.com/KaramelBytes/dockfinder-cli/internal/utils"
)

const sheetName = "Listings"

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export extension %q (use .csv or .xlsx)", filepath.Ext(path))
}

// WriteFile writes f to path atomically in the format implied by its extension.
func WriteFile(path string, f grid.Frame) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	switch format {
	case FormatCSV:
		err = WriteCSV(&buf, f)
	case FormatXLSX:
		err = WriteXLSX(&buf, f)
	}
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

// WriteCSV writes the header and rows of f as CSV.
func WriteCSV(w io.Writer, f grid.Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header(f)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range f.Rows {
		rec := make([]string, len(row))
		for i, c := range row {
			rec[i] = c.Text
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes f as a single-sheet workbook. Link cells become hyperlinks.
func WriteXLSX(w io.Writer, f grid.Frame) error {
	x := excelize.NewFile()
	defer x.Close()
	if err := x.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	hdr := header(f)
	headerRow := make([]any, len(hdr))
	for i, h := range hdr {
		headerRow[i] = h
	}
	if err := x.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for r, row := range f.Rows {
		values := make([]any, len(row))
		for i, c := range row {
			values[i] = c.Text
		}
		start, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := x.SetSheetRow(sheetName, start, &values); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
		for i, c := range row {
			if !c.IsLink() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return err
			}
			if err := x.SetCellHyperLink(sheetName, cell, c.Href, "External"); err != nil {
				return fmt.Errorf("link %s: %w", cell, err)
			}
		}
	}
	if len(hdr) > 0 {
		last, err := excelize.CoordinatesToCellName(len(hdr), 1)
		if err != nil {
			return err
		}
		if err := x.AutoFilter(sheetName, "A1:"+last, nil); err != nil {
			return fmt.Errorf("autofilter: %w", err)
		}
	}
	if err := x.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func header(f grid.Frame) []string {
	out := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		out[i] = c.Name
	}
	return out
}
