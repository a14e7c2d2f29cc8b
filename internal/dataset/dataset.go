package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Options controls how CSV text is split into records.
type Options struct {
	// Delimiter for CSV. If 0, defaults to ','.
	Delimiter rune
	// LazyQuotes tolerates bare quotes inside unquoted fields.
	LazyQuotes bool
}

// DefaultOptions returns comma-separated, strict quoting.
func DefaultOptions() Options {
	return Options{Delimiter: ','}
}

// Dataset is the parsed header plus data rows of one CSV resource.
// It is never mutated after Parse returns.
type Dataset struct {
	Header []string
	Rows   [][]string
}

// Width returns the number of header columns.
func (d *Dataset) Width() int {
	if d == nil {
		return 0
	}
	return len(d.Header)
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// ParseError reports malformed CSV text.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse csv: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse csv: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse splits CSV text into a header and data rows. The first non-blank record is the
// header. Text with no records yields an empty dataset and no error.
func Parse(text string, opt Options) (*Dataset, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = ','
	}
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = opt.LazyQuotes

	ds := &Dataset{}
	haveHeader := false
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &ParseError{Line: pe.Line, Err: pe.Err}
			}
			return nil, &ParseError{Err: err}
		}
		trimmed := trimAll(rec)
		if isBlank(trimmed) {
			continue
		}
		if !haveHeader {
			ds.Header = trimmed
			haveHeader = true
			continue
		}
		ds.Rows = append(ds.Rows, fitWidth(trimmed, len(ds.Header)))
	}
	return ds, nil
}

func trimAll(rec []string) []string {
	out := make([]string, len(rec))
	for i, v := range rec {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if v != "" {
			return false
		}
	}
	return true
}

// fitWidth pads short rows and drops cells past the header width.
func fitWidth(rec []string, n int) []string {
	if len(rec) == n {
		return rec
	}
	out := make([]string, n)
	copy(out, rec)
	return out
}
