// Package pipeline runs the fetch, transform and render sequence for one page view.
package pipeline

import (
	"context"
	"fmt"

	"github.com/KaramelBytes/dockfinder-cli/internal/dataset"
	"github.com/KaramelBytes/dockfinder-cli/internal/grid"
)

// Fetcher retrieves raw CSV text.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) (string, error)
}

// Options names the columns the transform looks for.
type Options struct {
	Parse      dataset.Options
	CountMatch string
	SortMatch  string
}

// DefaultOptions matches "contains_dock" for the count and "dock" for the sort.
func DefaultOptions() Options {
	return Options{
		Parse:      dataset.DefaultOptions(),
		CountMatch: dataset.DockColumn,
		SortMatch:  dataset.DockSortColumn,
	}
}

// Callbacks receive pipeline output. Nil callbacks are skipped.
type Callbacks struct {
	OnSummary func(dataset.Summary)
	OnGrid    func(*dataset.Dataset, grid.State)
}

// Result is the outcome of a successful run.
type Result struct {
	Dataset *dataset.Dataset
	Summary dataset.Summary
	State   grid.State
}

// Run fetches locator and processes it. Fetch failures end in a failed summary.
func Run(ctx context.Context, f Fetcher, locator string, opt Options, cb Callbacks) (*Result, error) {
	cb.summary(dataset.Summary{State: dataset.SummaryLoading})
	text, err := f.Fetch(ctx, locator)
	if err != nil {
		cb.summary(dataset.Summary{State: dataset.SummaryFailed, Err: err})
		return nil, fmt.Errorf("load %s: %w", locator, err)
	}
	return process(text, opt, cb)
}

// Process transforms already-fetched text and emits the summary and grid.
func Process(text string, opt Options, cb Callbacks) (*Result, error) {
	cb.summary(dataset.Summary{State: dataset.SummaryLoading})
	return process(text, opt, cb)
}

func process(text string, opt Options, cb Callbacks) (*Result, error) {
	ds, err := dataset.Parse(text, opt.Parse)
	if err != nil {
		cb.summary(dataset.Summary{State: dataset.SummaryFailed, Err: err})
		return nil, err
	}
	res := &Result{
		Dataset: ds,
		Summary: dataset.Summarize(ds, opt.CountMatch),
		State:   grid.DefaultState(ds, opt.SortMatch),
	}
	cb.summary(res.Summary)
	if cb.OnGrid != nil {
		cb.OnGrid(ds, res.State)
	}
	return res, nil
}

func (cb Callbacks) summary(s dataset.Summary) {
	if cb.OnSummary != nil {
		cb.OnSummary(s)
	}
}
