package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/KaramelBytes/dockfinder-cli/internal/dataset"
	"github.com/KaramelBytes/dockfinder-cli/internal/loader"
	"github.com/KaramelBytes/dockfinder-cli/internal/pipeline"
	"github.com/KaramelBytes/dockfinder-cli/internal/termview"
)

func httpTimeout() time.Duration {
	if cfg == nil || cfg.HTTPTimeoutSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(cfg.HTTPTimeoutSec) * time.Second
}

func newLoader() (*loader.Loader, error) {
	enc := ""
	if cfg != nil {
		enc = cfg.Encoding
	}
	if !loader.ValidEncoding(enc) {
		return nil, fmt.Errorf("unsupported encoding: %s (use utf-8|latin1|windows-1252)", enc)
	}
	return loader.New(httpTimeout(), enc, log), nil
}

func pipelineOptions() (pipeline.Options, error) {
	opt := pipeline.DefaultOptions()
	if cfg == nil {
		return opt, nil
	}
	d, err := cfg.DelimiterRune()
	if err != nil {
		return opt, err
	}
	opt.Parse = dataset.Options{Delimiter: d, LazyQuotes: cfg.LazyQuotes}
	if cfg.CountColumn != "" {
		opt.CountMatch = cfg.CountColumn
	}
	if cfg.SortColumn != "" {
		opt.SortMatch = cfg.SortColumn
	}
	return opt, nil
}

// resolveSource prefers the positional argument over the configured source.
func resolveSource(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg != nil && cfg.Source != "" {
		return cfg.Source, nil
	}
	return "", fmt.Errorf("no source given: pass a CSV path/URL or set 'source' in config")
}

// loadSource runs the pipeline and prints the final summary line to out.
func loadSource(ctx context.Context, out io.Writer, args []string) (*pipeline.Result, error) {
	source, err := resolveSource(args)
	if err != nil {
		return nil, err
	}
	l, err := newLoader()
	if err != nil {
		return nil, err
	}
	opt, err := pipelineOptions()
	if err != nil {
		return nil, err
	}
	var last dataset.Summary
	res, err := pipeline.Run(ctx, l, source, opt, pipeline.Callbacks{
		OnSummary: func(s dataset.Summary) {
			log.Debug().Str("state", s.State.String()).Msg(s.Text())
			last = s
		},
	})
	if werr := termview.WriteSummary(out, last); werr != nil {
		return nil, werr
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
