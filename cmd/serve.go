package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dockfinder-cli/internal/web"
)

var (
	serveAddr   string
	serveSource string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the listings table over HTTP",
	Long: `Start a web server that loads the configured CSV on every page view and renders
the dock count plus an interactive table (filter, hide/show, reorder, sort).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var srcArgs []string
		if serveSource != "" {
			srcArgs = []string{serveSource}
		}
		source, err := resolveSource(srcArgs)
		if err != nil {
			return err
		}
		l, err := newLoader()
		if err != nil {
			return err
		}
		opt, err := pipelineOptions()
		if err != nil {
			return err
		}
		addr := serveAddr
		if addr == "" && cfg != nil {
			addr = cfg.ListenAddr
		}
		if addr == "" {
			addr = ":8080"
		}
		maxViews := 0
		if cfg != nil {
			maxViews = cfg.MaxViews
		}

		srv, err := web.New(web.Config{
			Addr:        addr,
			Source:      source,
			Pipeline:    opt,
			MaxViews:    maxViews,
			LoadTimeout: httpTimeout() + 5*time.Second,
		}, l, log)
		if err != nil {
			return err
		}
		hs := srv.HTTPServer()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", addr).Str("source", source).Msg("listening")
			errCh <- hs.ListenAndServe()
		}()
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Serving %s on http://%s\n", source, displayAddr(addr))

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("listen %s: %w", addr, err)
		case <-ctx.Done():
		}
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config listen_addr)")
	serveCmd.Flags().StringVar(&serveSource, "source", "", "CSV URL or path (overrides config source)")
}
