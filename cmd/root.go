package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/dockfinder-cli/internal/config"
	"github.com/KaramelBytes/dockfinder-cli/internal/logging"
)

var (
	// Global flags
	cfgFile      string
	debug        bool
	flagLogLevel string
	// HTTP flag (overrides config if set)
	flagHTTPTimeoutSec int

	// Loaded configuration
	cfg *cfgpkg.Global
	log = zerolog.Nop()
	// logOut is where log lines go; tests swap it.
	logOut io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:   "dockfinder",
	Short: "dockfinder: browse a listings CSV as a filterable table",
	Long: `dockfinder fetches a listings CSV (URL or path), counts the rows whose "contains_dock"
column is true, and shows the data as a searchable, sortable table in the terminal or in
the browser.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.dockfinder/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP fetch timeout in seconds (overrides config)")
}

func loadConfig() {
	// .env is optional
	_ = godotenv.Load()

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{}
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("log-level") && flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	log = logging.New(logOut, level)
	log.Debug().Str("source", cfg.Source).Str("config", cfgFile).Msg("config loaded")
}
