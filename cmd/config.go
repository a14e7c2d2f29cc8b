package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/dockfinder-cli/internal/config"
	"github.com/KaramelBytes/dockfinder-cli/internal/loader"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set dockfinder configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "source: %s\n", cfg.Source)
		fmt.Fprintf(out, "listen_addr: %s\n", cfg.ListenAddr)
		fmt.Fprintf(out, "http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		fmt.Fprintf(out, "encoding: %s\n", cfg.Encoding)
		fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		fmt.Fprintf(out, "lazy_quotes: %t\n", cfg.LazyQuotes)
		fmt.Fprintf(out, "count_column: %s\n", cfg.CountColumn)
		fmt.Fprintf(out, "sort_column: %s\n", cfg.SortColumn)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "max_views: %d\n", cfg.MaxViews)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := setConfigKey(cfg, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func setConfigKey(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "source":
		c.Source = val
	case "listen_addr":
		c.ListenAddr = val
	case "http_timeout_sec":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid int for http_timeout_sec: %v", val)
		}
		c.HTTPTimeoutSec = i
	case "encoding":
		if !loader.ValidEncoding(val) {
			return fmt.Errorf("invalid encoding: %s (use utf-8|latin1|windows-1252)", val)
		}
		c.Encoding = strings.ToLower(val)
	case "delimiter":
		prev := c.Delimiter
		c.Delimiter = val
		if _, err := c.DelimiterRune(); err != nil {
			c.Delimiter = prev
			return err
		}
	case "lazy_quotes":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for lazy_quotes: %w", err)
		}
		c.LazyQuotes = b
	case "count_column":
		c.CountColumn = val
	case "sort_column":
		c.SortColumn = val
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
		}
	case "max_views":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid int for max_views: %v", val)
		}
		c.MaxViews = i
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
