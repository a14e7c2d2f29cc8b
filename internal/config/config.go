package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/dockfinder-cli/internal/utils"
)

// Global configuration structure.
type Global struct {
	// Source is the CSV URL or path shown by default.
	Source     string `mapstructure:"source" yaml:"source"`
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`
	// HTTP fetch timeout for remote sources
	HTTPTimeoutSec int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	// CSV text handling
	Encoding   string `mapstructure:"encoding" yaml:"encoding"`
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
	LazyQuotes bool   `mapstructure:"lazy_quotes" yaml:"lazy_quotes"`
	// Header fragments for the dock count and the default sort
	CountColumn string `mapstructure:"count_column" yaml:"count_column"`
	SortColumn  string `mapstructure:"sort_column" yaml:"sort_column"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// MaxViews caps how many page views the server keeps in memory.
	MaxViews int `mapstructure:"max_views" yaml:"max_views"`
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".dockfinder"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.dockfinder/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	return utils.SafeWriteFile(path, b)
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCKFINDER")
	v.AutomaticEnv()

	v.SetDefault("source", "scrape.csv")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("http_timeout_sec", 30)
	v.SetDefault("encoding", "utf-8")
	v.SetDefault("delimiter", ",")
	v.SetDefault("lazy_quotes", false)
	v.SetDefault("count_column", "contains_dock")
	v.SetDefault("sort_column", "dock")
	v.SetDefault("log_level", "info")
	v.SetDefault("max_views", 256)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.MaxViews <= 0 {
		c.MaxViews = 256
	}
	return &c, nil
}

// DelimiterRune maps the configured delimiter name to a rune.
func (c *Global) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "", ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	case "|", "pipe":
		return '|', nil
	}
	return 0, fmt.Errorf("unsupported delimiter: %q (use ','|';'|'tab'|'|')", c.Delimiter)
}
