// Package config holds the run settings of the cascade command. Values come
// from defaults, then an optional TOML or YAML file, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileName is looked up in the working directory when no file is given.
const FileName = ".cascade.toml"

type PlotConfig struct {
	Width   float64 `toml:"width" yaml:"width"`   // inches
	Height  float64 `toml:"height" yaml:"height"` // inches
	Columns []int   `toml:"columns" yaml:"columns"`
	LogX    *bool   `toml:"log_x" yaml:"log_x"` // nil follows the sweep
}

type Config struct {
	LogLevel  string     `toml:"log_level" yaml:"log_level"`
	LogFormat string     `toml:"log_format" yaml:"log_format"`
	Workers   int        `toml:"workers" yaml:"workers"`
	Verify    bool       `toml:"verify" yaml:"verify"`
	Plot      PlotConfig `toml:"plot" yaml:"plot"`
}

func Default() Config {
	return Config{
		LogLevel:  "warn",
		LogFormat: "text",
		Workers:   1,
		Plot: PlotConfig{
			Width:  6,
			Height: 4,
		},
	}
}

// DefaultConfigToml documents every key with its default value.
const DefaultConfigToml = `# cascade configuration

# debug, info, warn or error
log_level = "warn"
# text or json
log_format = "text"
# goroutines evaluating the sweep, 1 evaluates lazily in order
workers = 1
# cross-check every sample against a nodal solution
verify = false

[plot]
width = 6.0
height = 4.0
# 1-based result columns to plot, e.g. [1, 3]
columns = []
# log_x = true
`

// Load reads path on top of the defaults. The format follows the extension:
// .yaml and .yml are YAML, anything else TOML.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("decoding %s: %w", path, err)
		}
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("decoding %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromRoot loads dir/.cascade.toml, or the defaults when it does not exist.
func LoadFromRoot(dir string) (Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q", c.LogFormat)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		return fmt.Errorf("plot size must be positive, got %gx%g", c.Plot.Width, c.Plot.Height)
	}
	for _, col := range c.Plot.Columns {
		if col < 1 {
			return fmt.Errorf("plot columns are 1-based, got %d", col)
		}
	}
	return nil
}
