// Package config loads rowc settings from a TOML or YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the config file format.
type Format int

const (
	// FormatAuto picks the format from the file extension.
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config holds the complete rowc configuration.
type Config struct {
	Output OutputConfig `toml:"output" yaml:"output"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"` // text or yaml
	Color  bool   `toml:"color" yaml:"color"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn, error
	Format string `toml:"format" yaml:"format"` // text or json
}

var (
	outputFormats = []string{"text", "yaml"}
	logLevels     = []string{"debug", "info", "warn", "error"}
	logFormats    = []string{"text", "json"}
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{Format: "text", Color: true},
		Log:    LogConfig{Level: "warn", Format: "text"},
	}
}

// Load reads path on top of the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	return LoadWithFormat(path, FormatAuto)
}

// LoadWithFormat is Load with an explicit file format.
func LoadWithFormat(path string, format Format) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if format == FormatAuto {
		format, err = detectFormat(path)
		if err != nil {
			return nil, err
		}
	}
	if err := cfg.decode(string(data), format); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromString decodes content in the given format on top of the defaults.
func LoadFromString(content string, format Format) (*Config, error) {
	if format == FormatAuto {
		return nil, fmt.Errorf("config: format must be explicit for string content")
	}
	cfg := Default()
	if err := cfg.decode(content, format); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) decode(content string, format Format) error {
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(content, c); err != nil {
			return fmt.Errorf("parse toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal([]byte(content), c); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %s", format)
	}
	return nil
}

func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatAuto, fmt.Errorf("config: cannot detect format of %s", path)
	}
}

// Validate rejects unknown enumerated values.
func (c *Config) Validate() error {
	if !slices.Contains(outputFormats, c.Output.Format) {
		return fmt.Errorf("output.format: unknown value %q (want one of %s)",
			c.Output.Format, strings.Join(outputFormats, ", "))
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level: unknown value %q (want one of %s)",
			c.Log.Level, strings.Join(logLevels, ", "))
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format: unknown value %q (want one of %s)",
			c.Log.Format, strings.Join(logFormats, ", "))
	}
	return nil
}
