// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config holds all addressbook configuration.
type Config struct {
	Log     Log     `yaml:"log"`
	Display Display `yaml:"display"`
	Browse  Browse  `yaml:"browse"`
}

// Log holds logger settings.
type Log struct {
	Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
	File   string `yaml:"file"`   // Empty logs to stderr.
	Format string `yaml:"format"` // "console" | "json"
}

// Display holds output settings for listing commands.
type Display struct {
	Plain bool `yaml:"plain"` // Never style output, even on a TTY.
}

// Browse holds settings for the interactive browser.
type Browse struct {
	Demo bool `yaml:"demo"` // Seed the session with the demo contacts.
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Log: Log{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files and empty paths are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable. All problems are reported together.
func (c *Config) Validate() error {
	var err error
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		err = multierr.Append(err, fmt.Errorf("config: log.format must be \"console\" or \"json\", got %q", c.Log.Format))
	}
	return err
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ADDRESSBOOK_LOG_LEVEL, ADDRESSBOOK_LOG_FILE, ADDRESSBOOK_PLAIN.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ADDRESSBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ADDRESSBOOK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("ADDRESSBOOK_PLAIN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid ADDRESSBOOK_PLAIN %q: %w", v, err)
		}
		c.Display.Plain = b
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Log     *rawLog     `yaml:"log"`
	Display *rawDisplay `yaml:"display"`
	Browse  *rawBrowse  `yaml:"browse"`
}

type rawLog struct {
	Level  *string `yaml:"level"`
	File   *string `yaml:"file"`
	Format *string `yaml:"format"`
}

type rawDisplay struct {
	Plain *bool `yaml:"plain"`
}

type rawBrowse struct {
	Demo *bool `yaml:"demo"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
		if layer.Log.Format != nil {
			c.Log.Format = *layer.Log.Format
		}
	}
	if layer.Display != nil && layer.Display.Plain != nil {
		c.Display.Plain = *layer.Display.Plain
	}
	if layer.Browse != nil && layer.Browse.Demo != nil {
		c.Browse.Demo = *layer.Browse.Demo
	}
}
