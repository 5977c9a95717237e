// Package config loads kmpbench settings from an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up when no path is given.
const DefaultFile = "kmpbench.yaml"

// Config holds every setting the CLI understands. Zero values are replaced
// by Default() values when a file omits them.
type Config struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Workers  int    `yaml:"workers"`
	Store    string `yaml:"store"`
	NoStore  bool   `yaml:"no_store"`
	LogLevel string `yaml:"log_level"`
	Color    string `yaml:"color"`
}

// Default returns the built-in settings: datasets in input/, results in
// output/, one worker per CPU, history in output/history.db.
func Default() Config {
	return Config{
		Input:    "input",
		Output:   "output",
		Workers:  runtime.NumCPU(),
		Store:    "output/history.db",
		LogLevel: "info",
		Color:    "auto",
	}
}

// Load reads path and overlays it on Default(). A missing file is not an
// error when path is DefaultFile, so the CLI works with zero configuration.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultFile {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML data over Default(). Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	var file Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.merge(file)
	return cfg, cfg.Validate()
}

// merge copies every non-zero field of o into c.
func (c *Config) merge(o Config) {
	if o.Input != "" {
		c.Input = o.Input
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.Store != "" {
		c.Store = o.Store
	}
	if o.NoStore {
		c.NoStore = true
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.Color != "" {
		c.Color = o.Color
	}
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	return nil
}

// Marshal renders c as YAML, used by "kmpbench config".
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
