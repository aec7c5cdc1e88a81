// Package config loads settings for the translations-manager command.
//
// Settings come from an optional TOML file:
//
//	indent = 2     # spaces per nesting level in rewritten files
//	jobs = 4       # files cleaned concurrently
//	color = "auto" # auto | on | off
//	debug = false
//
// Missing keys keep their defaults. Command-line flags override the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "translations-manager.toml"

// Color modes.
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

// Config holds command settings.
type Config struct {
	// Indent is the number of spaces per nesting level in output.
	Indent int `toml:"indent"`
	// Jobs is the maximum number of files cleaned at once.
	Jobs int `toml:"jobs"`
	// Color selects colored output (auto|on|off).
	Color string `toml:"color"`
	// Debug enables debug logging.
	Debug bool `toml:"debug"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Indent: 2,
		Jobs:   runtime.NumCPU(),
		Color:  ColorAuto,
	}
}

// Load reads the TOML file at path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// LoadOptional loads path when given. With an empty path it loads
// DefaultFile if present and falls back to the defaults otherwise.
func LoadOptional(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}

	if _, err := os.Stat(DefaultFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return Config{}, fmt.Errorf("failed to stat %s: %w", DefaultFile, err)
	}

	return Load(DefaultFile)
}

// Validate checks the settings for values the cleaner cannot use.
func (c Config) Validate() error {
	if c.Indent < 1 || c.Indent > 9 {
		return fmt.Errorf("indent must be between 1 and 9, got %d", c.Indent)
	}

	switch c.Color {
	case ColorAuto, ColorOn, ColorOff:
	default:
		return fmt.Errorf("unsupported color mode %q (auto|on|off)", c.Color)
	}

	return nil
}

// applyDefaults fills in values left at zero.
func applyDefaults(c *Config) {
	if c.Jobs <= 0 {
		c.Jobs = runtime.NumCPU()
	}

	if c.Color == "" {
		c.Color = ColorAuto
	}
}
