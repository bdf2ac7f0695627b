// Package config handles global jot configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global jot configuration.
type Config struct {
	// DefaultDir is the name of the default data directory (from the
	// Dirs map).
	DefaultDir string `toml:"default_dir"`

	// Dirs maps data directory names to paths.
	Dirs map[string]string `toml:"dirs"`

	// Editor is the editor for opening notes (defaults to $EDITOR).
	Editor string `toml:"editor"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output. Supported
	// values are ANSI color codes ("0" to "255") or hex ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the theme used for rendered code blocks.
	CodeTheme string `toml:"code_theme"`
}

// GetDirPath returns the path for a named data directory. An empty
// name resolves the default.
func (c *Config) GetDirPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultDir
	}
	if name == "" {
		return "", fmt.Errorf("no default data directory configured")
	}
	if c.Dirs != nil {
		if path, ok := c.Dirs[name]; ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("data directory '%s' not found in config", name)
}

// Load loads the configuration from the default location. A missing
// file yields a default config.
func Load() (*Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// DefaultPath returns the default config file path, preferring
// ~/.config/jot/config.toml.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "jot", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "jot", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}

// GetEditor returns the editor to use, falling back to $EDITOR.
func (c *Config) GetEditor() string {
	if c.Editor != "" {
		return c.Editor
	}
	return os.Getenv("EDITOR")
}
