// Package config handles global magpie configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global magpie configuration, loaded from
// ~/.config/magpie/config.toml (or $MAGPIE_CONFIG).
type Config struct {
	// Database is the default store path used when neither --db nor
	// $MAGPIE_DB is given.
	Database string `toml:"database"`

	// Format is the default output format for document bodies: "json" or
	// "yaml". Empty means json.
	Format string `toml:"format"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown
	// rendering. Supported values are ANSI color codes ("0" to "255") or hex
	// colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown
	// code blocks, e.g. "monokai", "dracula", "github".
	CodeTheme string `toml:"code_theme"`
}

// Load loads the configuration from $MAGPIE_CONFIG or the default location.
// A missing file is not an error; it yields the zero config.
func Load() (*Config, error) {
	path := ResolvePath("")
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

// ResolvePath returns the config file path: the explicit flag value if set,
// then $MAGPIE_CONFIG, then the default location.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("MAGPIE_CONFIG"); env != "" {
		return env
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path. The XDG-style
// ~/.config/magpie/config.toml wins when it exists; otherwise the
// OS-specific user config dir is used.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "magpie", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "magpie", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// ResolveDatabasePath picks the store path: --db flag, then $MAGPIE_DB, then
// the config file, then the default data location.
func ResolveDatabasePath(flagValue string, cfg *Config) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("MAGPIE_DB"); env != "" {
		return env
	}
	if cfg != nil && cfg.Database != "" {
		return cfg.Database
	}
	return DefaultDatabasePath()
}

// DefaultDatabasePath returns the fallback store location:
// $XDG_DATA_HOME/magpie/magpie.db or ~/.local/share/magpie/magpie.db.
func DefaultDatabasePath() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "magpie", "magpie.db")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "magpie", "magpie.db")
	}
	return filepath.Join(".", "magpie.db")
}

// HistoryPath returns where the interactive shell persists its input
// history, next to the config file.
func HistoryPath() string {
	return filepath.Join(filepath.Dir(DefaultPath()), "history")
}

// DefaultFormat returns the configured document output format, defaulting
// to json. Unknown values fall back to json as well.
func (c *Config) DefaultFormat() string {
	if c != nil && c.Format == "yaml" {
		return "yaml"
	}
	return "json"
}
