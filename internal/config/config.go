// Package config loads the optional TOML config file from the beebloom
// config directory. Everything has a sensible default; a missing file is not
// an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/IlyaKukarkin/bee-bloom/internal/constants"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Widget  WidgetConfig  `toml:"widget"`
	Habits  HabitsConfig  `toml:"habits"`
	Logging LoggingConfig `toml:"logging"`
}

type StorageConfig struct {
	// Path to the persisted store file. A .json suffix selects the JSON
	// backend, anything else SQLite.
	Path string `toml:"path"`
}

type WidgetConfig struct {
	// Size is the default widget size: small, medium, or large.
	Size string `toml:"size"`
}

type HabitsConfig struct {
	// Palette overrides the default color rotation for new habits.
	Palette []string `toml:"palette"`
}

type LoggingConfig struct {
	Debug bool `toml:"debug"`
}

// Dir returns the beebloom config directory, honoring BEEBLOOM_CONFIG_DIR
// for tests and sandboxes.
func Dir() string {
	if dir := os.Getenv("BEEBLOOM_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", constants.AppName)
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Storage: StorageConfig{Path: filepath.Join(Dir(), constants.DefaultDBFileName)},
		Widget:  WidgetConfig{Size: "medium"},
		Habits:  HabitsConfig{Palette: append([]string(nil), constants.DefaultPalette...)},
	}
}

// Load reads the config file at path, falling back to defaults for missing
// fields. A missing file returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// LoadDefault reads config.toml from the config directory.
func LoadDefault() (Config, error) {
	return Load(filepath.Join(Dir(), "config.toml"))
}

func (c *Config) validate() error {
	switch c.Widget.Size {
	case "", "small", "medium", "large":
	default:
		return fmt.Errorf("widget.size must be small, medium, or large, got %q", c.Widget.Size)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path must not be empty")
	}
	for _, color := range c.Habits.Palette {
		if color == "" {
			return fmt.Errorf("habits.palette entries must not be empty")
		}
	}
	return nil
}
