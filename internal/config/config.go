// Package config handles the yeahyeah configuration directory and the
// settings document that decides which plugins are registered.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// EnvConfigDir overrides the configuration directory.
	EnvConfigDir = "YEAHYEAH_CONFIG_DIR"

	// SettingsFileName is the settings document inside the configuration directory.
	SettingsFileName = "settings.toml"
)

// Settings is the global yeahyeah settings document.
type Settings struct {
	// Plugins lists plugin identifiers, registered in this order.
	Plugins []string `toml:"plugins"`

	// Editor is used by edit_settings actions (defaults to $EDITOR).
	Editor string `toml:"editor"`

	// Terminal is the terminal emulator opened by path items (defaults to konsole).
	Terminal string `toml:"terminal"`

	// AccentColor styles headings and paths (ANSI code or hex, "none" disables).
	AccentColor string `toml:"accent_color"`
}

// DefaultPlugins are registered when no settings document exists yet.
var DefaultPlugins = []string{"url_patterns", "path_items", "window_raiser"}

// DefaultSettings returns the settings written on first run.
func DefaultSettings() *Settings {
	return &Settings{Plugins: append([]string(nil), DefaultPlugins...)}
}

// DefaultDir returns ~/.config/yeahyeah, falling back to the OS-specific
// user config directory.
func DefaultDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "yeahyeah")
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "yeahyeah")
	}
	return filepath.Join(".", ".yeahyeah")
}

// ResolveDir picks the configuration directory: explicit value, then
// $YEAHYEAH_CONFIG_DIR, then DefaultDir.
func ResolveDir(explicit string) string {
	if dir := strings.TrimSpace(explicit); dir != "" {
		return dir
	}
	if dir := strings.TrimSpace(os.Getenv(EnvConfigDir)); dir != "" {
		return dir
	}
	return DefaultDir()
}

// SettingsPath returns the settings document path inside dir.
func SettingsPath(dir string) string {
	return filepath.Join(dir, SettingsFileName)
}

// LoadFrom loads the settings document at path.
func LoadFrom(path string) (*Settings, error) {
	var settings Settings
	if _, err := toml.DecodeFile(path, &settings); err != nil {
		return nil, fmt.Errorf("could not read settings file %s: %w", path, err)
	}
	return &settings, nil
}

// LoadOrCreate loads the settings document in dir. When it does not exist
// the default document is written first and created is true.
func LoadOrCreate(dir string) (settings *Settings, created bool, err error) {
	path := SettingsPath(dir)
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		if err := SaveTo(path, DefaultSettings()); err != nil {
			return nil, false, err
		}
		created = true
	}
	settings, err = LoadFrom(path)
	return settings, created, err
}
