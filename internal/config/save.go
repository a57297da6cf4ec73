package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/yeahyeah/yeahyeah/internal/atomicfile"
)

const settingsHeader = `# yeahyeah settings
#
# plugins: identifiers of the plugins to register, in order.
#   url_patterns, path_items, window_raiser, timelog, directory
# editor: command used by "admin <plugin> edit_settings" (defaults to $EDITOR)
# terminal: terminal emulator opened by path items (defaults to konsole)
# accent_color: ANSI code or hex color for headings, "none" to disable

`

type persistedSettings struct {
	Plugins  []string `toml:"plugins"`
	Editor   *string  `toml:"editor,omitempty"`
	Terminal *string  `toml:"terminal,omitempty"`
	Accent   *string  `toml:"accent_color,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SaveTo writes settings to path atomically.
func SaveTo(path string, settings *Settings) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("settings path is required")
	}
	if settings == nil {
		settings = &Settings{}
	}

	out := persistedSettings{
		Plugins:  settings.Plugins,
		Editor:   nonEmptyPtr(settings.Editor),
		Terminal: nonEmptyPtr(settings.Terminal),
		Accent:   nonEmptyPtr(settings.AccentColor),
	}
	if out.Plugins == nil {
		out.Plugins = []string{}
	}

	var buf bytes.Buffer
	buf.WriteString(settingsHeader)
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}

	return nil
}
