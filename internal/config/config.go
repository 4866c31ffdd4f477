// Package config provides configuration types, defaults, and persistence
// for stylet.
package config

import (
	"fmt"

	"github.com/avharna/stylet/internal/tracing"
)

// ThemeConfig selects and customizes the active color theme.
type ThemeConfig struct {
	// Preset names a built-in chroma style used as the theme source,
	// e.g. "monokai", "dracula", "github". Ignored when File is set.
	Preset string `mapstructure:"preset"`

	// File points at a YAML theme file. When set it takes precedence over
	// Preset and is watched for changes (hot reload).
	File string `mapstructure:"file"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	// TabWidth is the number of cells a tab expands to in the editor view.
	TabWidth int `mapstructure:"tab_width"`

	// BufferLines is the number of off-screen lines styled above and below
	// the visible window for smoother scrolling.
	BufferLines int `mapstructure:"buffer_lines"`

	// ShowStatusBar toggles the playground status bar.
	ShowStatusBar bool `mapstructure:"show_status_bar"`
}

// Config holds all configuration options for stylet.
type Config struct {
	// Language is the tokenizer language name, e.g. "go", "python".
	// Empty means detect from the file extension.
	Language string `mapstructure:"language"`

	Theme   ThemeConfig    `mapstructure:"theme"`
	UI      UIConfig       `mapstructure:"ui"`
	Tracing tracing.Config `mapstructure:"tracing"`

	// Debug enables file logging.
	Debug bool `mapstructure:"debug"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Language: "go",
		Theme: ThemeConfig{
			Preset: "monokai",
		},
		UI: UIConfig{
			TabWidth:      4,
			BufferLines:   25,
			ShowStatusBar: true,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks the configuration for values that cannot be recovered
// from at runtime.
func (c Config) Validate() error {
	if c.UI.TabWidth < 1 {
		return fmt.Errorf("ui.tab_width must be at least 1, got %d", c.UI.TabWidth)
	}
	if c.UI.BufferLines < 0 {
		return fmt.Errorf("ui.buffer_lines must not be negative, got %d", c.UI.BufferLines)
	}
	switch c.Theme.Mode {
	case "", "light", "dark":
	default:
		return fmt.Errorf("theme.mode must be \"light\", \"dark\" or empty, got %q", c.Theme.Mode)
	}
	return nil
}
