package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultConfigTemplate is written when no config file exists anywhere.
// Kept as literal YAML so the generated file carries comments.
const defaultConfigTemplate = `# stylet configuration
# Tokenizer language (chroma lexer name). Empty = detect from file extension.
language: go

theme:
  # Built-in chroma style used as the theme source.
  preset: monokai
  # Or point at a YAML theme file (watched for changes):
  # file: ~/.config/stylet/themes/mytheme.yaml
  # Force "light" or "dark"; empty uses terminal detection.
  mode: ""

ui:
  tab_width: 4
  buffer_lines: 25
  show_status_bar: true

tracing:
  enabled: false
  exporter: file
  sample_rate: 1.0
`

// WriteDefaultConfig creates a commented default config file at the given
// path, creating parent directories as needed. Fails if the file exists.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0644); err != nil { //nolint:gosec // config file, not a secret
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
