package playground

import (
	"fmt"

	"github.com/avharna/stylet/internal/styling"
)

// presetThemes are the chroma styles offered in the theme ring. Unknown
// names degrade to the chroma fallback style rather than failing.
var presetThemes = []string{
	"monokai",
	"dracula",
	"github",
	"github-dark",
	"solarized-dark",
	"solarized-light",
	"nord",
	"gruvbox",
}

// themeEntry is one slot in the theme ring.
type themeEntry struct {
	// Display and lookup name. For a file-backed entry this is the
	// name declared inside the theme file.
	name string

	// filePath is set for the file-backed entry, empty for presets.
	filePath string
}

func (e themeEntry) load() (styling.Theme, error) {
	if e.filePath != "" {
		t, err := styling.LoadFileTheme(e.filePath)
		if err != nil {
			return nil, fmt.Errorf("loading theme file: %w", err)
		}
		return t, nil
	}

	return styling.NewChromaTheme(e.name), nil
}

// buildThemeRing assembles the cycling order. A configured theme file
// becomes the first entry so it is the startup theme, followed by the
// presets.
func buildThemeRing(themeFile, preset string) ([]themeEntry, int) {
	ring := make([]themeEntry, 0, len(presetThemes)+1)
	if themeFile != "" {
		ring = append(ring, themeEntry{name: "file", filePath: themeFile})
	}
	for _, name := range presetThemes {
		ring = append(ring, themeEntry{name: name})
	}

	if themeFile != "" {
		return ring, 0
	}
	for i, e := range ring {
		if e.name == preset {
			return ring, i
		}
	}

	return ring, 0
}
