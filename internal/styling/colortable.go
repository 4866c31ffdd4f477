package styling

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/avharna/stylet/internal/log"
)

// ColorSource is the narrow lookup capability handed to the renderer.
// It exposes exactly what painting needs and nothing mutable.
type ColorSource interface {
	HasColor(id int) bool
	ColorFor(id int) (colorful.Color, bool)
}

// ColorTable maps color identifiers to parsed colors. It is rebuilt
// wholesale on every theme change; identifier membership is a checkable
// state and lookups are checked, so a stale identifier can never paint.
type ColorTable struct {
	colors map[int]colorful.Color
}

func NewColorTable() *ColorTable {
	return &ColorTable{colors: make(map[int]colorful.Color)}
}

// SetTheme rebuilds the table from the theme's color map. Entries that do
// not parse as hex colors are skipped; their identifiers simply stay
// absent and fall through to default styling.
func (ct *ColorTable) SetTheme(theme Theme) {
	ct.colors = make(map[int]colorful.Color)
	for i, hex := range theme.ColorMap() {
		c, err := colorful.Hex(hex)
		if err != nil {
			log.Warn(log.CatTheme, "unparseable color in theme",
				"theme", theme.Name(), "color", hex)
			continue
		}
		ct.colors[i+1] = c
	}
}

func (ct *ColorTable) Contains(id int) bool {
	_, ok := ct.colors[id]

	return ok
}

func (ct *ColorTable) ColorFor(id int) (colorful.Color, bool) {
	c, ok := ct.colors[id]

	return c, ok
}

// Len reports how many identifiers are currently mapped.
func (ct *ColorTable) Len() int {
	return len(ct.colors)
}
