package playground

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/avharna/stylet/internal/ui/styles"
)

// zoneThemePrefix namespaces the picker's clickable rows.
const zoneThemePrefix = "playground-theme:"

func themeZoneID(index int) string {
	return fmt.Sprintf("%s%d", zoneThemePrefix, index)
}

// themePicker is the modal list of available themes. Rows are marked as
// bubblezone zones so they respond to mouse clicks as well as keys.
type themePicker struct {
	entries []themeEntry
	index   int
}

func newThemePicker(entries []themeEntry, current int) *themePicker {
	return &themePicker{entries: entries, index: current}
}

// handleKey processes one key press. chosen is the selected ring index
// when the user confirmed, -1 otherwise. closed reports whether the
// picker should be dismissed.
func (p *themePicker) handleKey(msg tea.KeyMsg) (chosen int, closed bool) {
	switch msg.String() {
	case "up", "k":
		p.index--
		if p.index < 0 {
			p.index = len(p.entries) - 1
		}
	case "down", "j":
		p.index++
		if p.index >= len(p.entries) {
			p.index = 0
		}
	case "enter":
		return p.index, true
	case "esc":
		return -1, true
	}

	return -1, false
}

// handleMouse maps a click onto the row zones.
func (p *themePicker) handleMouse(msg tea.MouseMsg) (chosen int, closed bool) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return -1, false
	}
	for i := range p.entries {
		if z := zone.Get(themeZoneID(i)); z != nil && z.InBounds(msg) {
			p.index = i
			return i, true
		}
	}

	return -1, false
}

func (p *themePicker) view() string {
	var sb strings.Builder
	sb.WriteString(styles.StatusSegment.Render("Theme"))
	sb.WriteByte('\n')
	for i, e := range p.entries {
		label := e.name
		if e.filePath != "" {
			label = e.name + " (file)"
		}
		if i == p.index {
			label = styles.StatusSegment.Render("> " + label)
		} else {
			label = styles.StatusMuted.Render("  " + label)
		}
		sb.WriteString(zone.Mark(themeZoneID(i), label))
		if i < len(p.entries)-1 {
			sb.WriteByte('\n')
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.AccentColor).
		Padding(0, 1).
		Render(sb.String())
}
