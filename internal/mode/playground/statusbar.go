package playground

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"github.com/avharna/stylet/internal/ui/styles"
)

// statusInfo carries everything the status bar renders.
type statusInfo struct {
	theme    string
	language string
	line     int
	col      int
	err      string
}

// renderStatusBar paints the single-line bar at the bottom of the
// playground. Errors replace the keybinding hint so availability
// problems stay visible without stealing the buffer area.
func renderStatusBar(width int, info statusInfo) string {
	if width <= 0 {
		return ""
	}

	parts := []string{
		styles.StatusSegment.Render(info.theme),
		styles.StatusMuted.Render("│"),
		styles.StatusSegment.Render(info.language),
		styles.StatusMuted.Render("│"),
		styles.StatusMuted.Render(fmt.Sprintf("%d:%d", info.line+1, info.col+1)),
	}
	if info.err != "" {
		parts = append(parts, styles.StatusMuted.Render("│"), styles.ErrorText.Render(info.err))
	} else {
		parts = append(parts,
			styles.StatusMuted.Render("│"),
			styles.StatusMuted.Render("ctrl+t theme  ctrl+l lang  ctrl+g help"))
	}

	// The bar style pads one cell on each side, so the text budget is
	// two short of the full width.
	budget := width - 2
	if budget < 0 {
		budget = 0
	}
	content := strings.Join(parts, " ")
	content = truncate.StringWithTail(content, uint(budget), "…")

	return styles.StatusBar.Width(width).Render(content)
}
