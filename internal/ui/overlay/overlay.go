// Package overlay composites modal content on top of a background view
// without clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the middle of the viewport.
	Center Position = iota
	// Top places the overlay at the top center.
	Top
	// Bottom places the overlay at the bottom center.
	Bottom
)

// Place renders fg on top of bg inside a width x height viewport. Both
// strings may carry ANSI styling; the splice preserves it on either
// side of the overlay.
func Place(width, height int, pos Position, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", width))
	}

	fgWidth := 0
	for _, line := range fgLines {
		if w := ansi.StringWidth(line); w > fgWidth {
			fgWidth = w
		}
	}
	startX, startY := origin(width, height, pos, fgWidth, len(fgLines))

	for i, fgLine := range fgLines {
		y := startY + i
		if y >= len(bgLines) {
			break
		}
		bgLines[y] = splice(bgLines[y], fgLine, startX)
	}

	return strings.Join(bgLines, "\n")
}

// splice overwrites bg starting at column x with fg, keeping whatever of
// bg extends past the overlay's right edge.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}

	return left + fg + right
}

func origin(width, height int, pos Position, fgWidth, fgHeight int) (x, y int) {
	x = (width - fgWidth) / 2
	switch pos {
	case Top:
		y = 0
	case Bottom:
		y = height - fgHeight
	default:
		y = (height - fgHeight) / 2
	}

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
