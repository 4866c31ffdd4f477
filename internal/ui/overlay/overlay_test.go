package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bgView(width, height int) string {
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(".", width)
	}
	return strings.Join(lines, "\n")
}

func TestPlace_Center(t *testing.T) {
	out := Place(10, 5, Center, "XX", bgView(10, 5))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "....XX....", lines[2])
	assert.Equal(t, "..........", lines[0])
	assert.Equal(t, "..........", lines[4])
}

func TestPlace_Top(t *testing.T) {
	out := Place(10, 3, Top, "AB", bgView(10, 3))

	lines := strings.Split(out, "\n")
	assert.Equal(t, "....AB....", lines[0])
}

func TestPlace_Bottom(t *testing.T) {
	out := Place(10, 3, Bottom, "AB", bgView(10, 3))

	lines := strings.Split(out, "\n")
	assert.Equal(t, "....AB....", lines[2])
}

func TestPlace_MultiLineOverlay(t *testing.T) {
	out := Place(8, 4, Center, "11\n22", bgView(8, 4))

	lines := strings.Split(out, "\n")
	assert.Equal(t, "...11...", lines[1])
	assert.Equal(t, "...22...", lines[2])
}

func TestPlace_OverlayWiderThanViewport(t *testing.T) {
	out := Place(4, 1, Center, "ABCDEFGH", bgView(4, 1))

	lines := strings.Split(out, "\n")
	assert.Equal(t, "ABCDEFGH", lines[0], "overlay pins to column zero rather than clipping")
}

func TestPlace_PadsShortBackground(t *testing.T) {
	out := Place(6, 4, Bottom, "ZZ", "......")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "  ZZ", strings.TrimRight(lines[3], " "))
}

func TestPlace_PreservesBackgroundStyling(t *testing.T) {
	styled := "\x1b[31m..........\x1b[0m"
	out := Place(10, 1, Center, "XX", styled)

	assert.Contains(t, out, "XX")
	assert.Contains(t, out, "\x1b[31m", "left side keeps its color")
}
