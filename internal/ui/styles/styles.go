// Package styles contains Lip Gloss style definitions for the playground
// chrome. Text colors inside the editor come from the active syntax theme,
// not from here.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Chrome colors
	ChromeBgColor     = lipgloss.AdaptiveColor{Light: "#e8e8e8", Dark: "#2d2d2d"}
	ChromeFgColor     = lipgloss.AdaptiveColor{Light: "#444444", Dark: "#cccccc"}
	AccentColor       = lipgloss.AdaptiveColor{Light: "#0087d7", Dark: "#5fafff"}
	MutedColor        = lipgloss.AdaptiveColor{Light: "#8a8a8a", Dark: "#6c6c6c"}
	LineNumberColor   = lipgloss.AdaptiveColor{Light: "#b2b2b2", Dark: "#585858"}
	CurrentLineColor  = lipgloss.AdaptiveColor{Light: "#dadada", Dark: "#3a3a3a"}
	ErrorColor        = lipgloss.AdaptiveColor{Light: "#d70000", Dark: "#ff5f5f"}
)

var (
	// StatusBar is the bar at the bottom of the playground.
	StatusBar = lipgloss.NewStyle().
			Background(ChromeBgColor).
			Foreground(ChromeFgColor).
			Padding(0, 1)

	// StatusSegment highlights the active theme and language names.
	StatusSegment = lipgloss.NewStyle().
			Background(ChromeBgColor).
			Foreground(AccentColor).
			Bold(true)

	// StatusMuted renders secondary status information.
	StatusMuted = lipgloss.NewStyle().
			Background(ChromeBgColor).
			Foreground(MutedColor)

	// LineNumber renders the gutter.
	LineNumber = lipgloss.NewStyle().
			Foreground(LineNumberColor).
			PaddingRight(1)

	// CurrentLineNumber marks the cursor line in the gutter.
	CurrentLineNumber = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true).
				PaddingRight(1)

	// HelpOverlay frames the markdown help popup.
	HelpOverlay = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(AccentColor).
			Padding(0, 1)

	// ErrorText renders failures in the status bar.
	ErrorText = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
)
