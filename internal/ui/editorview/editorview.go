// Package editorview is the Bubble Tea component that paints the document.
//
// It renders only the visible window of lines. Each paint lazily restyles
// the lines it is about to draw, then reads the resulting annotations back
// and resolves their colors through the narrow color-lookup capability.
// Scrolling publishes the new visible window to the visibility tracker, and
// redraw requests from the tokenizer worker arrive as ordinary messages on
// the update loop.
package editorview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/avharna/stylet/internal/document"
	"github.com/avharna/stylet/internal/log"
	"github.com/avharna/stylet/internal/pubsub"
	"github.com/avharna/stylet/internal/styling"
	"github.com/avharna/stylet/internal/ui/styles"
)

// Styler is what the view needs from the styling engine during paint.
type Styler interface {
	StyleLine(line int)
	Spans() *styling.SpanStore
}

type Config struct {
	TabWidth    int
	BufferLines int
	ShowGutter  bool
}

func DefaultConfig() Config {
	return Config{TabWidth: 4, BufferLines: 25, ShowGutter: true}
}

type Model struct {
	doc     *document.TextDocument
	styler  Styler
	colors  styling.ColorSource
	visible *styling.VisibleRange
	keys    KeyMap
	cfg     Config

	listener *pubsub.ContinuousListener[styling.RedrawRequest]

	width  int
	height int

	scrollOffset int
	cursorLine   int
	cursorCol    int
}

func New(
	ctx context.Context,
	doc *document.TextDocument,
	styler Styler,
	colors styling.ColorSource,
	visible *styling.VisibleRange,
	redraws *pubsub.Broker[styling.RedrawRequest],
	cfg Config,
) *Model {
	if cfg.TabWidth < 1 {
		cfg.TabWidth = 4
	}

	return &Model{
		doc:      doc,
		styler:   styler,
		colors:   colors,
		visible:  visible,
		keys:     DefaultKeyMap(),
		cfg:      cfg,
		listener: pubsub.NewContinuousListener(ctx, redraws),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.listener.Listen()
}

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case pubsub.Event[styling.RedrawRequest]:
		// Painting restyles lazily, so the request itself carries no
		// work beyond triggering this update cycle.
		log.Debug(log.CatUI, "redraw request",
			"offset", msg.Payload.Offset, "length", msg.Payload.Length)
		return m, m.listener.Listen()

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollBy(-3)
		case tea.MouseButtonWheelDown:
			m.scrollBy(3)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursorCol(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursorCol(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.height)
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.height)
	case key.Matches(msg, m.keys.HalfUp):
		m.moveCursor(-m.height / 2)
	case key.Matches(msg, m.keys.HalfDown):
		m.moveCursor(m.height / 2)
	case key.Matches(msg, m.keys.Top):
		m.cursorLine = 0
		m.ensureCursorVisible()
	case key.Matches(msg, m.keys.Bottom):
		m.cursorLine = m.doc.LineCount() - 1
		m.ensureCursorVisible()

	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.insertAtCursor(string(msg.Runes))
		case tea.KeySpace:
			m.insertAtCursor(" ")
		case tea.KeyEnter:
			m.insertAtCursor("\n")
			m.cursorLine++
			m.cursorCol = 0
			m.ensureCursorVisible()
		case tea.KeyTab:
			m.insertAtCursor("\t")
		case tea.KeyBackspace:
			m.deleteBeforeCursor()
		}
	}

	return m, nil
}

// SetSize updates the viewport dimensions and republishes the visible
// window.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampScroll()
	m.publishVisible()
}

// ResetView moves the cursor to the start of the buffer, rewinds the
// scroll and republishes the visible window. Callers use it after
// replacing the buffer wholesale.
func (m *Model) ResetView() {
	m.cursorLine = 0
	m.cursorCol = 0
	m.scrollOffset = 0
	m.publishVisible()
}

// Cursor returns the 0-based cursor position.
func (m *Model) Cursor() (line, col int) {
	return m.cursorLine, m.clampedCol()
}

// ScrollOffset returns the first visible line.
func (m *Model) ScrollOffset() int {
	return m.scrollOffset
}

func (m *Model) moveCursor(delta int) {
	m.cursorLine += delta
	if m.cursorLine < 0 {
		m.cursorLine = 0
	}
	if last := m.doc.LineCount() - 1; m.cursorLine > last {
		m.cursorLine = last
	}
	m.ensureCursorVisible()
}

func (m *Model) moveCursorCol(delta int) {
	m.cursorCol = m.clampedCol() + delta
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
	if _, length := m.doc.LineSpan(m.cursorLine); m.cursorCol > length {
		m.cursorCol = length
	}
}

func (m *Model) clampedCol() int {
	_, length := m.doc.LineSpan(m.cursorLine)
	if m.cursorCol > length {
		return length
	}

	return m.cursorCol
}

func (m *Model) cursorOffset() int {
	offset, _ := m.doc.LineSpan(m.cursorLine)

	return offset + m.clampedCol()
}

func (m *Model) insertAtCursor(text string) {
	m.doc.Insert(m.cursorOffset(), text)
	m.cursorCol = m.clampedCol() + len([]rune(text))
}

func (m *Model) deleteBeforeCursor() {
	off := m.cursorOffset()
	if off == 0 {
		return
	}

	if col := m.clampedCol(); col > 0 {
		m.cursorCol = col - 1
	} else {
		// Joining with the previous line.
		m.cursorLine--
		_, length := m.doc.LineSpan(m.cursorLine)
		m.cursorCol = length
	}
	m.doc.Delete(off-1, 1)
	m.ensureCursorVisible()
}

func (m *Model) scrollBy(delta int) {
	m.scrollOffset += delta
	m.clampScroll()
	m.publishVisible()
}

func (m *Model) ensureCursorVisible() {
	if m.cursorLine < m.scrollOffset {
		m.scrollOffset = m.cursorLine
	}
	if m.height > 0 && m.cursorLine >= m.scrollOffset+m.height {
		m.scrollOffset = m.cursorLine - m.height + 1
	}
	m.clampScroll()
	m.publishVisible()
}

func (m *Model) clampScroll() {
	maxOffset := m.doc.LineCount() - m.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.scrollOffset > maxOffset {
		m.scrollOffset = maxOffset
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// lineRange returns the visible window as a half-open 0-based range.
func (m *Model) lineRange() (int, int) {
	start := m.scrollOffset
	end := start + m.height
	if total := m.doc.LineCount(); end > total {
		end = total
	}

	return start, end
}

// publishVisible pushes the current window into the visibility tracker.
// An empty window is not published; the tracker keeps its last state.
func (m *Model) publishVisible() {
	start, end := m.lineRange()
	if end <= start {
		return
	}
	m.visible.Update(start, end-1)
}

func (m *Model) View() string {
	start, end := m.lineRange()
	if end <= start || m.width <= 0 {
		return ""
	}

	m.prewarm(start, end)

	gutterWidth := 0
	if m.cfg.ShowGutter {
		gutterWidth = len(fmt.Sprint(m.doc.LineCount())) + 1
	}

	var sb strings.Builder
	sb.Grow(m.height * 100)
	for i := start; i < end; i++ {
		if i > start {
			sb.WriteByte('\n')
		}
		if m.cfg.ShowGutter {
			sb.WriteString(m.renderGutter(i, gutterWidth))
		}
		sb.WriteString(m.renderLine(i, m.width-gutterWidth))
	}

	return sb.String()
}

// prewarm styles the buffer zone around the visible window so scrolling
// does not pay the styling cost on first paint.
func (m *Model) prewarm(start, end int) {
	lo := start - m.cfg.BufferLines
	if lo < 0 {
		lo = 0
	}
	hi := end + m.cfg.BufferLines
	if total := m.doc.LineCount(); hi > total {
		hi = total
	}
	for i := lo; i < hi; i++ {
		m.styler.StyleLine(i)
	}
}

func (m *Model) renderGutter(line, width int) string {
	number := fmt.Sprintf("%*d", width-1, line+1)
	if line == m.cursorLine {
		return styles.CurrentLineNumber.Render(number)
	}

	return styles.LineNumber.Render(number)
}

// renderLine paints one already-styled line: query the annotations
// overlapping its span and color each run through the checked lookup.
// Unstyled gaps and unknown identifiers fall through to plain text.
func (m *Model) renderLine(line, width int) string {
	text := []rune(m.doc.LineText(line))
	offset, length := m.doc.LineSpan(line)

	var sb strings.Builder
	cursor := 0
	for _, sp := range m.styler.Spans().FindOverlapping(offset, offset+length) {
		s := sp.Start - offset
		e := sp.End - offset
		if s < 0 {
			s = 0
		}
		if e > len(text) {
			e = len(text)
		}
		if s > cursor {
			sb.WriteString(m.expandTabs(string(text[cursor:s])))
		}
		segment := m.expandTabs(string(text[s:e]))
		if c, ok := m.colors.ColorFor(sp.ColorID); ok {
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(c.Hex())).
				Render(segment))
		} else {
			sb.WriteString(segment)
		}
		cursor = e
	}
	if cursor < len(text) {
		sb.WriteString(m.expandTabs(string(text[cursor:])))
	}

	out := sb.String()
	if runewidth.StringWidth(ansi.Strip(out)) > width {
		out = ansi.Truncate(out, width, "…")
	}

	return out
}

func (m *Model) expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", m.cfg.TabWidth))
}
