// Package playground is the interactive demo mode: a small editor wired
// to the tokenizer, styling engine and theme machinery so changes can be
// watched live.
package playground

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avharna/stylet/internal/document"
	"github.com/avharna/stylet/internal/keys"
	"github.com/avharna/stylet/internal/log"
	"github.com/avharna/stylet/internal/mode"
	"github.com/avharna/stylet/internal/styling"
	"github.com/avharna/stylet/internal/tokenize"
	"github.com/avharna/stylet/internal/ui/editorview"
	"github.com/avharna/stylet/internal/ui/overlay"
	"github.com/avharna/stylet/internal/watcher"
)

// themeFileChangedMsg fires when the watched theme file was rewritten.
type themeFileChangedMsg struct{}

// Model holds the playground state.
type Model struct {
	services mode.Services
	keys     keys.KeyMap

	// Engine wiring
	doc      *document.TextDocument
	tokens   *tokenize.ChromaModel
	engine   *styling.Engine
	visible  *styling.VisibleRange
	notifier *styling.Notifier
	editor   *editorview.Model

	ctx    context.Context
	cancel context.CancelFunc

	// Buffers and themes
	samples     []Sample
	sampleIndex int
	themes      []themeEntry
	themeIndex  int
	themeName   string

	// Overlays
	picker   *themePicker
	helpOpen bool

	// Theme file hot reload
	themeWatch  *watcher.Watcher
	themeEvents <-chan struct{}

	statusErr string

	width  int
	height int
}

// New creates the playground and starts its background tokenizer.
func New(services mode.Services) Model {
	cfg := services.Config

	samples := BuiltinSamples()
	sampleIndex := 0
	for i, s := range samples {
		if s.Language == cfg.Language {
			sampleIndex = i
			break
		}
	}
	sample := samples[sampleIndex]

	ring, themeIndex := buildThemeRing(cfg.Theme.File, cfg.Theme.Preset)

	m := Model{
		services:    services,
		keys:        keys.DefaultKeyMap(),
		samples:     samples,
		sampleIndex: sampleIndex,
		themes:      ring,
		themeIndex:  themeIndex,
	}

	theme, err := ring[themeIndex].load()
	if err != nil {
		// A broken theme file must not block startup.
		log.ErrorErr(log.CatTheme, "startup theme failed, using preset", err)
		m.statusErr = "theme file error"
		theme = styling.NewChromaTheme(cfg.Theme.Preset)
	}
	m.themeName = theme.Name()

	m.ctx, m.cancel = context.WithCancel(context.Background())

	m.doc = document.New(sample.Text)
	m.tokens = tokenize.NewChromaModel(m.doc, services.Tracer)
	m.engine = styling.NewEngine(m.doc, m.tokens, theme, services.Tracer)
	m.engine.Spans().Bind(m.doc)
	m.engine.SetGrammar(tokenize.Grammar{Language: sample.Language})

	m.visible = styling.NewVisibleRange()
	m.notifier = styling.NewNotifier(m.doc, m.tokens, m.visible)

	m.tokens.Start(m.ctx)
	m.notifier.Run(m.ctx, m.tokens.Changed())

	m.editor = editorview.New(m.ctx, m.doc, m.engine, m.engine, m.visible,
		m.notifier.Redraws(), editorview.Config{
			TabWidth:    cfg.UI.TabWidth,
			BufferLines: cfg.UI.BufferLines,
			ShowGutter:  true,
		})

	if cfg.Theme.File != "" {
		w, werr := watcher.New(watcher.DefaultConfig(cfg.Theme.File))
		if werr == nil {
			if ch, serr := w.Start(); serr == nil {
				m.themeWatch = w
				m.themeEvents = ch
			} else {
				_ = w.Stop()
				werr = serr
			}
		}
		if m.themeWatch == nil {
			// Hot reload is a convenience; run without it.
			log.ErrorErr(log.CatWatcher, "theme watcher unavailable", werr)
		}
	}

	return m
}

// Init implements mode.Controller.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.editor.Init(), m.listenThemeFile())
}

// listenThemeFile waits for the next theme file change notification.
func (m Model) listenThemeFile() tea.Cmd {
	ch := m.themeEvents
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return themeFileChangedMsg{}
	}
}

// Update implements mode.Controller.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case themeFileChangedMsg:
		m.reloadThemeFile()
		return m, m.listenThemeFile()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.picker != nil {
			if chosen, closed := m.picker.handleMouse(msg); closed {
				m.picker = nil
				if chosen >= 0 {
					m.applyTheme(chosen)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextTheme):
		m.applyTheme((m.themeIndex + 1) % len(m.themes))
		return m, nil
	case key.Matches(msg, m.keys.PrevTheme):
		m.applyTheme((m.themeIndex + len(m.themes) - 1) % len(m.themes))
		return m, nil
	case key.Matches(msg, m.keys.PickTheme):
		m.picker = newThemePicker(m.themes, m.themeIndex)
		m.helpOpen = false
		return m, nil
	case key.Matches(msg, m.keys.NextLanguage):
		m.cycleLanguage()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.helpOpen = !m.helpOpen
		m.picker = nil
		return m, nil
	}

	if m.picker != nil {
		if chosen, closed := m.picker.handleKey(msg); closed {
			m.picker = nil
			if chosen >= 0 {
				m.applyTheme(chosen)
			}
		}
		return m, nil
	}
	if m.helpOpen {
		if key.Matches(msg, m.keys.Escape) {
			m.helpOpen = false
		}
		return m, nil
	}
	if key.Matches(msg, m.keys.Escape) {
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// applyTheme swaps the active theme. A failing theme file leaves the
// current theme in place and surfaces the error in the status bar.
func (m *Model) applyTheme(index int) {
	entry := m.themes[index]
	theme, err := entry.load()
	if err != nil {
		log.ErrorErr(log.CatTheme, "theme switch failed", err, "theme", entry.name)
		m.statusErr = "theme error: " + entry.name
		return
	}

	m.engine.SetTheme(theme)
	m.themeIndex = index
	m.themeName = theme.Name()
	m.statusErr = ""
	log.Info(log.CatTheme, "theme applied", "theme", m.themeName)
}

// reloadThemeFile re-applies the file-backed theme after the file
// changed on disk, if it is the active theme.
func (m *Model) reloadThemeFile() {
	for i, e := range m.themes {
		if e.filePath != "" {
			if i == m.themeIndex {
				m.applyTheme(i)
			}
			return
		}
	}
}

// cycleLanguage loads the next sample buffer and reconfigures the
// tokenizer grammar. The editor keeps its redraw subscription; only
// cursor and scroll state are rewound for the new buffer. The damage
// ranges from the buffer swap feed the notifier directly so the
// visible window repaints without waiting for a tokenizer pass.
func (m *Model) cycleLanguage() {
	m.sampleIndex = (m.sampleIndex + 1) % len(m.samples)
	sample := m.samples[m.sampleIndex]

	damage := m.doc.SetText(sample.Text)
	m.engine.SetGrammar(tokenize.Grammar{Language: sample.Language})

	m.editor.ResetView()
	m.notifier.OnLinesChanged(toTokenRanges(damage))
	log.Info(log.CatUI, "sample loaded",
		"language", sample.Language,
		"changedRanges", len(damage))
}

// toTokenRanges converts 0-based document damage to the 1-based
// inclusive line ranges the notifier expects.
func toTokenRanges(damage []document.LineRange) []tokenize.LineRange {
	ranges := make([]tokenize.LineRange, len(damage))
	for i, r := range damage {
		ranges[i] = tokenize.LineRange{From: r.From + 1, To: r.To + 1}
	}
	return ranges
}

// SetSize implements mode.Controller.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	m.editor.SetSize(width, m.contentHeight())
	return m
}

func (m Model) contentHeight() int {
	h := m.height
	if m.services.Config.UI.ShowStatusBar {
		h--
	}
	if h < 0 {
		h = 0
	}
	return h
}

// View implements mode.Controller.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	content := lipgloss.NewStyle().
		Width(m.width).
		Height(m.contentHeight()).
		Render(m.editor.View())

	view := content
	if m.services.Config.UI.ShowStatusBar {
		line, col := m.editor.Cursor()
		view += "\n" + renderStatusBar(m.width, statusInfo{
			theme:    m.themeName,
			language: m.samples[m.sampleIndex].Language,
			line:     line,
			col:      col,
			err:      m.statusErr,
		})
	}

	if m.picker != nil {
		return overlay.Place(m.width, m.height, overlay.Center, m.picker.view(), view)
	}
	if m.helpOpen {
		return overlay.Place(m.width, m.height, overlay.Center, renderHelp(min(m.width-4, 60)), view)
	}

	return view
}

// Close implements mode.Controller.
func (m Model) Close() {
	m.cancel()
	m.tokens.Stop()
	m.notifier.Close()
	if m.themeWatch != nil {
		_ = m.themeWatch.Stop()
	}
	m.doc.Close()
}
