// Package app contains the root application model.
package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/avharna/stylet/internal/config"
	"github.com/avharna/stylet/internal/keys"
	"github.com/avharna/stylet/internal/log"
	"github.com/avharna/stylet/internal/mode"
	"github.com/avharna/stylet/internal/mode/playground"
	"github.com/avharna/stylet/internal/tracing"
)

// Model is the root application state. It owns the active mode
// controller and handles the concerns that belong to no mode: quitting,
// resize fan-out and mouse zone scanning.
type Model struct {
	current  mode.Controller
	services mode.Services

	width    int
	height   int
	quitting bool
}

// New creates the application model with the provided configuration.
func New(cfg config.Config, configPath string, tracer *tracing.Provider) Model {
	zone.NewGlobal()

	services := mode.Services{
		Config:     &cfg,
		ConfigPath: configPath,
		Tracer:     tracer,
	}

	return Model{
		current:  playground.New(services),
		services: services,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnableMouseCellMotion, m.current.Init())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.current = m.current.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Common.Quit) {
			log.Info(log.CatUI, "quitting")
			m.quitting = true
			m.current.Close()
			return m, tea.Quit
		}

	case tea.MouseMsg:
		// Zone hit testing needs coordinates relative to the scanned
		// frame, which is the whole screen here, so pass through as-is.
	}

	var cmd tea.Cmd
	m.current, cmd = m.current.Update(msg)
	return m, cmd
}

// View implements tea.Model. The frame is scanned so bubblezone can
// resolve click coordinates for any zones marked by the active mode.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	return zone.Scan(m.current.View())
}

// Close releases mode resources. Safe to call after Quit already did.
func (m Model) Close() {
	if !m.quitting {
		m.current.Close()
	}
}
