package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
		m.refreshContent()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			// Clear the filter
			m.textInput.SetValue("")
			m.view.SetFilter("")
			m.refreshContent()

		case "ctrl+f":
			m.followMode = !m.followMode
			if m.followMode {
				m.viewport.GotoBottom()
			}

		case "pgup", "pgdown", "home", "end":
			// Scroll keys go to the viewport; everything else is typing
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
			m.followMode = m.viewport.AtBottom()

		default:
			before := m.textInput.Value()
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			cmds = append(cmds, cmd)

			if after := m.textInput.Value(); after != before {
				m.view.SetFilter(after)
				m.refreshContent()
			}
		}

	case RecordsAppendedMsg:
		m.total = int(msg)
		m.refreshContent()

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
		m.followMode = m.viewport.AtBottom()

	default:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleWindowSize lays out the viewport around the fixed chrome: the
// filter line, the column header, and the status bar.
func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	const chromeHeight = 3 // filter input + header row + status bar

	viewportHeight := msg.Height - chromeHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(msg.Width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = viewportHeight
	}
}

// refreshContent re-renders the visible rows into the viewport
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}

	m.viewport.SetContent(m.renderRows())

	if m.followMode {
		m.viewport.GotoBottom()
	}
}
