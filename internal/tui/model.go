package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charliek/logview/internal/listener"
	"github.com/charliek/logview/internal/store"
)

// Model is the bubbletea model for the viewer: a filter input on top,
// the record table in a viewport, and a status bar at the bottom.
type Model struct {
	// Dependencies
	store    *store.Store
	view     *store.FilterView
	listener *listener.Listener

	// UI components
	textInput textinput.Model
	viewport  viewport.Model

	// State
	total      int  // record count from the last countChanged
	followMode bool // auto-scroll to bottom on new records

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewModel creates a new TUI model
func NewModel(st *store.Store, fv *store.FilterView, lst *listener.Listener) Model {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Prompt = "filter> "
	ti.CharLimit = 200
	ti.Focus()

	return Model{
		store:      st,
		view:       fv,
		listener:   lst,
		textInput:  ti,
		total:      st.RowCount(),
		followMode: true,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// RecordsAppendedMsg is sent when the store's record count changes
type RecordsAppendedMsg int
