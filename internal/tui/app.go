package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charliek/logview/internal/listener"
	"github.com/charliek/logview/internal/store"
)

// Run starts the TUI application. It subscribes to the store so count
// changes arrive as messages, and detaches on exit.
func Run(st *store.Store, fv *store.FilterView, lst *listener.Listener) error {
	model := NewModel(st, fv, lst)
	p := tea.NewProgram(model, tea.WithAltScreen())

	subID := st.Subscribe(func(total int) {
		p.Send(RecordsAppendedMsg(total))
	})

	_, err := p.Run()

	st.Unsubscribe(subID)

	return err
}
