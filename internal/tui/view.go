package tui

import (
	"fmt"
	"strings"

	"github.com/charliek/logview/internal/domain"
)

// Column widths for the fixed-width table render. The msg column takes
// the rest of the line.
const (
	createdWidth = 19 // "2006-01-02 15:04:05"
	levelWidth   = 8
	nameWidth    = 20
)

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.textInput.View())
	b.WriteString("\n")
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// renderHeader renders the column name row
func (m Model) renderHeader() string {
	line := fmt.Sprintf("%-*s  %-*s  %-*s  %s",
		createdWidth, domain.ColumnCreated,
		levelWidth, domain.ColumnLevelName,
		nameWidth, domain.ColumnName,
		domain.ColumnMsg)
	return headerStyle.Width(m.width).Render(truncate(line, m.width))
}

// renderRows renders every visible record as one table line
func (m Model) renderRows() string {
	records := m.view.VisibleRecords()
	if len(records) == 0 {
		if m.view.Pattern() != "" {
			return dimStyle.Render("no records match the filter")
		}
		return dimStyle.Render("waiting for records...")
	}

	lines := make([]string, len(records))
	for i, rec := range records {
		created := dimStyle.Render(fmt.Sprintf("%-*s", createdWidth, rec.FormatCreated()))
		level := levelStyle(rec.LevelName).Render(fmt.Sprintf("%-*s", levelWidth, truncate(rec.LevelName, levelWidth)))
		name := fmt.Sprintf("%-*s", nameWidth, truncate(rec.Name, nameWidth))
		lines[i] = created + "  " + level + "  " + name + "  " + rec.Msg
	}
	return strings.Join(lines, "\n")
}

// renderStatus renders the bottom status bar
func (m Model) renderStatus() string {
	status := fmt.Sprintf("%d records", m.total)
	if m.view.Pattern() != "" {
		status += fmt.Sprintf(" | %d visible", m.view.VisibleRowCount())
	}
	if m.listener != nil {
		if dropped := m.listener.Stats().Dropped(); dropped > 0 {
			status += fmt.Sprintf(" | %d dropped", dropped)
		}
	}
	if !m.followMode {
		status += " | scroll (ctrl+f to follow)"
	}
	return statusStyle.Width(m.width).Render(truncate(status, m.width))
}

// truncate shortens s to at most width runes
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
