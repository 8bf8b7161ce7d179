package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"timerdash/internal/history"
	"timerdash/internal/model"
	"timerdash/internal/service"
)

const (
	progressWidth = 20
	visibleLaps   = 3
	helpLine      = "←/→ menu  ↑/↓ select  enter toggle  s lap  r reset  d remove  q quit"
	historyHelp   = "tab raw/grouped  ↑/↓ scroll  q back"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	menuStyle     = lipgloss.NewStyle().Padding(0, 1)
	menuActive    = menuStyle.Reverse(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	helpStyle     = lipgloss.NewStyle().Faint(true)

	stateStyles = map[model.State]lipgloss.Style{
		model.StateRunning:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		model.StatePaused:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		model.StateFinished: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		model.StateIdle:     lipgloss.NewStyle().Faint(true),
	}
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenPrompt:
		return m.promptView()
	case screenHistory:
		return m.historyView()
	default:
		return m.dashboardView()
	}
}

func (m *Model) dashboardView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Timers & Stopwatches"))
	b.WriteString("\n\n")
	b.WriteString(m.menuView())
	b.WriteString("\n\n")

	items := m.snapshot.Items()
	if len(items) == 0 {
		b.WriteString(helpStyle.Render("Nothing running. Pick New Timer or New Stopwatch."))
		b.WriteString("\n")
	}
	for i, item := range items {
		line := itemLine(item)
		if i == m.listIndex {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
		for _, lap := range lastLaps(item) {
			b.WriteString("      ")
			b.WriteString(lap)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpLine))
	return b.String()
}

func (m *Model) menuView() string {
	entries := make([]string, len(m.menu.Items))
	for i, item := range m.menu.Items {
		if i == m.menu.Selected && m.listIndex == -1 {
			entries[i] = menuActive.Render(item)
		} else {
			entries[i] = menuStyle.Render(item)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, entries...)
}

func itemLine(item service.ItemView) string {
	state := stateStyles[item.State].Render(fmt.Sprintf("%-8s", item.State))
	if item.Kind == model.CategoryTimer {
		return fmt.Sprintf("[T] %-15s %s %s %s", item.Name, model.FormatClock(item.Remaining), progressBar(item.Progress), state)
	}
	return fmt.Sprintf("[S] %-15s %s %s", item.Name, model.FormatClock(item.Elapsed), state)
}

func progressBar(progress float64) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * progressWidth)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", progressWidth-filled) + "]"
}

// lastLaps lists the newest laps first, numbered from the start.
func lastLaps(item service.ItemView) []string {
	var lines []string
	for i := len(item.LapDurations) - 1; i >= 0 && len(lines) < visibleLaps; i-- {
		lines = append(lines, fmt.Sprintf("Lap %d: %s", i+1, model.FormatClock(item.LapDurations[i])))
	}
	return lines
}

func (m *Model) promptView() string {
	return titleStyle.Render(m.prompt.label) + m.prompt.input + "_\n\n" + helpStyle.Render("enter confirm  esc cancel")
}

func (m *Model) historyView() string {
	var b strings.Builder
	title := "History (grouped)"
	if m.history.raw {
		title = "History (raw)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	lines := m.historyLines()
	if m.history.err != nil {
		lines = []string{fmt.Sprintf("Error reading log: %v", m.history.err)}
	} else if len(lines) == 0 {
		lines = []string{history.NoLogs}
	}

	end := m.history.offset + m.historyPageSize()
	if end > len(lines) {
		end = len(lines)
	}
	start := m.history.offset
	if start > end {
		start = end
	}
	for _, line := range lines[start:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(historyHelp))
	return b.String()
}
