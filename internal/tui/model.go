package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"timerdash/internal/history"
	"timerdash/internal/model"
	"timerdash/internal/service"
)

const (
	MenuNewTimer     = "New Timer"
	MenuNewStopwatch = "New Stopwatch"
	MenuControl      = "Control Active"
	MenuHistory      = "History"
	MenuExit         = "Exit"
)

type screen int

const (
	screenDashboard screen = iota
	screenPrompt
	screenHistory
)

type promptKind int

const (
	promptDuration promptKind = iota
	promptTimerName
	promptStopwatchName
)

// LogSource returns the current action log text.
type LogSource func() (string, error)

type tickMsg time.Time

type Menu struct {
	Items    []string
	Selected int
}

func (m *Menu) Next() { m.Selected = (m.Selected + 1) % len(m.Items) }

func (m *Menu) Prev() { m.Selected = (m.Selected - 1 + len(m.Items)) % len(m.Items) }

func (m *Menu) Current() string { return m.Items[m.Selected] }

type prompt struct {
	kind  promptKind
	label string
	input string
}

type historyState struct {
	raw    bool
	offset int
	view   history.View
	err    error
}

// Model is the bubbletea model for the dashboard. It reads entity state only
// through manager snapshots.
type Model struct {
	manager      *service.TimeManager
	logs         LogSource
	tickInterval time.Duration

	menu      Menu
	listIndex int
	screen    screen
	prompt    prompt
	seconds   int
	history   historyState
	snapshot  service.Snapshot
	width     int
	height    int
	quitting  bool
}

func New(manager *service.TimeManager, logs LogSource, tickInterval time.Duration) *Model {
	return &Model{
		manager:      manager,
		logs:         logs,
		tickInterval: tickInterval,
		menu:         Menu{Items: []string{MenuNewTimer, MenuNewStopwatch, MenuControl, MenuHistory, MenuExit}},
		listIndex:    -1,
		snapshot:     manager.Snapshot(),
		width:        80,
		height:       24,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.manager.Tick()
		m.refresh()
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.screen == screenHistory {
			m.loadHistory()
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		switch m.screen {
		case screenPrompt:
			return m.updatePrompt(msg)
		case screenHistory:
			return m.updateHistory(msg)
		default:
			return m.updateDashboard(msg)
		}
	}
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) refresh() {
	m.snapshot = m.manager.Snapshot()
	if n := len(m.snapshot.Items()); m.listIndex >= n {
		m.listIndex = n - 1
	}
}

func (m *Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.snapshot.Items()

	switch msg.String() {
	case "right":
		m.menu.Next()
	case "left":
		m.menu.Prev()
	case "up":
		if m.listIndex == -1 {
			m.listIndex = len(items) - 1
		} else {
			m.listIndex--
		}
	case "down":
		if m.listIndex < len(items)-1 {
			m.listIndex++
		} else {
			m.listIndex = -1
		}
	case "enter":
		if m.listIndex == -1 {
			return m.runMenuAction()
		}
		if item, ok := m.selected(); ok {
			m.manager.Toggle(item.ID)
		}
	case "s", "S":
		if item, ok := m.selected(); ok {
			if item.Kind == model.CategoryStopwatch {
				m.manager.Lap(item.ID)
			}
		} else {
			m.manager.LapMostRecentActive()
		}
	case "r", "R":
		if item, ok := m.selected(); ok {
			m.manager.Reset(item.ID)
		}
	case "d", "D", "x", "X":
		if item, ok := m.selected(); ok {
			m.manager.Remove(item.ID)
		}
	case "q":
		return m.quit()
	}

	m.refresh()
	return m, nil
}

func (m *Model) selected() (service.ItemView, bool) {
	items := m.snapshot.Items()
	if m.listIndex < 0 || m.listIndex >= len(items) {
		return service.ItemView{}, false
	}
	return items[m.listIndex], true
}

func (m *Model) runMenuAction() (tea.Model, tea.Cmd) {
	switch m.menu.Current() {
	case MenuExit:
		return m.quit()
	case MenuNewTimer:
		m.openPrompt(promptDuration, "Duration [HH MM SS] or [HH MM] or [MM]: ")
	case MenuNewStopwatch:
		m.openPrompt(promptStopwatchName, "Name (optional, max 15 char): ")
	case MenuControl:
		m.manager.ToggleAllPause()
		m.refresh()
	case MenuHistory:
		m.screen = screenHistory
		m.history = historyState{}
		m.loadHistory()
	}
	return m, nil
}

func (m *Model) openPrompt(kind promptKind, label string) {
	m.screen = screenPrompt
	m.prompt = prompt{kind: kind, label: label}
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.screen = screenDashboard
		return m, nil
	case tea.KeyEnter:
		m.submitPrompt()
		return m, nil
	case tea.KeyBackspace:
		if runes := []rune(m.prompt.input); len(runes) > 0 {
			m.prompt.input = string(runes[:len(runes)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.appendInput(" ")
	case tea.KeyRunes:
		m.appendInput(string(msg.Runes))
	}
	return m, nil
}

func (m *Model) appendInput(s string) {
	for _, r := range s {
		if r < 32 || r > 126 || len(m.prompt.input) >= maxInputLength {
			continue
		}
		m.prompt.input += string(r)
	}
}

func (m *Model) submitPrompt() {
	input := m.prompt.input
	m.screen = screenDashboard

	switch m.prompt.kind {
	case promptDuration:
		seconds, err := ParseDuration(input)
		if err != nil {
			return
		}
		m.seconds = seconds
		m.openPrompt(promptTimerName, "Name (optional, max 15 char): ")
	case promptTimerName:
		m.manager.AddTimer(m.seconds, input)
	case promptStopwatchName:
		m.manager.AddStopwatch(input)
	}
	m.refresh()
}

func (m *Model) loadHistory() {
	text, err := m.logs()
	m.history.err = err
	if err != nil {
		text = ""
	}
	m.history.view = history.Build(text, m.width-2)
	m.clampHistoryOffset()
}

func (m *Model) historyLines() []string {
	if m.history.raw {
		return m.history.view.Raw
	}
	return m.history.view.Grouped
}

func (m *Model) historyPageSize() int {
	if n := m.height - 2; n > 0 {
		return n
	}
	return 1
}

func (m *Model) clampHistoryOffset() {
	maxOffset := len(m.historyLines()) - m.historyPageSize()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.history.offset > maxOffset {
		m.history.offset = maxOffset
	}
	if m.history.offset < 0 {
		m.history.offset = 0
	}
}

func (m *Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.screen = screenDashboard
	case "tab":
		m.history.raw = !m.history.raw
		m.history.offset = 0
	case "up":
		m.history.offset--
		m.clampHistoryOffset()
	case "down":
		m.history.offset++
		m.clampHistoryOffset()
	}
	return m, nil
}
