package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"timerdash/internal/actionlog"
	"timerdash/internal/alert"
	"timerdash/internal/clock"
	"timerdash/internal/model"
	"timerdash/internal/service"
)

func newTestModel(t *testing.T) (*Model, *clock.Fake, *bytes.Buffer) {
	t.Helper()
	c := clock.NewFake(time.Date(2026, 2, 3, 17, 34, 22, 0, time.Local))
	var buf bytes.Buffer
	manager := service.NewTimeManager(c, actionlog.New(&buf, c), alert.Silent{}, nil)
	logs := func() (string, error) { return buf.String(), nil }
	return New(manager, logs, 100*time.Millisecond), c, &buf
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(key(k))
	}
}

func typeText(m *Model, text string) {
	for _, r := range text {
		press(m, string(r))
	}
}

func selectMenu(m *Model, item string) {
	for m.menu.Current() != item {
		press(m, "right")
	}
}

func TestNewTimerFlow(t *testing.T) {
	m, _, _ := newTestModel(t)

	selectMenu(m, MenuNewTimer)
	press(m, "enter")
	if m.screen != screenPrompt || m.prompt.kind != promptDuration {
		t.Fatalf("expected duration prompt, got screen %v kind %v", m.screen, m.prompt.kind)
	}
	typeText(m, "0 1 30")
	press(m, "enter")
	if m.prompt.kind != promptTimerName {
		t.Fatalf("expected name prompt, got %v", m.prompt.kind)
	}
	typeText(m, "Tea")
	press(m, "enter")

	if m.screen != screenDashboard {
		t.Fatalf("expected dashboard, got %v", m.screen)
	}
	timers := m.snapshot.Timers
	if len(timers) != 1 || timers[0].Name != "Tea" || timers[0].DurationSeconds != 90 {
		t.Fatalf("unexpected timers: %+v", timers)
	}
}

func TestInvalidDurationReturnsToDashboard(t *testing.T) {
	m, _, _ := newTestModel(t)

	selectMenu(m, MenuNewTimer)
	press(m, "enter")
	typeText(m, "abc")
	press(m, "enter")

	if m.screen != screenDashboard || len(m.snapshot.Timers) != 0 {
		t.Fatalf("invalid duration should create nothing, screen %v timers %d", m.screen, len(m.snapshot.Timers))
	}
}

func TestPromptInputEditing(t *testing.T) {
	m, _, _ := newTestModel(t)

	selectMenu(m, MenuNewStopwatch)
	press(m, "enter")
	typeText(m, strings.Repeat("a", maxInputLength+5))
	if len(m.prompt.input) != maxInputLength {
		t.Fatalf("input should be capped at %d, got %d", maxInputLength, len(m.prompt.input))
	}
	press(m, "backspace")
	if len(m.prompt.input) != maxInputLength-1 {
		t.Fatalf("backspace should drop one rune, got %d", len(m.prompt.input))
	}
	press(m, "esc")
	if m.screen != screenDashboard || len(m.snapshot.Stopwatches) != 0 {
		t.Fatal("esc should cancel without creating a stopwatch")
	}
}

func TestStopwatchNameIsTruncated(t *testing.T) {
	m, _, _ := newTestModel(t)

	selectMenu(m, MenuNewStopwatch)
	press(m, "enter")
	typeText(m, "A very long stopwatch")
	press(m, "enter")

	if got := m.snapshot.Stopwatches[0].Name; got != "A very long sto" {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestListNavigationAndItemActions(t *testing.T) {
	m, c, _ := newTestModel(t)
	m.manager.AddTimer(60, "T")
	sw := m.manager.AddStopwatch("S")
	m.refresh()

	press(m, "down")
	if m.listIndex != 0 {
		t.Fatalf("expected first item selected, got %d", m.listIndex)
	}
	press(m, "enter")
	if m.snapshot.Timers[0].State != model.StatePaused {
		t.Fatalf("enter should pause the selected timer, got %s", m.snapshot.Timers[0].State)
	}

	press(m, "down")
	c.Advance(5 * time.Second)
	press(m, "s")
	if got := m.snapshot.Stopwatches[0].Laps; len(got) != 1 || got[0] != "00:00:05" {
		t.Fatalf("unexpected laps %v", got)
	}

	press(m, "r")
	if got := m.snapshot.Stopwatches[0]; got.ElapsedSeconds != 0 || len(got.Laps) != 0 {
		t.Fatalf("reset should clear the stopwatch, got %+v", got)
	}

	press(m, "d")
	if len(m.snapshot.Stopwatches) != 0 {
		t.Fatalf("stopwatch %s should be removed", sw.ID)
	}
	if m.listIndex != 0 {
		t.Fatalf("selection should clamp to the remaining item, got %d", m.listIndex)
	}

	press(m, "down")
	if m.listIndex != -1 {
		t.Fatalf("moving past the last item should return to the menu, got %d", m.listIndex)
	}
}

func TestLapFromMenuUsesMostRecentRunning(t *testing.T) {
	m, c, _ := newTestModel(t)
	m.manager.AddStopwatch("old")
	m.manager.AddStopwatch("new")
	m.refresh()

	c.Advance(2 * time.Second)
	press(m, "S")

	if len(m.snapshot.Stopwatches[0].Laps) != 0 || len(m.snapshot.Stopwatches[1].Laps) != 1 {
		t.Fatalf("lap should land on the newest running stopwatch: %+v", m.snapshot.Stopwatches)
	}
}

func TestControlActiveTogglesEverything(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.manager.AddTimer(60, "")
	m.manager.AddStopwatch("")
	m.refresh()

	selectMenu(m, MenuControl)
	press(m, "enter")
	for _, item := range m.snapshot.Items() {
		if item.State != model.StatePaused {
			t.Fatalf("expected everything paused, got %+v", item)
		}
	}

	press(m, "enter")
	for _, item := range m.snapshot.Items() {
		if item.State != model.StateRunning {
			t.Fatalf("expected everything running, got %+v", item)
		}
	}
}

func TestTickFinishesTimers(t *testing.T) {
	m, c, buf := newTestModel(t)
	m.manager.AddTimer(1, "")

	c.Advance(2 * time.Second)
	_, cmd := m.Update(tickMsg(c.Now()))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	if m.snapshot.Timers[0].State != model.StateFinished {
		t.Fatalf("expected finished timer, got %s", m.snapshot.Timers[0].State)
	}
	if !strings.Contains(buf.String(), "[Timer] Finished - ID: ") {
		t.Fatalf("finish should be logged, got:\n%s", buf.String())
	}
}

func TestHistoryScreen(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.manager.AddStopwatch("Run")
	m.manager.ToggleAllPause()
	m.Update(tea.WindowSizeMsg{Width: 42, Height: 40})

	selectMenu(m, MenuHistory)
	press(m, "enter")
	if m.screen != screenHistory {
		t.Fatalf("expected history screen, got %v", m.screen)
	}

	grouped := m.historyLines()
	if !strings.HasPrefix(grouped[0], "[Stopwatch] Run (ID: ") {
		t.Fatalf("unexpected first grouped line %q", grouped[0])
	}
	if diff := cmp.Diff(strings.Repeat("-", 40), grouped[len(grouped)-1]); diff != "" {
		t.Fatalf("separator should follow the window width (-want +got):\n%s", diff)
	}

	press(m, "tab")
	raw := m.historyLines()
	if len(raw) != 2 || !strings.Contains(raw[0], "[System] Control - Paused All") {
		t.Fatalf("raw view should list newest first, got %v", raw)
	}

	press(m, "q")
	if m.screen != screenDashboard {
		t.Fatalf("q should leave history, got %v", m.screen)
	}
}

func TestHistoryScrollIsClamped(t *testing.T) {
	m, _, _ := newTestModel(t)
	for i := 0; i < 10; i++ {
		m.manager.AddStopwatch("")
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 6})

	selectMenu(m, MenuHistory)
	press(m, "enter", "tab")
	press(m, "up")
	if m.history.offset != 0 {
		t.Fatalf("offset should not go negative, got %d", m.history.offset)
	}
	for i := 0; i < 20; i++ {
		press(m, "down")
	}
	if want := 10 - m.historyPageSize(); m.history.offset != want {
		t.Fatalf("offset should stop at %d, got %d", want, m.history.offset)
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(key("q"))
	if cmd == nil || !m.quitting {
		t.Fatal("q on the dashboard should quit")
	}
	if m.View() != "" {
		t.Fatal("view should be empty after quitting")
	}
}

func TestDashboardViewShowsLastThreeLaps(t *testing.T) {
	m, c, _ := newTestModel(t)
	sw := m.manager.AddStopwatch("Laps")
	for i := 0; i < 4; i++ {
		c.Advance(time.Second)
		m.manager.Lap(sw.ID)
	}
	m.refresh()

	view := m.View()
	for _, want := range []string{"Lap 4: 00:00:04", "Lap 3: 00:00:03", "Lap 2: 00:00:02"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Lap 1:") {
		t.Fatalf("view should only show the last three laps:\n%s", view)
	}
}
