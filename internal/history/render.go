package history

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

const (
	NoLogs                = "No logs found."
	SystemHeader          = "[SYSTEM EVENTS]"
	DefaultSeparatorWidth = 60
)

// View holds the two independently scrollable renderings of one log.
type View struct {
	Raw     []string `json:"raw"`
	Grouped []string `json:"grouped"`
}

// Header renders "[Category] Name (ID: id)", omitting an unknown ID.
func (g *Group) Header() string {
	header := fmt.Sprintf("[%s] %s", g.Category, g.Name)
	if g.ID != UnknownID {
		header += fmt.Sprintf(" (ID: %s)", g.ID)
	}
	return header
}

func (e Event) Line() string {
	clock := e.Timestamp
	if len(clock) > 11 {
		clock = clock[11:]
	}
	return fmt.Sprintf("  %s %s > %s", clock, e.Relative, e.Label)
}

func (e SystemEvent) Line() string {
	return strings.TrimRight(fmt.Sprintf("  %s > %s %s", e.Timestamp, e.Action, e.Details), " ")
}

// Render lists groups most recently active first, each with its events
// newest first, then the system feed newest first.
func (r Result) Render(separatorWidth int) []string {
	if separatorWidth <= 0 {
		separatorWidth = DefaultSeparatorWidth
	}
	separator := strings.Repeat("-", separatorWidth)

	var lines []string
	for _, group := range r.Groups {
		lines = append(lines, group.Header())
		for i := len(group.Events) - 1; i >= 0; i-- {
			lines = append(lines, group.Events[i].Line())
		}
		lines = append(lines, separator)
	}

	if len(r.System) > 0 {
		lines = append(lines, SystemHeader)
		for i := len(r.System) - 1; i >= 0; i-- {
			lines = append(lines, r.System[i].Line())
		}
		lines = append(lines, separator)
	}
	return lines
}

// RawView returns the non-empty lines newest first.
func RawView(lines []string) []string {
	raw := make([]string, 0, len(lines))
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			raw = append(raw, line)
		}
	}
	return raw
}

func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// Build produces both views from the full log text.
func Build(text string, separatorWidth int) View {
	lines := SplitLines(text)
	view := View{
		Raw:     RawView(lines),
		Grouped: Reconstruct(lines).Render(separatorWidth),
	}
	if len(view.Raw) == 0 {
		view.Raw = []string{NoLogs}
	}
	if len(view.Grouped) == 0 {
		view.Grouped = []string{NoLogs}
	}
	return view
}

// ReadLog returns the log text, or NoLogs when the file does not exist.
func ReadLog(fs afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return NoLogs, nil
		}
		return "", fmt.Errorf("read action log: %w", err)
	}
	return string(data), nil
}
