package history

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"timerdash/internal/model"
)

const (
	UnknownID    = "Unknown"
	UnknownName  = "Unknown"
	legacyPrefix = "legacy_"

	actionStarted = "Started"
	actionLap     = "Lap"
)

var (
	linePattern = regexp.MustCompile(
		`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}) \[([A-Z]+)\] \[(Timer|Stopwatch|System)\] ([^-]+?)\s*-\s?(.*)$`)
	idPattern   = regexp.MustCompile(`\bID: ([0-9A-Za-z]+)`)
	namePattern = regexp.MustCompile(`\bName: ([^,]+)`)
)

type Event struct {
	Timestamp string        `json:"timestamp"`
	Offset    time.Duration `json:"-"`
	Relative  string        `json:"offset"`
	Action    string        `json:"action"`
	Details   string        `json:"details,omitempty"`
	Label     string        `json:"label"`
}

// Group is the reconstructed timeline of one timer or stopwatch.
type Group struct {
	Key       string         `json:"key"`
	ID        string         `json:"id"`
	Category  model.Category `json:"category"`
	Name      string         `json:"name"`
	Events    []Event        `json:"events"`
	StartedAt string         `json:"startedAt"`
	LastAt    string         `json:"lastAt"`

	laps int
}

type SystemEvent struct {
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Details   string `json:"details,omitempty"`
}

type Result struct {
	Groups []*Group      `json:"groups"`
	System []SystemEvent `json:"system"`
}

type entry struct {
	timestamp string
	category  model.Category
	action    string
	details   string
}

func parseLine(line string) (entry, bool) {
	match := linePattern.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return entry{}, false
	}
	return entry{
		timestamp: match[1],
		category:  model.Category(match[3]),
		action:    strings.TrimSpace(match[4]),
		details:   strings.TrimSpace(match[5]),
	}, true
}

func extractID(details string) string {
	if match := idPattern.FindStringSubmatch(details); match != nil {
		return match[1]
	}
	return UnknownID
}

func extractName(details string) string {
	if match := namePattern.FindStringSubmatch(details); match != nil {
		return strings.TrimSpace(match[1])
	}
	return ""
}

// EffectiveIdentity is the grouping key for a record. A Started record that
// predates ID logging is keyed by its name; every other record uses its ID
// as-is, so unidentified non-Started records share the Unknown bucket.
func EffectiveIdentity(id, action, name string) string {
	if id == UnknownID && action == actionStarted && name != "" {
		return legacyPrefix + name
	}
	return id
}

// cleanDetails drops the ID fragment, which the group header already shows.
func cleanDetails(details string) string {
	fragments := strings.Split(details, ",")
	kept := fragments[:0]
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(idPattern.ReplaceAllString(fragment, ""))
		if fragment != "" {
			kept = append(kept, fragment)
		}
	}
	return strings.Join(kept, ", ")
}

func parseTimestamp(ts string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", ts, time.Local)
	return t, err == nil
}

func relativeOffset(start, ts string) time.Duration {
	from, ok := parseTimestamp(start)
	if !ok {
		return 0
	}
	to, ok := parseTimestamp(ts)
	if !ok {
		return 0
	}
	if d := to.Sub(from); d > 0 {
		return d
	}
	return 0
}

// Reconstruct groups log lines by effective identity in a single pass.
// Unrecognised lines are skipped.
func Reconstruct(lines []string) Result {
	var result Result
	index := make(map[string]*Group)

	for _, line := range lines {
		e, ok := parseLine(line)
		if !ok {
			continue
		}

		if e.category == model.CategorySystem {
			result.System = append(result.System, SystemEvent{
				Timestamp: e.timestamp,
				Action:    e.action,
				Details:   e.details,
			})
			continue
		}

		id := extractID(e.details)
		name := extractName(e.details)
		key := EffectiveIdentity(id, e.action, name)

		group, seen := index[key]
		if !seen {
			group = &Group{
				Key:       key,
				ID:        id,
				Category:  e.category,
				Name:      UnknownName,
				StartedAt: e.timestamp,
			}
			index[key] = group
			result.Groups = append(result.Groups, group)
		} else if e.action == actionStarted {
			group.StartedAt = e.timestamp
		}
		if name != "" {
			group.Name = name
		}

		details := cleanDetails(e.details)
		label := e.action
		if e.action == actionLap {
			group.laps++
			label = fmt.Sprintf("%s #%d", e.action, group.laps)
		}
		if details != "" {
			label += " " + details
		}

		offset := relativeOffset(group.StartedAt, e.timestamp)
		group.Events = append(group.Events, Event{
			Timestamp: e.timestamp,
			Offset:    offset,
			Relative:  "+" + model.FormatClock(offset),
			Action:    e.action,
			Details:   details,
			Label:     label,
		})
		group.LastAt = e.timestamp
	}

	// Timestamps are fixed-width, so string order is chronological. The
	// stable sort keeps first-seen order among ties.
	sort.SliceStable(result.Groups, func(i, j int) bool {
		return result.Groups[i].LastAt > result.Groups[j].LastAt
	})
	return result
}
