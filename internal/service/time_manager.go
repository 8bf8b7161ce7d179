package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"timerdash/internal/clock"
	"timerdash/internal/metrics"
	"timerdash/internal/model"
)

const (
	ActionStarted  = "Started"
	ActionPaused   = "Paused"
	ActionResume   = "Resume"
	ActionReset    = "Reset"
	ActionRemoved  = "Removed"
	ActionLap      = "Lap"
	ActionFinished = "Finished"
	ActionControl  = "Control"
)

// ActionRecorder receives one record per state-changing operation.
type ActionRecorder interface {
	Record(category model.Category, action, details string)
}

// Alerter is fired once per timer completion and must not block.
type Alerter interface {
	Alert()
}

// TimeManager owns every timer and stopwatch. All misuse (unknown IDs, wrong
// state) is a silent no-op reported through a false return.
type TimeManager struct {
	mu      sync.Mutex
	clock   clock.Clock
	actions ActionRecorder
	alerter Alerter
	metrics *metrics.Metrics

	timers         []*model.Timer
	stopwatches    []*model.Stopwatch
	timerCount     int
	stopwatchCount int
	newID          func() string
}

type ItemView struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Kind             model.Category  `json:"kind"`
	State            model.State     `json:"state"`
	DurationSeconds  int             `json:"durationSeconds,omitempty"`
	OriginalLabel    string          `json:"originalLabel,omitempty"`
	RemainingSeconds int             `json:"remainingSeconds"`
	ElapsedSeconds   int             `json:"elapsedSeconds"`
	Progress         float64         `json:"progress"`
	Laps             []string        `json:"laps,omitempty"`
	Remaining        time.Duration   `json:"-"`
	Elapsed          time.Duration   `json:"-"`
	LapDurations     []time.Duration `json:"-"`
}

type Snapshot struct {
	Timers      []ItemView `json:"timers"`
	Stopwatches []ItemView `json:"stopwatches"`
	ServerTime  time.Time  `json:"serverTime"`
}

// Items returns timers followed by stopwatches, the dashboard list order.
func (s Snapshot) Items() []ItemView {
	items := make([]ItemView, 0, len(s.Timers)+len(s.Stopwatches))
	items = append(items, s.Timers...)
	return append(items, s.Stopwatches...)
}

func NewTimeManager(c clock.Clock, actions ActionRecorder, alerter Alerter, m *metrics.Metrics) *TimeManager {
	if actions == nil {
		actions = discardRecorder{}
	}
	if alerter == nil {
		alerter = silentAlerter{}
	}
	if m == nil {
		m = metrics.New()
	}
	return &TimeManager{
		clock:   c,
		actions: actions,
		alerter: alerter,
		metrics: m,
		newID:   shortID,
	}
}

type discardRecorder struct{}

func (discardRecorder) Record(model.Category, string, string) {}

type silentAlerter struct{}

func (silentAlerter) Alert() {}

func shortID() string {
	return uuid.NewString()[:model.IDLength]
}

// AddTimer creates a running timer. Durations must already be validated;
// a non-positive value is ignored.
func (s *TimeManager) AddTimer(durationSeconds int, name string) (ItemView, bool) {
	if durationSeconds <= 0 {
		return ItemView{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.timerCount++
	name = model.TruncateName(name)
	if name == "" {
		name = fmt.Sprintf("%s %d", model.DefaultTimerNamePrefix, s.timerCount)
	}

	now := s.clock.Now()
	timer := model.NewTimer(s.uniqueID(), name, durationSeconds, now)
	s.timers = append(s.timers, timer)
	s.metrics.EntitiesStarted.WithLabelValues(string(model.CategoryTimer)).Inc()
	s.record(model.CategoryTimer, ActionStarted,
		fmt.Sprintf("ID: %s, Name: %s, Duration: %ds", timer.ID, timer.Name, durationSeconds))
	return timerView(timer, now), true
}

func (s *TimeManager) AddStopwatch(name string) ItemView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopwatchCount++
	name = model.TruncateName(name)
	if name == "" {
		name = fmt.Sprintf("%s %d", model.DefaultStopwatchNamePrefix, s.stopwatchCount)
	}

	now := s.clock.Now()
	sw := model.NewStopwatch(s.uniqueID(), name, now)
	s.stopwatches = append(s.stopwatches, sw)
	s.metrics.EntitiesStarted.WithLabelValues(string(model.CategoryStopwatch)).Inc()
	s.record(model.CategoryStopwatch, ActionStarted, fmt.Sprintf("ID: %s, Name: %s", sw.ID, sw.Name))
	return stopwatchView(sw, now)
}

func (s *TimeManager) RemoveTimer(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, timer := range s.timers {
		if timer.ID == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			s.record(model.CategoryTimer, ActionRemoved, "ID: "+id)
			return true
		}
	}
	return false
}

func (s *TimeManager) RemoveStopwatch(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sw := range s.stopwatches {
		if sw.ID == id {
			s.stopwatches = append(s.stopwatches[:i], s.stopwatches[i+1:]...)
			s.record(model.CategoryStopwatch, ActionRemoved, "ID: "+id)
			return true
		}
	}
	return false
}

// Remove deletes the timer or stopwatch with the given id.
func (s *TimeManager) Remove(id string) bool {
	if s.RemoveTimer(id) {
		return true
	}
	return s.RemoveStopwatch(id)
}

// Toggle resumes a paused item or pauses a running one.
func (s *TimeManager) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, category := s.find(id)
	if item == nil {
		return false
	}

	now := s.clock.Now()
	if timer, ok := item.(*model.Timer); ok {
		timer.RemainingTime(now)
	}
	if item.Status() == model.StatePaused {
		if item.Resume(now) {
			s.record(category, ActionResume, "ID: "+id)
			return true
		}
		return false
	}
	if item.Pause(now) {
		s.record(category, ActionPaused, "ID: "+id)
		return true
	}
	return false
}

func (s *TimeManager) Reset(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, category := s.find(id)
	if item == nil {
		return false
	}
	item.Reset(s.clock.Now())
	s.record(category, ActionReset, "ID: "+id)
	return true
}

// Lap records a lap on a running stopwatch.
func (s *TimeManager) Lap(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sw := range s.stopwatches {
		if sw.ID == id {
			return s.lap(sw)
		}
	}
	return false
}

// LapMostRecentActive laps the newest running stopwatch, if any.
func (s *TimeManager) LapMostRecentActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.stopwatches) - 1; i >= 0; i-- {
		if s.stopwatches[i].State == model.StateRunning {
			return s.lap(s.stopwatches[i])
		}
	}
	return false
}

// ToggleAllPause pauses everything if anything is running, otherwise resumes
// everything. It reports whether the outcome was a pause.
func (s *TimeManager) ToggleAllPause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.settleTimers(now)

	items := s.pausables()
	anyRunning := false
	for _, item := range items {
		if item.Status() == model.StateRunning {
			anyRunning = true
			break
		}
	}

	if anyRunning {
		for _, item := range items {
			item.Pause(now)
		}
		s.record(model.CategorySystem, ActionControl, "Paused All")
		return true
	}

	for _, item := range items {
		item.Resume(now)
	}
	s.record(model.CategorySystem, ActionControl, "Resumed All")
	return false
}

// Tick drives the lazy finish transition of every timer and notifies each
// newly finished timer exactly once. It returns the IDs notified.
func (s *TimeManager) Tick() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.settleTimers(now)

	var finished []string
	for _, timer := range s.timers {
		if timer.State == model.StateFinished && !timer.Notified {
			timer.Notified = true
			finished = append(finished, timer.ID)
			s.metrics.TimersFinished.Inc()
			s.record(model.CategoryTimer, ActionFinished, "ID: "+timer.ID)
			s.alerter.Alert()
		}
	}
	s.updateGauges()
	return finished
}

func (s *TimeManager) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	snapshot := Snapshot{
		Timers:      make([]ItemView, 0, len(s.timers)),
		Stopwatches: make([]ItemView, 0, len(s.stopwatches)),
		ServerTime:  now,
	}
	for _, timer := range s.timers {
		snapshot.Timers = append(snapshot.Timers, timerView(timer, now))
	}
	for _, sw := range s.stopwatches {
		snapshot.Stopwatches = append(snapshot.Stopwatches, stopwatchView(sw, now))
	}
	return snapshot
}

func (s *TimeManager) lap(sw *model.Stopwatch) bool {
	if !sw.Lap(s.clock.Now()) {
		return false
	}
	s.metrics.Laps.Inc()
	lapTime := sw.Laps[len(sw.Laps)-1]
	s.record(model.CategoryStopwatch, ActionLap,
		fmt.Sprintf("ID: %s, Lap Time: %s", sw.ID, model.FormatClock(lapTime)))
	return true
}

// settleTimers moves every timer that has run out to StateFinished, including
// one paused after its deadline passed.
func (s *TimeManager) settleTimers(now time.Time) {
	for _, timer := range s.timers {
		timer.RemainingTime(now)
	}
}

func (s *TimeManager) record(category model.Category, action, details string) {
	s.metrics.Actions.WithLabelValues(action).Inc()
	s.actions.Record(category, action, details)
}

func (s *TimeManager) find(id string) (model.Pausable, model.Category) {
	for _, timer := range s.timers {
		if timer.ID == id {
			return timer, model.CategoryTimer
		}
	}
	for _, sw := range s.stopwatches {
		if sw.ID == id {
			return sw, model.CategoryStopwatch
		}
	}
	return nil, ""
}

func (s *TimeManager) pausables() []model.Pausable {
	items := make([]model.Pausable, 0, len(s.timers)+len(s.stopwatches))
	for _, timer := range s.timers {
		items = append(items, timer)
	}
	for _, sw := range s.stopwatches {
		items = append(items, sw)
	}
	return items
}

func (s *TimeManager) uniqueID() string {
	for {
		id := s.newID()
		if item, _ := s.find(id); item == nil {
			return id
		}
	}
}

func (s *TimeManager) updateGauges() {
	s.metrics.Entities.Reset()
	for _, timer := range s.timers {
		s.metrics.Entities.WithLabelValues(string(model.CategoryTimer), string(timer.State)).Inc()
	}
	for _, sw := range s.stopwatches {
		s.metrics.Entities.WithLabelValues(string(model.CategoryStopwatch), string(sw.State)).Inc()
	}
}

func timerView(timer *model.Timer, now time.Time) ItemView {
	remaining := timer.RemainingTime(now)
	return ItemView{
		ID:               timer.ID,
		Name:             timer.Name,
		Kind:             model.CategoryTimer,
		State:            timer.State,
		DurationSeconds:  int(timer.Duration / time.Second),
		OriginalLabel:    timer.OriginalLabel,
		RemainingSeconds: int(remaining / time.Second),
		ElapsedSeconds:   int(timer.Elapsed(now) / time.Second),
		Progress:         timer.Progress(now),
		Remaining:        remaining,
		Elapsed:          timer.Elapsed(now),
	}
}

func stopwatchView(sw *model.Stopwatch, now time.Time) ItemView {
	elapsed := sw.Elapsed(now)
	view := ItemView{
		ID:             sw.ID,
		Name:           sw.Name,
		Kind:           model.CategoryStopwatch,
		State:          sw.State,
		ElapsedSeconds: int(elapsed / time.Second),
		Elapsed:        elapsed,
		LapDurations:   append([]time.Duration(nil), sw.Laps...),
	}
	for _, lap := range sw.Laps {
		view.Laps = append(view.Laps, model.FormatClock(lap))
	}
	return view
}
