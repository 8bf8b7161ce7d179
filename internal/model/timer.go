package model

import "time"

// Timer counts down from a fixed duration.
//
// The transition to StateFinished is discovered lazily: the first
// RemainingTime call that observes a non-positive remainder moves the timer
// to StateFinished. The manager's tick forces that read every cycle and owns
// the one-shot Notified flag.
type Timer struct {
	Interval
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Duration      time.Duration `json:"duration"`
	OriginalLabel string        `json:"originalLabel"`
	Notified      bool          `json:"notified"`
}

func NewTimer(id, name string, durationSeconds int, now time.Time) *Timer {
	duration := time.Duration(durationSeconds) * time.Second
	return &Timer{
		Interval:      newInterval(now),
		ID:            id,
		Name:          name,
		Duration:      duration,
		OriginalLabel: FormatClock(duration),
	}
}

func (t *Timer) Reset(now time.Time) {
	t.Interval.Reset(now)
	t.Notified = false
}

// RemainingTime may move the timer to StateFinished as a side effect.
func (t *Timer) RemainingTime(now time.Time) time.Duration {
	if t.State == StateFinished {
		return 0
	}
	remaining := t.Duration - t.Elapsed(now)
	if remaining <= 0 {
		t.State = StateFinished
		t.PausedAt = nil
		return 0
	}
	return remaining
}

// Progress is the completed fraction in [0, 1]. A zero-length timer is
// always complete.
func (t *Timer) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1.0
	}
	remaining := t.RemainingTime(now)
	return 1.0 - float64(remaining)/float64(t.Duration)
}
