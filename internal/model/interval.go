package model

import "time"

// Interval tracks elapsed wall-clock time across pause cycles. Pauses are
// summed into AccumulatedPause instead of moving StartedAt, so at any point
//
//	elapsed = reference - StartedAt - AccumulatedPause
//
// where reference is PausedAt while paused and now otherwise.
type Interval struct {
	State            State         `json:"state"`
	StartedAt        time.Time     `json:"startedAt"`
	PausedAt         *time.Time    `json:"pausedAt,omitempty"`
	AccumulatedPause time.Duration `json:"accumulatedPause"`
}

func newInterval(now time.Time) Interval {
	return Interval{State: StateRunning, StartedAt: now}
}

func (iv *Interval) Status() State {
	return iv.State
}

// Pause only acts on a running interval.
func (iv *Interval) Pause(now time.Time) bool {
	if iv.State != StateRunning {
		return false
	}
	pausedAt := now
	iv.PausedAt = &pausedAt
	iv.State = StatePaused
	return true
}

// Resume only acts on a paused interval.
func (iv *Interval) Resume(now time.Time) bool {
	if iv.State != StatePaused {
		return false
	}
	if iv.PausedAt != nil {
		iv.AccumulatedPause += now.Sub(*iv.PausedAt)
	}
	iv.PausedAt = nil
	iv.State = StateRunning
	return true
}

func (iv *Interval) Reset(now time.Time) {
	iv.StartedAt = now
	iv.PausedAt = nil
	iv.AccumulatedPause = 0
	iv.State = StateRunning
}

func (iv *Interval) Elapsed(now time.Time) time.Duration {
	if iv.StartedAt.IsZero() {
		return 0
	}
	reference := now
	if iv.State == StatePaused && iv.PausedAt != nil {
		reference = *iv.PausedAt
	}
	return reference.Sub(iv.StartedAt) - iv.AccumulatedPause
}
