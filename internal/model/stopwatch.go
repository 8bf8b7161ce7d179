package model

import "time"

type Stopwatch struct {
	Interval
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Laps []time.Duration `json:"laps"`
}

func NewStopwatch(id, name string, now time.Time) *Stopwatch {
	return &Stopwatch{
		Interval: newInterval(now),
		ID:       id,
		Name:     name,
	}
}

func (s *Stopwatch) Reset(now time.Time) {
	s.Interval.Reset(now)
	s.Laps = nil
}

// Lap records the current elapsed time. Ignored unless running.
func (s *Stopwatch) Lap(now time.Time) bool {
	if s.State != StateRunning {
		return false
	}
	s.Laps = append(s.Laps, s.Elapsed(now))
	return true
}
