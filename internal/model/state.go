package model

import "time"

type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateFinished State = "finished"
)

// Category is the log category an entity writes under.
type Category string

const (
	CategoryTimer     Category = "Timer"
	CategoryStopwatch Category = "Stopwatch"
	CategorySystem    Category = "System"
)

const (
	MaxNameLength              = 15
	IDLength                   = 8
	DefaultTimerNamePrefix     = "Timer"
	DefaultStopwatchNamePrefix = "Stopwatch"
)

// Pausable is the capability shared by timers and stopwatches. Bulk
// operations on the manager only need this.
type Pausable interface {
	Pause(now time.Time) bool
	Resume(now time.Time) bool
	Reset(now time.Time)
	Elapsed(now time.Time) time.Duration
	Status() State
}
