package clock

import (
	"sync"
	"time"
)

// Clock provides the current wall-clock time. The core never calls time.Now
// directly so tests can drive it with a Fake.
type Clock interface {
	Now() time.Time
}

// Real uses the standard time package.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fake is a test clock that only moves when told to.
type Fake struct {
	mu      sync.Mutex
	current time.Time
}

func NewFake(start time.Time) *Fake {
	return &Fake{current: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.current = f.current.Add(d)
	f.mu.Unlock()
}

func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	f.current = t
	f.mu.Unlock()
}
