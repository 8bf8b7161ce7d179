package model

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 2, 3, 17, 34, 22, 0, time.Local)

func TestIntervalPauseContributesNothing(t *testing.T) {
	iv := newInterval(epoch)
	now := epoch.Add(10 * time.Second)

	beforePause := iv.Elapsed(now)
	if !iv.Pause(now) {
		t.Fatal("expected pause from running to succeed")
	}

	now = now.Add(time.Minute)
	if got := iv.Elapsed(now); got != beforePause {
		t.Fatalf("elapsed moved while paused: got %v, want %v", got, beforePause)
	}

	if !iv.Resume(now) {
		t.Fatal("expected resume from paused to succeed")
	}
	if got := iv.Elapsed(now); got != beforePause {
		t.Fatalf("elapsed right after resume: got %v, want %v", got, beforePause)
	}

	now = now.Add(5 * time.Second)
	if got := iv.Elapsed(now); got != beforePause+5*time.Second {
		t.Fatalf("elapsed after running again: got %v, want %v", got, beforePause+5*time.Second)
	}
	if iv.AccumulatedPause != time.Minute {
		t.Fatalf("expected accumulated pause of 1m, got %v", iv.AccumulatedPause)
	}
}

func TestIntervalRepeatedCycles(t *testing.T) {
	iv := newInterval(epoch)
	now := epoch
	var running time.Duration
	for i := 1; i <= 5; i++ {
		step := time.Duration(i) * time.Second
		now = now.Add(step)
		running += step
		iv.Pause(now)
		now = now.Add(time.Duration(i) * time.Minute)
		iv.Resume(now)
		if got := iv.Elapsed(now); got != running {
			t.Fatalf("cycle %d: elapsed %v, want %v", i, got, running)
		}
	}
}

func TestIntervalMisuseIsNoop(t *testing.T) {
	iv := newInterval(epoch)
	if iv.Resume(epoch.Add(time.Second)) {
		t.Fatal("resume on running interval should be a no-op")
	}
	iv.Pause(epoch.Add(2 * time.Second))
	pausedAt := *iv.PausedAt
	if iv.Pause(epoch.Add(3 * time.Second)) {
		t.Fatal("second pause should be a no-op")
	}
	if !iv.PausedAt.Equal(pausedAt) {
		t.Fatalf("pausedAt changed by no-op pause: %v", iv.PausedAt)
	}
}

func TestIntervalReset(t *testing.T) {
	iv := newInterval(epoch)
	iv.Pause(epoch.Add(time.Second))
	iv.Resume(epoch.Add(time.Minute))

	resetAt := epoch.Add(2 * time.Minute)
	iv.Reset(resetAt)
	if iv.State != StateRunning || iv.PausedAt != nil || iv.AccumulatedPause != 0 {
		t.Fatalf("unexpected interval after reset: %+v", iv)
	}
	if got := iv.Elapsed(resetAt); got != 0 {
		t.Fatalf("expected zero elapsed after reset, got %v", got)
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[time.Duration]string{
		0:                                     "00:00:00",
		3661 * time.Second:                    "01:01:01",
		59*time.Second + 900*time.Millisecond: "00:00:59",
		-5 * time.Second:                      "00:00:00",
		100 * time.Hour:                       "100:00:00",
	}
	for in, want := range cases {
		if got := FormatClock(in); got != want {
			t.Fatalf("FormatClock(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncateName(t *testing.T) {
	if got := TruncateName("a very long timer name"); got != "a very long tim" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := TruncateName("  Tea "); got != "Tea" {
		t.Fatalf("expected trimmed name, got %q", got)
	}
}
