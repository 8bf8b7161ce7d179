package model

import (
	"fmt"
	"strings"
	"time"
)

// FormatClock renders d as HH:MM:SS, truncating sub-second precision.
// Negative durations render as zero.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// TruncateName caps a display name at MaxNameLength runes.
func TruncateName(name string) string {
	name = strings.TrimSpace(name)
	runes := []rune(name)
	if len(runes) > MaxNameLength {
		return string(runes[:MaxNameLength])
	}
	return name
}
