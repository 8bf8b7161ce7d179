package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const maxInputLength = 30

var ErrInvalidDuration = errors.New("duration must be HH MM SS, HH MM, or MM")

// ParseDuration accepts "HH MM SS", "HH MM" or "MM" and returns the total in
// seconds. Non-positive totals are rejected.
func ParseDuration(input string) (int, error) {
	parts := strings.Fields(input)
	values := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidDuration, part)
		}
		values[i] = n
	}

	var total int
	switch len(values) {
	case 3:
		total = values[0]*3600 + values[1]*60 + values[2]
	case 2:
		total = values[0]*3600 + values[1]*60
	case 1:
		total = values[0] * 60
	default:
		return 0, ErrInvalidDuration
	}
	if total <= 0 {
		return 0, fmt.Errorf("%w: total must be positive", ErrInvalidDuration)
	}
	return total, nil
}
