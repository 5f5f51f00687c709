package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a wall-clock value with minute precision expressed as minutes
// since midnight. The valid domain is 00:00 (0) through 23:59 (1439); there is
// no date or timezone component.
type TimeOfDay int

// MaxTimeOfDay is the last representable minute of a day (23:59).
const MaxTimeOfDay TimeOfDay = 24*60 - 1

// ParseTimeOfDay parses an "HH:mm" string into a TimeOfDay.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:mm", raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: bad hour", raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: bad minute", raw)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q: outside 00:00-23:59", raw)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// MustTimeOfDay parses an "HH:mm" string and panics on failure. Intended for
// constants and tests only.
func MustTimeOfDay(raw string) TimeOfDay {
	t, err := ParseTimeOfDay(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Valid reports whether the value lies within the minute-of-day domain.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t <= MaxTimeOfDay
}

// String renders the value in "HH:mm" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}
