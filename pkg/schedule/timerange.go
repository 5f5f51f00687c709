package schedule

import "fmt"

// TimeRange is an immutable time interval within a single day. Only active
// ranges participate in conflict and containment checks; an inactive range
// never conflicts and never violates an operating window.
type TimeRange struct {
	Start  TimeOfDay `json:"start"`
	End    TimeOfDay `json:"end"`
	Active bool      `json:"active"`
}

// RangeError reports an invalid TimeRange construction. Field identifies the
// offending bound ("start" or "end") so callers can map the failure back to a
// form input.
type RangeError struct {
	Start  TimeOfDay
	End    TimeOfDay
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("invalid range %s-%s: %s", e.Start, e.End, e.Reason)
}

// NewTimeRange constructs a validated TimeRange. An active range requires
// Start < End within one calendar day; overnight wraparound is not supported.
// Inactive ranges are stored as-is, including degenerate ones, since they are
// excluded from all checks.
func NewTimeRange(start, end TimeOfDay, active bool) (TimeRange, error) {
	if !start.Valid() {
		return TimeRange{}, &RangeError{Start: start, End: end, Field: "start", Reason: "start outside 00:00-23:59"}
	}
	if !end.Valid() {
		return TimeRange{}, &RangeError{Start: start, End: end, Field: "end", Reason: "end outside 00:00-23:59"}
	}
	if active && start >= end {
		return TimeRange{}, &RangeError{Start: start, End: end, Field: "end", Reason: "start must be before end"}
	}
	return TimeRange{Start: start, End: end, Active: active}, nil
}

// ParseTimeRange builds a TimeRange from "HH:mm" bounds.
func ParseTimeRange(start, end string, active bool) (TimeRange, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return TimeRange{}, &RangeError{Field: "start", Reason: err.Error()}
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return TimeRange{}, &RangeError{Field: "end", Reason: err.Error()}
	}
	return NewTimeRange(s, e, active)
}

// Minutes returns the range duration in minutes, or 0 for inactive ranges.
func (r TimeRange) Minutes() int {
	if !r.Active {
		return 0
	}
	return int(r.End - r.Start)
}

// String renders the range as "HH:mm-HH:mm".
func (r TimeRange) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}
