package schedule

import "fmt"

// Violation reason strings surfaced to callers. They are stable contract
// values consumed by the back-office client to highlight form fields.
const (
	ReasonStartsBeforeOpening = "starts before opening"
	ReasonEndsAfterClosing    = "ends after closing"
	ReasonOutsideWindow       = "starts before opening and ends after closing"
)

// Window is the outer open/close bound a day's active ranges must fit inside.
type Window struct {
	Open  TimeOfDay `json:"open"`
	Close TimeOfDay `json:"close"`
}

// FullDay is the default window applied when a day has no configured
// operating hours.
var FullDay = Window{Open: 0, Close: MaxTimeOfDay}

// NewWindow constructs a validated operating window (Open < Close).
func NewWindow(open, close TimeOfDay) (Window, error) {
	if !open.Valid() {
		return Window{}, fmt.Errorf("invalid window: open %s outside 00:00-23:59", open)
	}
	if !close.Valid() {
		return Window{}, fmt.Errorf("invalid window: close %s outside 00:00-23:59", close)
	}
	if open >= close {
		return Window{}, fmt.Errorf("invalid window %s-%s: open must be before close", open, close)
	}
	return Window{Open: open, Close: close}, nil
}

// Violation pairs a range with the reason it falls outside the window.
type Violation struct {
	Range  TimeRange `json:"range"`
	Reason string    `json:"reason"`
}

// Contains reports whether the range falls entirely within the window.
// Inactive ranges impose no constraint and are unconditionally contained.
func (w Window) Contains(r TimeRange) bool {
	if !r.Active {
		return true
	}
	return r.Start >= w.Open && r.End <= w.Close
}

// ViolationReason describes how an active range escapes the window. The
// second return is false when the range is contained (or inactive).
func (w Window) ViolationReason(r TimeRange) (string, bool) {
	if w.Contains(r) {
		return "", false
	}
	before := r.Start < w.Open
	after := r.End > w.Close
	switch {
	case before && after:
		return ReasonOutsideWindow, true
	case before:
		return ReasonStartsBeforeOpening, true
	default:
		return ReasonEndsAfterClosing, true
	}
}

// String renders the window as "HH:mm-HH:mm".
func (w Window) String() string {
	return fmt.Sprintf("%s-%s", w.Open, w.Close)
}
