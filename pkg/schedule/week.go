package schedule

import "fmt"

// WeeklySchedule maps days to that day's shift ranges. Order within a day is
// caller-supplied; validation sorts internally, so it need not be sorted.
type WeeklySchedule map[Day][]TimeRange

// ScheduleError reports a schedule keyed by a day outside the canonical
// seven-day enumeration.
type ScheduleError struct {
	Day Day
}

// Error implements the error interface.
func (e *ScheduleError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("invalid schedule: unknown day %s", e.Day)
}

// Outcome is the validation report for a single day. It is produced fresh on
// every call and never mutated afterwards.
type Outcome struct {
	Valid      bool           `json:"valid"`
	Conflicts  []ConflictPair `json:"conflicts,omitempty"`
	Violations []Violation    `json:"violations,omitempty"`
	Checked    int            `json:"checked"`
	Skipped    int            `json:"skipped"`
}

// ValidateDay checks one day's ranges for pairwise overlaps and containment
// within the operating window. Inactive ranges pass trivially but are counted
// in Skipped so callers know they were excluded. An empty day is vacuously
// valid.
func ValidateDay(ranges []TimeRange, window Window) Outcome {
	out := Outcome{}
	active := make([]TimeRange, 0, len(ranges))
	for _, r := range ranges {
		if r.Active {
			active = append(active, r)
		} else {
			out.Skipped++
		}
	}
	out.Checked = len(active)

	out.Conflicts = Conflicts(active)
	for _, r := range active {
		if reason, bad := window.ViolationReason(r); bad {
			out.Violations = append(out.Violations, Violation{Range: r, Reason: reason})
		}
	}

	out.Valid = len(out.Conflicts) == 0 && len(out.Violations) == 0
	return out
}

// ValidateWeek validates every day of the schedule independently. Days absent
// from the schedule are treated as closed and report a valid empty outcome;
// days without a configured window fall back to FullDay. The result always
// contains all seven canonical days. It fails only when the schedule carries
// a day key outside the canonical enumeration.
func ValidateWeek(sched WeeklySchedule, windows map[Day]Window) (map[Day]Outcome, error) {
	for d := range sched {
		if !d.Valid() {
			return nil, &ScheduleError{Day: d}
		}
	}

	report := make(map[Day]Outcome, len(Days))
	for _, d := range Days {
		window, ok := windows[d]
		if !ok {
			window = FullDay
		}
		report[d] = ValidateDay(sched[d], window)
	}
	return report, nil
}
