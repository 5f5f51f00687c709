package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDayEmptyIsValid(t *testing.T) {
	out := ValidateDay(nil, window(t, "08:00", "22:00"))
	assert.True(t, out.Valid)
	assert.Empty(t, out.Conflicts)
	assert.Empty(t, out.Violations)
	assert.Zero(t, out.Checked)
	assert.Zero(t, out.Skipped)
}

func TestValidateDayCountsSkippedInactiveRanges(t *testing.T) {
	ranges := []TimeRange{
		rng(t, "08:00", "12:00", true),
		rng(t, "09:00", "11:00", false),
	}
	out := ValidateDay(ranges, FullDay)
	assert.True(t, out.Valid)
	assert.Equal(t, 1, out.Checked)
	assert.Equal(t, 1, out.Skipped)
}

func TestValidateDayReportsConflictsAndViolations(t *testing.T) {
	ranges := []TimeRange{
		rng(t, "07:00", "14:00", true),
		rng(t, "13:00", "18:00", true),
	}
	out := ValidateDay(ranges, window(t, "08:00", "22:00"))
	assert.False(t, out.Valid)
	require.Len(t, out.Conflicts, 1)
	require.Len(t, out.Violations, 1)
	assert.Equal(t, ReasonStartsBeforeOpening, out.Violations[0].Reason)
	assert.Equal(t, rng(t, "07:00", "14:00", true), out.Violations[0].Range)
}

func TestValidateWeekOverlappingShifts(t *testing.T) {
	sched := WeeklySchedule{
		Monday: {
			rng(t, "08:00", "14:00", true),
			rng(t, "13:00", "18:00", true),
		},
	}
	windows := map[Day]Window{Monday: window(t, "08:00", "22:00")}

	report, err := ValidateWeek(sched, windows)
	require.NoError(t, err)

	monday := report[Monday]
	assert.False(t, monday.Valid)
	require.Len(t, monday.Conflicts, 1)
	assert.Equal(t, rng(t, "08:00", "14:00", true), monday.Conflicts[0].First)
	assert.Equal(t, rng(t, "13:00", "18:00", true), monday.Conflicts[0].Second)
	assert.Empty(t, monday.Violations)
}

func TestValidateWeekWindowFallbackAndViolation(t *testing.T) {
	sched := WeeklySchedule{
		Monday:  {rng(t, "08:00", "14:00", true)},
		Tuesday: {rng(t, "09:00", "23:00", true)},
	}

	// No window for Monday: FullDay applies and the shift is valid.
	report, err := ValidateWeek(sched, map[Day]Window{
		Tuesday: window(t, "09:00", "22:00"),
	})
	require.NoError(t, err)

	assert.True(t, report[Monday].Valid)
	tuesday := report[Tuesday]
	assert.False(t, tuesday.Valid)
	require.Len(t, tuesday.Violations, 1)
	assert.Equal(t, ReasonEndsAfterClosing, tuesday.Violations[0].Reason)
}

func TestValidateWeekAbsentDaysAreVacuouslyValid(t *testing.T) {
	report, err := ValidateWeek(WeeklySchedule{}, nil)
	require.NoError(t, err)
	require.Len(t, report, 7)
	for _, d := range Days {
		out, ok := report[d]
		require.True(t, ok, d)
		assert.True(t, out.Valid, d)
		assert.Empty(t, out.Conflicts, d)
		assert.Empty(t, out.Violations, d)
	}
}

func TestValidateWeekRejectsUnknownDayKey(t *testing.T) {
	sched := WeeklySchedule{Day(9): {rng(t, "08:00", "12:00", true)}}
	_, err := ValidateWeek(sched, nil)
	require.Error(t, err)
	var schedErr *ScheduleError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, Day(9), schedErr.Day)
}

func TestValidateWeekIsIdempotent(t *testing.T) {
	sched := WeeklySchedule{
		Monday: {
			rng(t, "08:00", "14:00", true),
			rng(t, "13:00", "18:00", true),
			rng(t, "20:00", "22:00", false),
		},
		Friday: {rng(t, "10:00", "16:00", true)},
	}
	windows := map[Day]Window{Monday: window(t, "08:00", "22:00")}

	first, err := ValidateWeek(sched, windows)
	require.NoError(t, err)
	second, err := ValidateWeek(sched, windows)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
