package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		raw  string
		want TimeOfDay
	}{
		{"00:00", 0},
		{"00:01", 1},
		{"09:00", 540},
		{"12:30", 750},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
		assert.Equal(t, tc.raw, got.String())
	}
}

func TestParseTimeOfDayRejectsBadInput(t *testing.T) {
	for _, raw := range []string{"", "24:00", "12:60", "8", "ab:cd", "-1:00"} {
		_, err := ParseTimeOfDay(raw)
		assert.Error(t, err, raw)
	}
}

func TestNewTimeRangeActiveRequiresOrderedBounds(t *testing.T) {
	_, err := ParseTimeRange("10:00", "10:00", true)
	require.Error(t, err)
	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "end", rangeErr.Field)

	_, err = ParseTimeRange("14:00", "10:00", true)
	assert.Error(t, err)
}

func TestNewTimeRangeInactiveDegenerateAllowed(t *testing.T) {
	r, err := ParseTimeRange("10:00", "10:00", false)
	require.NoError(t, err)
	assert.False(t, r.Active)
	assert.Equal(t, 0, r.Minutes())
}

func TestNewTimeRangeRejectsOutOfDomainBounds(t *testing.T) {
	_, err := NewTimeRange(-1, 100, true)
	require.Error(t, err)
	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "start", rangeErr.Field)

	_, err = NewTimeRange(100, MaxTimeOfDay+1, true)
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "end", rangeErr.Field)
}

func TestTimeRangeMinutes(t *testing.T) {
	r, err := ParseTimeRange("08:00", "14:30", true)
	require.NoError(t, err)
	assert.Equal(t, 390, r.Minutes())
	assert.Equal(t, "08:00-14:30", r.String())
}

func TestParseDay(t *testing.T) {
	cases := map[string]Day{
		"monday":    Monday,
		"MONDAY":    Monday,
		"lunes":     Monday,
		"Martes":    Tuesday,
		"miercoles": Wednesday,
		"miércoles": Wednesday,
		"domingo":   Sunday,
		"sunday":    Sunday,
	}
	for raw, want := range cases {
		got, err := ParseDay(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseDay("someday")
	assert.Error(t, err)
}
