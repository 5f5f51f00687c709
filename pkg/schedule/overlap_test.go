package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rng(t *testing.T, start, end string, active bool) TimeRange {
	t.Helper()
	r, err := ParseTimeRange(start, end, active)
	require.NoError(t, err)
	return r
}

func TestOverlapsTouchingEndpointsDoNotConflict(t *testing.T) {
	a := rng(t, "08:00", "12:00", true)
	b := rng(t, "12:00", "14:00", true)
	assert.False(t, Overlaps(a, b))
	assert.False(t, Overlaps(b, a))
}

func TestOverlapsDetectsGenuineOverlap(t *testing.T) {
	a := rng(t, "08:00", "14:00", true)
	b := rng(t, "12:00", "16:00", true)
	assert.True(t, Overlaps(a, b))
}

func TestOverlapsIsSymmetric(t *testing.T) {
	cases := []struct{ a, b TimeRange }{
		{rng(t, "08:00", "14:00", true), rng(t, "12:00", "16:00", true)},
		{rng(t, "08:00", "12:00", true), rng(t, "12:00", "14:00", true)},
		{rng(t, "09:00", "17:00", true), rng(t, "10:00", "11:00", true)},
		{rng(t, "07:00", "08:00", true), rng(t, "09:00", "12:00", true)},
	}
	for _, tc := range cases {
		assert.Equal(t, Overlaps(tc.a, tc.b), Overlaps(tc.b, tc.a), "%s vs %s", tc.a, tc.b)
	}
}

func TestOverlapsInactiveNeverConflicts(t *testing.T) {
	active := rng(t, "08:00", "14:00", true)
	inactive := rng(t, "08:00", "14:00", false)
	assert.False(t, Overlaps(active, inactive))
	assert.False(t, Overlaps(inactive, active))
	assert.False(t, Overlaps(inactive, inactive))
}

func TestConflictsEmptyAndSingleInput(t *testing.T) {
	assert.Empty(t, Conflicts(nil))
	assert.Empty(t, Conflicts([]TimeRange{rng(t, "08:00", "12:00", true)}))
}

func TestConflictsReportsEachPairOnce(t *testing.T) {
	ranges := []TimeRange{
		rng(t, "08:00", "14:00", true),
		rng(t, "13:00", "18:00", true),
		rng(t, "18:00", "20:00", true),
	}
	pairs := Conflicts(ranges)
	require.Len(t, pairs, 1)
	assert.Equal(t, rng(t, "08:00", "14:00", true), pairs[0].First)
	assert.Equal(t, rng(t, "13:00", "18:00", true), pairs[0].Second)
}

func TestConflictsDeterministicRegardlessOfInputOrder(t *testing.T) {
	forward := []TimeRange{
		rng(t, "08:00", "12:00", true),
		rng(t, "10:00", "16:00", true),
		rng(t, "11:00", "13:00", true),
	}
	reversed := []TimeRange{forward[2], forward[1], forward[0]}

	assert.Equal(t, Conflicts(forward), Conflicts(reversed))

	pairs := Conflicts(reversed)
	require.Len(t, pairs, 3)
	// Chronological: 08-12 vs 10-16, 08-12 vs 11-13, 10-16 vs 11-13.
	assert.Equal(t, rng(t, "08:00", "12:00", true), pairs[0].First)
	assert.Equal(t, rng(t, "10:00", "16:00", true), pairs[0].Second)
	assert.Equal(t, rng(t, "11:00", "13:00", true), pairs[1].Second)
	assert.Equal(t, rng(t, "10:00", "16:00", true), pairs[2].First)
}

func TestConflictsIgnoresInactiveRanges(t *testing.T) {
	ranges := []TimeRange{
		rng(t, "08:00", "14:00", true),
		rng(t, "09:00", "10:00", false),
	}
	assert.Empty(t, Conflicts(ranges))
}
