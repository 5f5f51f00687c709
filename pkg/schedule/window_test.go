package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window(t *testing.T, open, close string) Window {
	t.Helper()
	w, err := NewWindow(MustTimeOfDay(open), MustTimeOfDay(close))
	require.NoError(t, err)
	return w
}

func TestNewWindowRequiresOrderedBounds(t *testing.T) {
	_, err := NewWindow(MustTimeOfDay("18:00"), MustTimeOfDay("08:00"))
	assert.Error(t, err)
	_, err = NewWindow(MustTimeOfDay("08:00"), MustTimeOfDay("08:00"))
	assert.Error(t, err)
}

func TestWindowContains(t *testing.T) {
	w := window(t, "08:00", "18:00")

	assert.True(t, w.Contains(rng(t, "09:00", "17:00", true)))
	assert.True(t, w.Contains(rng(t, "08:00", "18:00", true)))
	assert.False(t, w.Contains(rng(t, "07:00", "17:00", true)))
	assert.False(t, w.Contains(rng(t, "09:00", "19:00", true)))
}

func TestWindowContainsInactiveUnconditionally(t *testing.T) {
	w := window(t, "08:00", "18:00")
	assert.True(t, w.Contains(rng(t, "01:00", "23:00", false)))
}

func TestWindowViolationReason(t *testing.T) {
	w := window(t, "08:00", "18:00")

	reason, bad := w.ViolationReason(rng(t, "07:00", "17:00", true))
	require.True(t, bad)
	assert.Equal(t, ReasonStartsBeforeOpening, reason)

	reason, bad = w.ViolationReason(rng(t, "09:00", "19:00", true))
	require.True(t, bad)
	assert.Equal(t, ReasonEndsAfterClosing, reason)

	reason, bad = w.ViolationReason(rng(t, "07:00", "19:00", true))
	require.True(t, bad)
	assert.Equal(t, ReasonOutsideWindow, reason)

	_, bad = w.ViolationReason(rng(t, "09:00", "17:00", true))
	assert.False(t, bad)

	_, bad = w.ViolationReason(rng(t, "01:00", "23:00", false))
	assert.False(t, bad)
}

func TestFullDayAcceptsLatestRange(t *testing.T) {
	assert.True(t, FullDay.Contains(rng(t, "00:00", "23:59", true)))
	assert.True(t, FullDay.Contains(rng(t, "09:00", "23:00", true)))
}
