package datex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T, zone string, instant time.Time) *Clock {
	t.Helper()
	c, err := NewClock(zone)
	require.NoError(t, err)
	c.Now = func() time.Time { return instant }
	return c
}

func TestClock_TodayRespectsZone(t *testing.T) {
	// 23:30 UTC on Jan 1 is already Jan 2 in Singapore (UTC+8).
	instant := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)

	sg := fixedClock(t, "Asia/Singapore", instant)
	require.Equal(t, "2024-01-02", sg.Today())
	require.Equal(t, "07:30", sg.TimeOfDay())

	utc := fixedClock(t, "UTC", instant)
	require.Equal(t, "2024-01-01", utc.Today())
}

func TestClock_PastDate(t *testing.T) {
	instant := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := fixedClock(t, "UTC", instant)
	require.Equal(t, "2024-02-23", c.PastDate(7))
	require.Equal(t, "2024-03-01", c.PastDate(0))
}

func TestNewClock_UnknownZone(t *testing.T) {
	_, err := NewClock("Mars/Olympus")
	require.Error(t, err)
}

func TestValidators(t *testing.T) {
	require.True(t, ValidDate("2024-01-31"))
	require.False(t, ValidDate("2024-1-31"))
	require.False(t, ValidDate("31/01/2024"))
	require.True(t, ValidTime("09:05"))
	require.False(t, ValidTime("9:5"))
	require.False(t, ValidTime("25:00"))
}
