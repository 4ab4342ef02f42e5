package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartOfDayUsesLocation(t *testing.T) {
	dhaka := time.FixedZone("BDT", 6*3600)

	// 20:30 UTC is 02:30 next day in UTC+6
	ts := time.Date(2026, 3, 10, 20, 30, 0, 0, time.UTC)

	require.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), StartOfDay(ts, time.UTC))
	require.True(t, StartOfDay(ts, dhaka).Equal(time.Date(2026, 3, 11, 0, 0, 0, 0, dhaka)))
	require.True(t, NextMidnight(ts, dhaka).Equal(time.Date(2026, 3, 12, 0, 0, 0, 0, dhaka)))
}

func TestStartOfWeekAndMonth(t *testing.T) {
	// Thursday
	ts := time.Date(2026, 10, 15, 13, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), StartOfWeek(ts, time.UTC))
	require.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(ts, time.UTC))

	// Monday stays on itself
	monday := time.Date(2026, 10, 12, 0, 0, 1, 0, time.UTC)
	require.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), StartOfWeek(monday, time.UTC))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 1, 1, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	require.True(t, SameDay(a, b, time.UTC))
	require.False(t, SameDay(b, c, time.UTC))
}

func TestBreakdown(t *testing.T) {
	r := Breakdown(2*time.Hour + 5*time.Minute + 9*time.Second + 300*time.Millisecond)
	require.Equal(t, 2, r.Hours)
	require.Equal(t, 5, r.Minutes)
	require.Equal(t, 9, r.Seconds)
	require.Equal(t, int64(7509300), r.Millis)
	require.Equal(t, 2*time.Hour+5*time.Minute+9*time.Second+300*time.Millisecond, r.Duration())

	require.True(t, Breakdown(-time.Second).IsZero())
}

func TestEpochMillisRoundTrip(t *testing.T) {
	ts := time.Date(2026, 5, 6, 7, 8, 9, 123000000, time.UTC)
	require.Equal(t, ts, FromEpochMillis(EpochMillis(ts)))
}

func TestMockClock(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMock(start)
	m.Advance(90 * time.Minute)
	require.Equal(t, start.Add(90*time.Minute), m.Now())

	m.Set(start)
	require.Equal(t, start, m.Now())
}
