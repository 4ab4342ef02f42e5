package clock

import (
	"sync"
	"time"
)

// Day is one calendar day of wall time.
const Day = 24 * time.Hour

// Clock is the server-side time source used by every reward policy
type Clock interface {
	Now() time.Time
}

// System returns the real time in UTC
type System struct{}

// Now returns time.Now in UTC
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Mock is a settable clock for tests
type Mock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMock creates a mock clock fixed at t
func NewMock(t time.Time) *Mock {
	return &Mock{now: t}
}

// Now returns the mocked time
func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the mock clock to t
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the mock clock forward by d
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// EpochMillis converts t to milliseconds since the Unix epoch
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromEpochMillis converts milliseconds since the Unix epoch to UTC time
func FromEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// StartOfDay returns local midnight of the day containing t in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// NextMidnight returns local midnight of the day after t in loc
func NextMidnight(t time.Time, loc *time.Location) time.Time {
	start := StartOfDay(t, loc)
	return time.Date(start.Year(), start.Month(), start.Day()+1, 0, 0, 0, 0, start.Location())
}

// StartOfWeek returns local midnight of the Monday starting t's week
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	start := StartOfDay(t, loc)
	daysSinceMonday := (int(start.Weekday()) - int(time.Monday) + 7) % 7
	return start.AddDate(0, 0, -daysSinceMonday)
}

// StartOfMonth returns local midnight of the first day of t's month
func StartOfMonth(t time.Time, loc *time.Location) time.Time {
	start := StartOfDay(t, loc)
	return time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
}

// SameDay reports whether a and b fall on the same calendar day in loc
func SameDay(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}

// Remaining is a countdown broken into display units
type Remaining struct {
	Hours   int   `json:"hours"`
	Minutes int   `json:"minutes"`
	Seconds int   `json:"seconds"`
	Millis  int64 `json:"total_ms"`
}

// Breakdown splits d into hours, minutes and seconds. Negative durations are zero.
func Breakdown(d time.Duration) Remaining {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return Remaining{
		Hours:   total / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
		Millis:  d.Milliseconds(),
	}
}

// Duration converts the breakdown back to a duration
func (r Remaining) Duration() time.Duration {
	return time.Duration(r.Millis) * time.Millisecond
}

// IsZero reports whether nothing remains
func (r Remaining) IsZero() bool {
	return r.Millis <= 0
}
