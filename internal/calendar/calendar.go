// Package calendar supplies the day boundaries the reset and decay passes
// branch on. All values are date-only strings in the clock's local zone, so
// equality and lexicographic order are safe comparisons.
package calendar

import (
	"sync"
	"time"
)

const DateLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FakeClock is deterministic and test-friendly.
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{t: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// Snapshot is the set of boundaries a single reset pass evaluates against.
type Snapshot struct {
	Today      string
	Yesterday  string
	WeekStart  string // Monday-anchored
	MonthStart string
}

// SnapshotAt computes the boundaries for the day containing now, in now's
// location.
func SnapshotAt(now time.Time) Snapshot {
	y, m, d := now.Date()
	loc := now.Location()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	// Monday anchor: Sunday counts as 6 days into the week.
	offset := (int(day.Weekday()) + 6) % 7

	return Snapshot{
		Today:      day.Format(DateLayout),
		Yesterday:  day.AddDate(0, 0, -1).Format(DateLayout),
		WeekStart:  day.AddDate(0, 0, -offset).Format(DateLayout),
		MonthStart: time.Date(y, m, 1, 0, 0, 0, 0, loc).Format(DateLayout),
	}
}
