package domain

import (
	"math"
	"time"
)

// Calendar centralizes every "same calendar day" and "exactly one day apart"
// comparison behind a single timezone policy. Streak logic must go through
// this type so day boundaries cannot diverge across call sites.
type Calendar struct {
	loc *time.Location
}

// NewCalendar creates a calendar pinned to the given location.
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc}
}

// DefaultCalendar uses UTC day boundaries.
func DefaultCalendar() Calendar {
	return Calendar{loc: time.UTC}
}

// StartOfDay truncates t to midnight in the calendar's timezone.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}

// SameDay reports whether a and b fall on the same calendar day.
func (c Calendar) SameDay(a, b time.Time) bool {
	return c.StartOfDay(a).Equal(c.StartOfDay(b))
}

// DaysBetween returns the number of calendar-day boundaries crossed from a
// to b. Same day = 0, consecutive days = 1, negative when b precedes a.
// Rounded because midnights can be 23 or 25 hours apart across DST shifts.
func (c Calendar) DaysBetween(a, b time.Time) int {
	da := c.StartOfDay(a)
	db := c.StartOfDay(b)
	return int(math.Round(db.Sub(da).Hours() / 24))
}

// DayKey returns the day as "YYYY-MM-DD" in the calendar's timezone.
func (c Calendar) DayKey(t time.Time) string {
	return t.In(c.loc).Format("2006-01-02")
}
