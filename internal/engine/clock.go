package engine

import (
	"math"
	"time"

	"github.com/julianstephens/ember/internal/constants"
)

// Calendar-day helpers. All continuity rules compare calendar days in the
// user's configured timezone, never elapsed hours.

// DayString formats t as YYYY-MM-DD in loc
func DayString(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.DateFormat)
}

// SameDay reports whether a and b fall on the same calendar day in loc
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// IsYesterday reports whether t falls on the calendar day before now in loc
func IsYesterday(t, now time.Time, loc *time.Location) bool {
	return SameDay(t, StartOfDay(now, loc).AddDate(0, 0, -1), loc)
}

// StartOfDay returns midnight of t's calendar day in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysBetween returns the number of calendar-day boundaries between a and b
// in loc (0 for the same day, positive when b is after a)
func DaysBetween(a, b time.Time, loc *time.Location) int {
	sa := StartOfDay(a, loc)
	sb := StartOfDay(b, loc)
	// Round, not truncate: DST transitions make some days 23 or 25 hours
	return int(math.Round(sb.Sub(sa).Hours() / 24))
}
