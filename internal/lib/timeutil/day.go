// Package timeutil derives the UTC window of a calendar day in a fixed
// reference timezone. All check-in devices agree on what "today" means by
// going through this window instead of their own local clocks.
package timeutil

import "time"

// DayWindow maps now to the half-open UTC window [start, end) of its
// calendar day in loc. The window start is local midnight converted to UTC,
// the end is exactly 24 hours later, which keeps the window well defined
// across DST transitions.
func DayWindow(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	startLocal := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	startUTC := startLocal.UTC()
	return startUTC, startUTC.Add(24 * time.Hour)
}
