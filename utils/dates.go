package utils

import "time"

// UTCDay is midnight UTC of the calendar day t falls on in UTC.
func UTCDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts UTC calendar days from start to end, negative when end
// is earlier. Arguments in different zones are compared on the same clock.
func DaysBetween(start, end time.Time) int {
	return int(UTCDay(end).Sub(UTCDay(start)) / (24 * time.Hour))
}
