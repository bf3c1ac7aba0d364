package utils

import "time"

// TodayZero truncate time to today zero clock in its own location
func TodayZero(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}

// TomorrowZero round time to tomorrow zero clock in its own location
func TomorrowZero(now time.Time) time.Time {
	return TodayZero(now).AddDate(0, 0, 1)
}
