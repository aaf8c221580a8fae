package util

import "time"

// DateOnly truncates t to midnight in its own location. Scheduling, streaks
// and leaderboard windows all operate on whole calendar days.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayGap returns the number of whole calendar days from `from` to `to`.
// Both dates are rebuilt at UTC midnight from their components so that
// DST-shortened or -lengthened days still count as exactly one day.
func DayGap(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
