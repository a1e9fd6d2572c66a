package models

// Simulation time is measured in whole hours since Monday 00:00 of week 0.
// A day is 24 hours, a week 168. These helpers are the shared slot-key
// arithmetic used by every planner.

const (
	HoursPerDay  = 24
	HoursPerWeek = 168
)

// HourOfDay returns the hour of day (0..23) for a simulation hour.
func HourOfDay(t int) int {
	return t % HoursPerDay
}

// DayOfWeek returns the weekday 1 (Monday) through 7 (Sunday).
func DayOfWeek(t int) int {
	return (t/HoursPerDay)%7 + 1
}

// WeekIndex returns the zero-based week number.
func WeekIndex(t int) int {
	return t / HoursPerWeek
}

// IsWeekend reports whether the simulation hour falls on Saturday or Sunday.
func IsWeekend(t int) bool {
	return DayOfWeek(t) >= 6
}

// NextEightAM returns the first 08:00 at or after t.
func NextEightAM(t int) int {
	hod := HourOfDay(t)
	base := t - hod
	if hod <= 8 {
		return base + 8
	}
	return base + 32
}

// NextDay0800 returns 08:00 daysAhead calendar days after t, and never
// earlier than t+1.
func NextDay0800(t, daysAhead int) int {
	target := (t/HoursPerDay+daysAhead)*HoursPerDay + 8
	if target < t+1 {
		return t + 1
	}
	return target
}
