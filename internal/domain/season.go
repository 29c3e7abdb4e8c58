package domain

import "time"

// Season is one of the four fixed month buckets shared by the statistical
// forecaster and the dish recommender.
type Season string

const (
	Winter Season = "winter"
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
)

// SeasonOf buckets a date by calendar month: Dec-Feb winter, Mar-May spring,
// Jun-Aug summer, Sep-Nov fall.
func SeasonOf(t time.Time) Season {
	switch t.Month() {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Fall
	}
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DaysUntil returns the whole number of 24h periods from now until t,
// truncated toward zero. Negative when t is already in the past.
func DaysUntil(now, t time.Time) int {
	return int(t.Sub(now).Hours() / 24)
}
