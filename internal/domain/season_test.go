package domain

import (
	"testing"
	"time"
)

func TestSeasonOf(t *testing.T) {
	cases := []struct {
		month time.Month
		want  Season
	}{
		{time.January, Winter},
		{time.February, Winter},
		{time.March, Spring},
		{time.May, Spring},
		{time.June, Summer},
		{time.August, Summer},
		{time.September, Fall},
		{time.November, Fall},
		{time.December, Winter},
	}

	for _, c := range cases {
		date := time.Date(2025, c.month, 15, 0, 0, 0, 0, time.UTC)
		if got := SeasonOf(date); got != c.want {
			t.Errorf("SeasonOf(%s) = %s, want %s", c.month, got, c.want)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	// 2025-06-14 is a Saturday
	sat := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	if !IsWeekend(sat) {
		t.Error("expected Saturday to be a weekend")
	}
	if !IsWeekend(sat.AddDate(0, 0, 1)) {
		t.Error("expected Sunday to be a weekend")
	}
	if IsWeekend(sat.AddDate(0, 0, 2)) {
		t.Error("expected Monday not to be a weekend")
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		t    time.Time
		want int
	}{
		{"four days out", now.AddDate(0, 0, 4), 4},
		{"same instant", now, 0},
		{"already expired", now.AddDate(0, 0, -2), -2},
	}

	for _, c := range cases {
		if got := DaysUntil(now, c.t); got != c.want {
			t.Errorf("%s: DaysUntil = %d, want %d", c.name, got, c.want)
		}
	}
}
