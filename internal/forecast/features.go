package forecast

import (
	"math"
	"time"
)

// featureCount is the width of the calendar feature vector fed to the
// learned strategy's regressors.
const featureCount = 17

// featureVector encodes a date into the calendar features the learned
// strategy trains on. Sine/cosine pairs give the model continuity across
// year and month boundaries (Dec 31 is adjacent to Jan 1).
func featureVector(t time.Time) []float64 {
	dayOfYear := float64(t.YearDay())
	month := float64(t.Month())
	_, isoWeek := t.ISOWeek()
	quarter := float64((int(t.Month())-1)/3 + 1)

	weekend := 0.0
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		weekend = 1.0
	}

	lastOfMonth := t.AddDate(0, 0, 1).Day() == 1
	firstOfMonth := t.Day() == 1
	firstOfQuarter := firstOfMonth && int(t.Month())%3 == 1
	lastOfQuarter := lastOfMonth && int(t.Month())%3 == 0
	firstOfYear := t.YearDay() == 1
	lastOfYear := t.Month() == time.December && t.Day() == 31

	return []float64{
		float64(t.Weekday()),
		float64(t.Day()),
		month,
		quarter,
		float64(isoWeek),
		dayOfYear,
		weekend,
		math.Sin(2 * math.Pi * dayOfYear / 365.25),
		math.Cos(2 * math.Pi * dayOfYear / 365.25),
		math.Sin(2 * math.Pi * month / 12),
		math.Cos(2 * math.Pi * month / 12),
		boolFeature(firstOfMonth),
		boolFeature(lastOfMonth),
		boolFeature(firstOfQuarter),
		boolFeature(lastOfQuarter),
		boolFeature(firstOfYear),
		boolFeature(lastOfYear),
	}
}

func boolFeature(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
