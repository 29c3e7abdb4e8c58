package forecast

import (
	"math"
	"testing"
	"time"
)

func TestFeatureVector_Width(t *testing.T) {
	fv := featureVector(time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC))
	if len(fv) != featureCount {
		t.Fatalf("feature vector width = %d, want %d", len(fv), featureCount)
	}
}

func TestFeatureVector_WeekendFlag(t *testing.T) {
	// 2025-06-14 is a Saturday, 2025-06-16 a Monday.
	sat := featureVector(time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC))
	mon := featureVector(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC))
	if sat[6] != 1.0 {
		t.Error("expected weekend flag set for Saturday")
	}
	if mon[6] != 0.0 {
		t.Error("expected weekend flag clear for Monday")
	}
}

func TestFeatureVector_CyclicalContinuityAcrossYearEnd(t *testing.T) {
	dec31 := featureVector(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	jan1 := featureVector(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	// The sin/cos day-of-year encoding (indices 7 and 8) must not jump at
	// the year boundary, unlike the raw day-of-year feature.
	for _, idx := range []int{7, 8} {
		if diff := math.Abs(dec31[idx] - jan1[idx]); diff > 0.05 {
			t.Errorf("cyclical feature %d jumps by %v across year end", idx, diff)
		}
	}
}

func TestFeatureVector_BoundaryFlags(t *testing.T) {
	jan1 := featureVector(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	dec31 := featureVector(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	midMonth := featureVector(time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC))

	// indices: 11 month start, 12 month end, 13 quarter start,
	// 14 quarter end, 15 year start, 16 year end
	for _, idx := range []int{11, 13, 15} {
		if jan1[idx] != 1.0 {
			t.Errorf("Jan 1: expected start flag %d set", idx)
		}
	}
	for _, idx := range []int{12, 14, 16} {
		if dec31[idx] != 1.0 {
			t.Errorf("Dec 31: expected end flag %d set", idx)
		}
	}
	for idx := 11; idx <= 16; idx++ {
		if midMonth[idx] != 0.0 {
			t.Errorf("May 15: expected boundary flag %d clear", idx)
		}
	}
}
