package forecast

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/minhle/fnb-optimizer/internal/config"
	"github.com/minhle/fnb-optimizer/internal/domain"
)

func learnedConfig(algorithm string) config.ForecastConfig {
	cfg := config.DefaultForecast()
	cfg.UseML = true
	cfg.Algorithm = algorithm
	return cfg
}

func TestLinearRegressor_FitsConstantSeries(t *testing.T) {
	reg := &linearRegressor{lambda: 1.0}

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	features := make([][]float64, 60)
	targets := make([]float64, 60)
	for i := range features {
		features[i] = featureVector(start.AddDate(0, 0, i))
		targets[i] = 40
	}

	if err := reg.train(features, targets); err != nil {
		t.Fatalf("train failed: %v", err)
	}

	got, err := reg.predictOne(featureVector(start.AddDate(0, 0, 90)))
	if err != nil {
		t.Fatalf("predictOne failed: %v", err)
	}
	if math.Abs(got-40) > 1e-6 {
		t.Errorf("constant series prediction = %v, want 40", got)
	}
}

func TestLinearRegressor_UnderdeterminedOLSFails(t *testing.T) {
	reg := &linearRegressor{}
	fv := featureVector(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	if err := reg.train([][]float64{fv}, []float64{7}); err == nil {
		t.Error("expected OLS training on a single row to fail")
	}
}

func TestLearned_FallsBackToMeanOnDegenerateData(t *testing.T) {
	l := NewLearned(learnedConfig("ols"))
	l.clock = fixedClock(time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC))

	// A single observation cannot determine the OLS coefficients, so the
	// dish must degrade to its historical mean instead of failing.
	orders := []domain.OrderRecord{{
		Date:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		DishName:     "Fish Soup",
		QuantitySold: 7,
	}}
	if err := l.Fit(orders); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	points, err := l.Predict(3)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	for _, p := range points {
		if p.PredictedQuantity != 7 {
			t.Errorf("fallback prediction = %d, want 7", p.PredictedQuantity)
		}
		if p.Algorithm != "mean" {
			t.Errorf("fallback algorithm tag = %q, want \"mean\"", p.Algorithm)
		}
	}
}

func TestLearned_CoverageMatchesStatistical(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	history := append(orderHistory("Chicken Curry", 15, 45, start),
		orderHistory("Beef Steak", 10, 45, start)...)

	l := NewLearned(learnedConfig("ridge"))
	l.clock = fixedClock(now)
	if err := l.Fit(history); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	const days = 5
	points, err := l.Predict(days)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if want := days * 2; len(points) != want {
		t.Fatalf("expected %d points, got %d", want, len(points))
	}

	wantFirst := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	if !points[0].Date.Equal(wantFirst) {
		t.Errorf("first forecast date = %s, want %s", points[0].Date, wantFirst)
	}
	for _, p := range points {
		if p.PredictedQuantity < 0 {
			t.Errorf("negative prediction for %s on %s", p.DishName, p.Date)
		}
	}
}

func TestLearned_DeterministicGivenFixedTrainingSet(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	history := orderHistory("Pasta Marinara", 18, 60, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	l1 := NewLearned(learnedConfig("ridge"))
	l1.clock = fixedClock(now)
	l2 := NewLearned(learnedConfig("ridge"))
	l2.clock = fixedClock(now)

	if err := l1.Fit(history); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if err := l2.Fit(history); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	p1, err := l1.Predict(7)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	p2, err := l2.Predict(7)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if !reflect.DeepEqual(p1, p2) {
		t.Error("two forecasters trained on the same history disagree")
	}
}

func TestLearned_PredictBeforeFit(t *testing.T) {
	l := NewLearned(learnedConfig("ridge"))
	if _, err := l.Predict(7); !errors.Is(err, ErrNoOrders) {
		t.Errorf("Predict before Fit: err = %v, want ErrNoOrders", err)
	}
}

func TestNew_ModeSelection(t *testing.T) {
	cfg := config.DefaultForecast()
	if _, mode := New(cfg); mode != ModeStatistical {
		t.Errorf("mode = %s, want statistical", mode)
	}

	if _, mode := New(learnedConfig("ridge")); mode != ModeLearned {
		t.Errorf("mode = %s, want learned", mode)
	}

	f, mode := New(learnedConfig("prophet"))
	if mode != ModeLearnedUnavailable {
		t.Errorf("mode = %s, want learned-unavailable", mode)
	}
	if _, ok := f.(*Statistical); !ok {
		t.Errorf("unavailable learned algorithm should fall back to Statistical, got %T", f)
	}
}
