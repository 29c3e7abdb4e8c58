package optimizer

import (
	"errors"
	"testing"
	"time"

	"github.com/minhle/fnb-optimizer/internal/domain"
	"github.com/minhle/fnb-optimizer/internal/forecast"
	"github.com/shopspring/decimal"
)

func TestGenerateReport_EndToEnd(t *testing.T) {
	now := time.Now()
	o := newTestOptimizer(now)

	start := now.AddDate(0, 0, -30)
	orders := make([]domain.OrderRecord, 0, 60)
	for i := 0; i < 30; i++ {
		orders = append(orders,
			domain.OrderRecord{Date: start.AddDate(0, 0, i), DishName: "Chicken Curry", QuantitySold: 15},
			domain.OrderRecord{Date: start.AddDate(0, 0, i), DishName: "Fish Soup", QuantitySold: 12},
		)
	}

	recipes := []domain.RecipeLine{
		{DishName: "Chicken Curry", MaterialName: "Chicken Breast", QuantityNeeded: 0.3},
		{DishName: "Chicken Curry", MaterialName: "Onions", QuantityNeeded: 0.1},
		{DishName: "Fish Soup", MaterialName: "Fish Fillet", QuantityNeeded: 0.25},
	}

	inventory := []domain.InventoryItem{
		stockedItem("Chicken Breast", 5, 10, 6.0, now.AddDate(0, 0, 20)),
		stockedItem("Onions", 100, 10, 0.8, now.AddDate(0, 0, 2)),
		stockedItem("Fish Fillet", 2, 5, 9.0, now.AddDate(0, 0, 1)),
	}

	o.LoadData(orders, recipes, inventory)

	const days = 7
	report, err := o.GenerateReport(days)
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}

	if want := days * 2; len(report.DemandForecast) != want {
		t.Errorf("forecast points = %d, want %d", len(report.DemandForecast), want)
	}
	if report.Summary.ForecastPeriodDays != days {
		t.Errorf("summary period = %d, want %d", report.Summary.ForecastPeriodDays, days)
	}
	if !report.Summary.GeneratedAt.Equal(now) {
		t.Errorf("generated at = %s, want %s", report.Summary.GeneratedAt, now)
	}
	if report.Summary.MaterialsToRestock != len(report.RestockingNeeds) {
		t.Errorf("summary restock count = %d, slice has %d",
			report.Summary.MaterialsToRestock, len(report.RestockingNeeds))
	}
	if report.Summary.MaterialsNearExpiry != len(report.NearExpiry) {
		t.Errorf("summary expiry count = %d, slice has %d",
			report.Summary.MaterialsNearExpiry, len(report.NearExpiry))
	}
	if report.Summary.RecommendedDishes != len(report.Recommendations) {
		t.Errorf("summary recommendation count = %d, slice has %d",
			report.Summary.RecommendedDishes, len(report.Recommendations))
	}

	total := decimal.Zero
	for _, d := range report.RestockingNeeds {
		if !d.NeedsRestocking {
			t.Errorf("surfaced decision for %s is not flagged", d.MaterialName)
		}
		if d.RestockQuantity < 0 {
			t.Errorf("negative restock quantity for %s", d.MaterialName)
		}
		total = total.Add(d.RestockCost)
	}
	if !report.Summary.TotalRestockCost.Equal(total) {
		t.Errorf("summary total cost = %s, decisions sum to %s",
			report.Summary.TotalRestockCost, total)
	}

	// Demand of ~15/day against 5 units of Chicken Breast must restock.
	found := false
	for _, d := range report.RestockingNeeds {
		if d.MaterialName == "Chicken Breast" {
			found = true
		}
	}
	if !found {
		t.Error("expected Chicken Breast in restocking needs")
	}

	// Fish Fillet expires within the 3-day report threshold.
	if len(report.NearExpiry) == 0 {
		t.Fatal("expected near-expiry materials in the report")
	}
	if report.NearExpiry[0].MaterialName != "Fish Fillet" {
		t.Errorf("most urgent material = %s, want Fish Fillet", report.NearExpiry[0].MaterialName)
	}
}

func TestGenerateReport_PropagatesMissingData(t *testing.T) {
	o := newTestOptimizer(time.Now())
	if _, err := o.GenerateReport(7); !errors.Is(err, ErrOrdersNotLoaded) {
		t.Errorf("err = %v, want ErrOrdersNotLoaded", err)
	}
}

func TestGenerateReport_InvalidHorizon(t *testing.T) {
	o := newTestOptimizer(time.Now())
	o.LoadData([]domain.OrderRecord{
		{Date: time.Now().AddDate(0, 0, -1), DishName: "Pho Bo", QuantitySold: 10},
	}, nil, nil)

	if _, err := o.GenerateReport(0); !errors.Is(err, forecast.ErrHorizonOutOfRange) {
		t.Errorf("err = %v, want ErrHorizonOutOfRange", err)
	}
}
