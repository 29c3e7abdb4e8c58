package optimizer

import (
	"errors"
	"testing"
	"time"

	"github.com/minhle/fnb-optimizer/internal/domain"
)

func TestCalculateMaterialRequirements_SingleDishAggregation(t *testing.T) {
	o := newTestOptimizer(day(2025, 6, 10))
	o.LoadData(nil, []domain.RecipeLine{
		{DishName: "Chicken Curry", MaterialName: "Chicken Breast", QuantityNeeded: 0.2},
		{DishName: "Chicken Curry", MaterialName: "Onions", QuantityNeeded: 0.1},
	}, nil)

	date := day(2025, 6, 11)
	reqs, err := o.CalculateMaterialRequirements([]domain.ForecastPoint{
		{Date: date, DishName: "Chicken Curry", PredictedQuantity: 100},
	})
	if err != nil {
		t.Fatalf("CalculateMaterialRequirements failed: %v", err)
	}

	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}

	byMaterial := make(map[string]domain.MaterialRequirement)
	for _, r := range reqs {
		byMaterial[r.MaterialName] = r
		if !r.Date.Equal(date) {
			t.Errorf("requirement date = %s, want %s", r.Date, date)
		}
	}
	if got := byMaterial["Chicken Breast"].TotalMaterialNeeded; !almostEqual(got, 20.0) {
		t.Errorf("Chicken Breast requirement = %v, want 20.0", got)
	}
	if got := byMaterial["Onions"].TotalMaterialNeeded; !almostEqual(got, 10.0) {
		t.Errorf("Onions requirement = %v, want 10.0", got)
	}
}

func TestCalculateMaterialRequirements_SharedMaterialSums(t *testing.T) {
	o := newTestOptimizer(day(2025, 6, 10))
	o.LoadData(nil, []domain.RecipeLine{
		{DishName: "Chicken Curry", MaterialName: "Tomato Sauce", QuantityNeeded: 0.2},
		{DishName: "Pasta Marinara", MaterialName: "Tomato Sauce", QuantityNeeded: 0.15},
	}, nil)

	date := day(2025, 6, 11)
	reqs, err := o.CalculateMaterialRequirements([]domain.ForecastPoint{
		{Date: date, DishName: "Chicken Curry", PredictedQuantity: 10},
		{Date: date, DishName: "Pasta Marinara", PredictedQuantity: 20},
	})
	if err != nil {
		t.Fatalf("CalculateMaterialRequirements failed: %v", err)
	}

	if len(reqs) != 1 {
		t.Fatalf("expected a single aggregated row, got %d", len(reqs))
	}
	if !almostEqual(reqs[0].TotalMaterialNeeded, 10*0.2+20*0.15) {
		t.Errorf("aggregated requirement = %v, want 5.0", reqs[0].TotalMaterialNeeded)
	}
}

func TestCalculateMaterialRequirements_DropsUnrecipedDishes(t *testing.T) {
	o := newTestOptimizer(day(2025, 6, 10))
	o.LoadData(nil, []domain.RecipeLine{
		{DishName: "Fish Soup", MaterialName: "Fish Fillet", QuantityNeeded: 0.25},
	}, nil)

	reqs, err := o.CalculateMaterialRequirements([]domain.ForecastPoint{
		{Date: day(2025, 6, 11), DishName: "Mystery Special", PredictedQuantity: 50},
	})
	if err != nil {
		t.Fatalf("CalculateMaterialRequirements failed: %v", err)
	}
	if len(reqs) != 0 {
		t.Errorf("unreciped dish should contribute nothing, got %d rows", len(reqs))
	}
}

func TestCalculateMaterialRequirements_RequiresRecipes(t *testing.T) {
	o := newTestOptimizer(day(2025, 6, 10))
	if _, err := o.CalculateMaterialRequirements(nil); !errors.Is(err, ErrRecipesNotLoaded) {
		t.Errorf("err = %v, want ErrRecipesNotLoaded", err)
	}
}

func TestCalculateMaterialRequirements_SortedByDateThenMaterial(t *testing.T) {
	o := newTestOptimizer(day(2025, 6, 10))
	o.LoadData(nil, []domain.RecipeLine{
		{DishName: "Fish Soup", MaterialName: "Onions", QuantityNeeded: 0.1},
		{DishName: "Fish Soup", MaterialName: "Fish Fillet", QuantityNeeded: 0.25},
	}, nil)

	d1, d2 := day(2025, 6, 11), day(2025, 6, 12)
	reqs, err := o.CalculateMaterialRequirements([]domain.ForecastPoint{
		{Date: d2, DishName: "Fish Soup", PredictedQuantity: 10},
		{Date: d1, DishName: "Fish Soup", PredictedQuantity: 10},
	})
	if err != nil {
		t.Fatalf("CalculateMaterialRequirements failed: %v", err)
	}
	if len(reqs) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(reqs))
	}

	wantOrder := []struct {
		date     time.Time
		material string
	}{
		{d1, "Fish Fillet"}, {d1, "Onions"}, {d2, "Fish Fillet"}, {d2, "Onions"},
	}
	for i, w := range wantOrder {
		if !reqs[i].Date.Equal(w.date) || reqs[i].MaterialName != w.material {
			t.Errorf("row %d = (%s, %s), want (%s, %s)",
				i, reqs[i].Date.Format("2006-01-02"), reqs[i].MaterialName,
				w.date.Format("2006-01-02"), w.material)
		}
	}
}
