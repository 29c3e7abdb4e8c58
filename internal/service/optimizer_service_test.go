package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minhle/fnb-optimizer/internal/cache"
	"github.com/minhle/fnb-optimizer/internal/config"
	"github.com/minhle/fnb-optimizer/internal/domain"
)

type stubSource struct {
	orders    []domain.OrderRecord
	recipes   []domain.RecipeLine
	inventory []domain.InventoryItem
	err       error
}

func (s *stubSource) ListOrders(ctx context.Context) ([]domain.OrderRecord, error) {
	return s.orders, s.err
}

func (s *stubSource) ListRecipes(ctx context.Context) ([]domain.RecipeLine, error) {
	return s.recipes, s.err
}

func (s *stubSource) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.inventory, s.err
}

type recordingCache struct {
	stored map[cache.ReportKey]*domain.OptimizationReport
	gets   int
	hits   int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{stored: make(map[cache.ReportKey]*domain.OptimizationReport)}
}

func (c *recordingCache) GetReport(ctx context.Context, key cache.ReportKey) (*domain.OptimizationReport, bool, error) {
	c.gets++
	if report, ok := c.stored[key]; ok {
		c.hits++
		return report, true, nil
	}
	return nil, false, nil
}

func (c *recordingCache) SetReport(ctx context.Context, key cache.ReportKey, report *domain.OptimizationReport) error {
	c.stored[key] = report
	return nil
}

func (c *recordingCache) InvalidateReport(ctx context.Context, key cache.ReportKey) error {
	delete(c.stored, key)
	return nil
}

func (c *recordingCache) InvalidateAll(ctx context.Context) error {
	c.stored = make(map[cache.ReportKey]*domain.OptimizationReport)
	return nil
}

func testSource() *stubSource {
	now := time.Now()
	start := now.AddDate(0, 0, -30)

	var orders []domain.OrderRecord
	for i := 0; i < 30; i++ {
		orders = append(orders, domain.OrderRecord{
			Date:         start.AddDate(0, 0, i),
			DishName:     "Chicken Curry",
			QuantitySold: 15,
		})
	}

	return &stubSource{
		orders: orders,
		recipes: []domain.RecipeLine{
			{DishName: "Chicken Curry", MaterialName: "Chicken Breast", QuantityNeeded: 0.3},
		},
		inventory: []domain.InventoryItem{
			{
				MaterialName:      "Chicken Breast",
				CurrentStock:      5,
				Unit:              "kg",
				ExpiryDate:        now.AddDate(0, 0, 10),
				CostPerUnit:       6.0,
				MinimumStockLevel: 10,
			},
		},
	}
}

func TestGenerateReportCachesResult(t *testing.T) {
	rc := newRecordingCache()
	svc := NewOptimizerService(testSource(), rc, config.DefaultForecast(), config.DefaultPlanner())
	ctx := context.Background()

	first, err := svc.GenerateReport(ctx, 7)
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if first.Summary.ForecastPeriodDays != 7 {
		t.Errorf("forecast period = %d, want 7", first.Summary.ForecastPeriodDays)
	}
	if rc.hits != 0 {
		t.Errorf("first call hit the cache %d times", rc.hits)
	}

	second, err := svc.GenerateReport(ctx, 7)
	if err != nil {
		t.Fatalf("GenerateReport (cached): %v", err)
	}
	if rc.hits != 1 {
		t.Errorf("second call cache hits = %d, want 1", rc.hits)
	}
	if !second.Summary.GeneratedAt.Equal(first.Summary.GeneratedAt) {
		t.Error("cached report differs from the original")
	}
}

func TestGenerateReportDistinctHorizonsDoNotShare(t *testing.T) {
	rc := newRecordingCache()
	svc := NewOptimizerService(testSource(), rc, config.DefaultForecast(), config.DefaultPlanner())
	ctx := context.Background()

	if _, err := svc.GenerateReport(ctx, 7); err != nil {
		t.Fatalf("GenerateReport(7): %v", err)
	}
	if _, err := svc.GenerateReport(ctx, 14); err != nil {
		t.Fatalf("GenerateReport(14): %v", err)
	}
	if rc.hits != 0 {
		t.Errorf("different horizons shared a cache entry, hits = %d", rc.hits)
	}
	if len(rc.stored) != 2 {
		t.Errorf("stored entries = %d, want 2", len(rc.stored))
	}
}

func TestGenerateReportPropagatesSourceError(t *testing.T) {
	wantErr := errors.New("table unavailable")
	svc := NewOptimizerService(&stubSource{err: wantErr}, nil, config.DefaultForecast(), config.DefaultPlanner())

	if _, err := svc.GenerateReport(context.Background(), 7); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestInvalidateReports(t *testing.T) {
	rc := newRecordingCache()
	svc := NewOptimizerService(testSource(), rc, config.DefaultForecast(), config.DefaultPlanner())
	ctx := context.Background()

	if _, err := svc.GenerateReport(ctx, 7); err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if err := svc.InvalidateReports(ctx); err != nil {
		t.Fatalf("InvalidateReports: %v", err)
	}
	if len(rc.stored) != 0 {
		t.Errorf("stored entries after invalidation = %d, want 0", len(rc.stored))
	}
}
