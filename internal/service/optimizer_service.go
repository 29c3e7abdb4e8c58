package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/minhle/fnb-optimizer/internal/cache"
	"github.com/minhle/fnb-optimizer/internal/config"
	"github.com/minhle/fnb-optimizer/internal/domain"
	"github.com/minhle/fnb-optimizer/internal/forecast"
	"github.com/minhle/fnb-optimizer/internal/optimizer"
	"github.com/minhle/fnb-optimizer/internal/repository"
	"github.com/minhle/fnb-optimizer/internal/storage"
)

// OptimizerService ties the ingestion layer to the planning engine. Each
// call loads a fresh view of the input tables so restocking and expiry
// always reflect current inventory.
type OptimizerService struct {
	source   repository.DataSource
	cache    cache.ReportCache
	snapshot *storage.SnapshotStore
	forecast config.ForecastConfig
	planner  config.PlannerConfig
}

func NewOptimizerService(source repository.DataSource, cacheImpl cache.ReportCache, forecastCfg config.ForecastConfig, plannerCfg config.PlannerConfig) *OptimizerService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &OptimizerService{
		source:   source,
		cache:    cacheImpl,
		forecast: forecastCfg,
		planner:  plannerCfg,
	}
}

// WithSnapshots enables archiving of generated reports to object storage.
func (s *OptimizerService) WithSnapshots(store *storage.SnapshotStore) *OptimizerService {
	s.snapshot = store
	return s
}

func (s *OptimizerService) buildOptimizer(ctx context.Context) (*optimizer.Optimizer, forecast.Mode, error) {
	orders, err := s.source.ListOrders(ctx)
	if err != nil {
		return nil, 0, err
	}
	recipes, err := s.source.ListRecipes(ctx)
	if err != nil {
		return nil, 0, err
	}
	inventory, err := s.source.ListInventory(ctx)
	if err != nil {
		return nil, 0, err
	}

	forecaster, mode := forecast.New(s.forecast)
	opt := optimizer.New(forecaster, s.planner)
	opt.LoadData(orders, recipes, inventory)
	return opt, mode, nil
}

func (s *OptimizerService) GenerateReport(ctx context.Context, daysAhead int) (*domain.OptimizationReport, error) {
	key := cache.ReportKey{DaysAhead: daysAhead, Algorithm: s.forecast.Algorithm}
	if report, ok, err := s.cache.GetReport(ctx, key); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("optimizer: cache get report failed")
	}

	opt, mode, err := s.buildOptimizer(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("mode", mode.String()).Int("days_ahead", daysAhead).Msg("generating report")

	report, err := opt.GenerateReport(daysAhead)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetReport(ctx, key, report); err != nil {
		log.Warn().Err(err).Msg("optimizer: cache set report failed")
	}

	if s.snapshot != nil {
		if snapKey, err := s.snapshot.SaveReport(ctx, report); err != nil {
			log.Warn().Err(err).Msg("optimizer: report snapshot upload failed")
		} else {
			log.Info().Str("key", snapKey).Msg("report snapshot uploaded")
		}
	}

	return report, nil
}

func (s *OptimizerService) ForecastDemand(ctx context.Context, daysAhead int) ([]domain.ForecastPoint, error) {
	opt, _, err := s.buildOptimizer(ctx)
	if err != nil {
		return nil, err
	}
	return opt.ForecastDemand(daysAhead)
}

func (s *OptimizerService) RestockingNeeds(ctx context.Context, daysAhead int) ([]domain.RestockDecision, error) {
	opt, _, err := s.buildOptimizer(ctx)
	if err != nil {
		return nil, err
	}
	points, err := opt.ForecastDemand(daysAhead)
	if err != nil {
		return nil, err
	}
	reqs, err := opt.CalculateMaterialRequirements(points)
	if err != nil {
		return nil, err
	}
	return opt.CalculateRestockingNeeds(reqs)
}

func (s *OptimizerService) NearExpiryMaterials(ctx context.Context, daysThreshold int) ([]domain.ExpiringMaterial, error) {
	opt, _, err := s.buildOptimizer(ctx)
	if err != nil {
		return nil, err
	}
	if daysThreshold <= 0 {
		daysThreshold = s.planner.ExpiryThresholdDays
	}
	return opt.FindNearExpiryMaterials(daysThreshold)
}

func (s *OptimizerService) RecommendDishes(ctx context.Context, limit int) ([]domain.DishRecommendation, error) {
	opt, _, err := s.buildOptimizer(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.planner.MaxRecommendations
	}
	return opt.RecommendDishes(limit)
}

// InvalidateReports drops all cached report variants, typically after the
// underlying tables change.
func (s *OptimizerService) InvalidateReports(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}
