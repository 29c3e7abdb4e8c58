package optimizer

import (
	"github.com/minhle/fnb-optimizer/internal/domain"
	"github.com/shopspring/decimal"
)

// GenerateReport threads the whole pipeline for one forecast horizon and
// bundles the results with a summary. This is the single public surface a
// CLI, HTTP handler or scheduled job needs.
func (o *Optimizer) GenerateReport(daysAhead int) (*domain.OptimizationReport, error) {
	demand, err := o.ForecastDemand(daysAhead)
	if err != nil {
		return nil, err
	}

	requirements, err := o.CalculateMaterialRequirements(demand)
	if err != nil {
		return nil, err
	}

	restocking, err := o.CalculateRestockingNeeds(requirements)
	if err != nil {
		return nil, err
	}

	nearExpiry, err := o.FindNearExpiryMaterials(o.cfg.ExpiryThresholdDays)
	if err != nil {
		return nil, err
	}

	recommendations, err := o.RecommendDishes(o.cfg.MaxRecommendations)
	if err != nil {
		return nil, err
	}

	totalCost := decimal.Zero
	for _, d := range restocking {
		totalCost = totalCost.Add(d.RestockCost)
	}

	return &domain.OptimizationReport{
		Summary: domain.ReportSummary{
			ForecastPeriodDays:  daysAhead,
			TotalRestockCost:    totalCost,
			MaterialsToRestock:  len(restocking),
			MaterialsNearExpiry: len(nearExpiry),
			RecommendedDishes:   len(recommendations),
			GeneratedAt:         o.clock(),
		},
		DemandForecast:  demand,
		Requirements:    requirements,
		RestockingNeeds: restocking,
		NearExpiry:      nearExpiry,
		Recommendations: recommendations,
	}, nil
}
