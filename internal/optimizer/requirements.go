package optimizer

import (
	"sort"
	"time"

	"github.com/minhle/fnb-optimizer/internal/domain"
	"github.com/rs/zerolog/log"
)

// CalculateMaterialRequirements joins the forecast against the recipe graph
// and aggregates raw-material demand by (date, material). Dishes without a
// recipe cannot consume materials and are dropped with a warning.
func (o *Optimizer) CalculateMaterialRequirements(points []domain.ForecastPoint) ([]domain.MaterialRequirement, error) {
	if len(o.recipes) == 0 {
		return nil, ErrRecipesNotLoaded
	}

	linesByDish := make(map[string][]domain.RecipeLine)
	for _, line := range o.recipes {
		linesByDish[line.DishName] = append(linesByDish[line.DishName], line)
	}

	type cell struct {
		day      string
		material string
	}
	totals := make(map[cell]float64)
	dates := make(map[cell]time.Time)
	warned := make(map[string]bool)

	for _, p := range points {
		lines, ok := linesByDish[p.DishName]
		if !ok {
			if !warned[p.DishName] {
				warned[p.DishName] = true
				log.Warn().
					Str("dish", p.DishName).
					Msg("optimizer: forecast dish has no recipe, excluded from material requirements")
			}
			continue
		}
		for _, line := range lines {
			k := cell{day: p.Date.Format("2006-01-02"), material: line.MaterialName}
			totals[k] += float64(p.PredictedQuantity) * line.QuantityNeeded
			dates[k] = p.Date
		}
	}

	reqs := make([]domain.MaterialRequirement, 0, len(totals))
	for k, total := range totals {
		reqs = append(reqs, domain.MaterialRequirement{
			Date:                dates[k],
			MaterialName:        k.material,
			TotalMaterialNeeded: total,
		})
	}
	sort.Slice(reqs, func(i, j int) bool {
		if !reqs[i].Date.Equal(reqs[j].Date) {
			return reqs[i].Date.Before(reqs[j].Date)
		}
		return reqs[i].MaterialName < reqs[j].MaterialName
	})

	return reqs, nil
}
