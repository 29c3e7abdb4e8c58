package optimizer

import (
	"math"
	"sort"

	"github.com/minhle/fnb-optimizer/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CalculateRestockingNeeds collapses the requirement set across the whole
// forecast horizon, compares it against current stock and the safety floor,
// and returns the materials that need purchasing, most expensive first.
//
// Restock quantity covers both the forecast-driven shortage and the
// minimum-stock floor, whichever demands more, but the needs-restocking flag
// is driven by shortage alone: a material below its floor with no forecast
// demand is not surfaced.
func (o *Optimizer) CalculateRestockingNeeds(reqs []domain.MaterialRequirement) ([]domain.RestockDecision, error) {
	if len(o.inventory) == 0 {
		return nil, ErrInventoryNotLoaded
	}

	totals := make(map[string]float64)
	for _, r := range reqs {
		totals[r.MaterialName] += r.TotalMaterialNeeded
	}

	invByName := make(map[string]domain.InventoryItem, len(o.inventory))
	for _, item := range o.inventory {
		invByName[item.MaterialName] = item
	}

	decisions := make([]domain.RestockDecision, 0, len(totals))
	for material, needed := range totals {
		var stock, minLevel, costPerUnit float64
		unknownCost := false

		item, ok := invByName[material]
		if ok {
			stock = item.CurrentStock
			minLevel = item.MinimumStockLevel
			costPerUnit = item.CostPerUnit
		} else {
			unknownCost = true
			log.Warn().
				Str("material", material).
				Msg("optimizer: required material missing from inventory, assuming zero stock and unknown cost")
		}

		shortage := needed - stock
		if shortage <= 0 {
			continue
		}

		quantity := math.Max(shortage, minLevel-stock)
		cost := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(costPerUnit))

		decisions = append(decisions, domain.RestockDecision{
			MaterialName:        material,
			TotalMaterialNeeded: needed,
			CurrentStock:        stock,
			Shortage:            shortage,
			RestockQuantity:     quantity,
			RestockCost:         cost,
			NeedsRestocking:     true,
			UnknownCost:         unknownCost,
		})
	}

	sort.Slice(decisions, func(i, j int) bool {
		if c := decisions[i].RestockCost.Cmp(decisions[j].RestockCost); c != 0 {
			return c > 0
		}
		return decisions[i].MaterialName < decisions[j].MaterialName
	})

	return decisions, nil
}
