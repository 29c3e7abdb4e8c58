package optimizer

import (
	"math"
	"sort"

	"github.com/minhle/fnb-optimizer/internal/domain"
)

// RecommendDishes scores every currently-producible dish on a weighted blend
// of stock availability, expiry urgency, seasonal preference and cost
// efficiency, and returns the top maxRecommendations.
//
// The expiry urgency component only keeps its full weight when near-expiry
// materials make up a substantial share of the dish's material cost.
// Otherwise a dish touching one cheap expiring ingredient next to expensive
// fresh purchases would rank as urgent without meaningfully reducing waste,
// so the urgency score is damped.
func (o *Optimizer) RecommendDishes(maxRecommendations int) ([]domain.DishRecommendation, error) {
	if len(o.inventory) == 0 {
		return nil, ErrInventoryNotLoaded
	}
	if len(o.recipes) == 0 {
		return nil, ErrRecipesNotLoaded
	}

	now := o.clock()
	season := domain.SeasonOf(now)
	prefs := o.seasonPrefs[season]

	lookahead := o.cfg.RecommendLookaheadDays
	nearExpiry := scanExpiry(o.inventory, o.recipes, lookahead, now)
	expiryDays := make(map[string]int, len(nearExpiry))
	for _, em := range nearExpiry {
		if d, ok := expiryDays[em.MaterialName]; !ok || em.DaysUntilExpiry < d {
			expiryDays[em.MaterialName] = em.DaysUntilExpiry
		}
	}

	preferred := make(map[string]bool, len(prefs.PreferredDishes))
	for _, dish := range prefs.PreferredDishes {
		preferred[dish] = true
	}

	invByName := make(map[string]domain.InventoryItem, len(o.inventory))
	for _, item := range o.inventory {
		invByName[item.MaterialName] = item
	}

	linesByDish := make(map[string][]domain.RecipeLine)
	dishes := make([]string, 0)
	for _, line := range o.recipes {
		if _, seen := linesByDish[line.DishName]; !seen {
			dishes = append(dishes, line.DishName)
		}
		linesByDish[line.DishName] = append(linesByDish[line.DishName], line)
	}
	sort.Strings(dishes)

	recommendations := make([]domain.DishRecommendation, 0, len(dishes))

dishLoop:
	for _, dish := range dishes {
		lines := linesByDish[dish]

		maxServings := math.MaxInt
		var totalCost, expiringCost, availabilitySum, urgency float64
		var expiringUsed []string

		for _, line := range lines {
			item, ok := invByName[line.MaterialName]
			if !ok {
				// Not producible at all; not an error condition.
				continue dishLoop
			}

			if servings := int(item.CurrentStock / line.QuantityNeeded); servings < maxServings {
				maxServings = servings
			}

			lineCost := line.QuantityNeeded * item.CostPerUnit
			totalCost += lineCost
			availabilitySum += math.Min(item.CurrentStock/(item.MinimumStockLevel+1), 2.0)

			if days, ok := expiryDays[line.MaterialName]; ok {
				urgency += math.Max(0, float64(lookahead-days)*0.5)
				expiringCost += lineCost
				expiringUsed = append(expiringUsed, line.MaterialName)
			}
		}

		if maxServings <= 0 {
			continue
		}

		availability := availabilitySum / float64(len(lines))

		var expiryRatio float64
		if totalCost > 0 {
			expiryRatio = expiringCost / totalCost * 100
		}
		if expiryRatio < o.cfg.ExpiryRatioThreshold {
			urgency *= o.cfg.ExpiryRatioDamping
		}

		seasonal := 1.0
		if preferred[dish] {
			seasonal = prefs.Multiplier
		}

		ceiling := o.cfg.CostEfficiencyCeiling
		costEfficiency := math.Max(0, (ceiling-totalCost)/ceiling)

		score := availability*o.cfg.AvailabilityWeight +
			urgency*o.cfg.UrgencyWeight +
			seasonal*o.cfg.SeasonalWeight +
			costEfficiency*o.cfg.CostWeight

		sort.Strings(expiringUsed)
		recommendations = append(recommendations, domain.DishRecommendation{
			DishName:              dish,
			MaxServingsPossible:   maxServings,
			CostPerServing:        round2(totalCost),
			RecommendationScore:   round2(score),
			MaterialAvailability:  round2(availability),
			ExpiryUrgency:         round2(urgency),
			SeasonalPreference:    round2(seasonal),
			CostEfficiency:        round2(costEfficiency),
			ExpiryMaterialRatio:   round2(expiryRatio),
			Season:                string(season),
			UsesExpiringMaterials: len(expiringUsed) > 0,
			ExpiringMaterialsUsed: expiringUsed,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].RecommendationScore != recommendations[j].RecommendationScore {
			return recommendations[i].RecommendationScore > recommendations[j].RecommendationScore
		}
		return recommendations[i].DishName < recommendations[j].DishName
	})

	if maxRecommendations > 0 && len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations, nil
}

// defaultSeasonPreferences mirrors the demo menu's seasonal favorites.
func defaultSeasonPreferences() map[domain.Season]domain.SeasonPreferences {
	return map[domain.Season]domain.SeasonPreferences{
		domain.Winter: {
			Season:          domain.Winter,
			PreferredDishes: []string{"Chicken Curry", "Fish Soup"},
			Multiplier:      1.4,
		},
		domain.Summer: {
			Season:          domain.Summer,
			PreferredDishes: []string{"Vegetable Salad", "Fish Soup"},
			Multiplier:      1.3,
		},
		domain.Spring: {
			Season:          domain.Spring,
			PreferredDishes: []string{"Vegetable Salad", "Pasta Marinara"},
			Multiplier:      1.2,
		},
		domain.Fall: {
			Season:          domain.Fall,
			PreferredDishes: []string{"Beef Steak", "Pasta Marinara"},
			Multiplier:      1.2,
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
