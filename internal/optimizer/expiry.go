package optimizer

import (
	"sort"
	"time"

	"github.com/minhle/fnb-optimizer/internal/domain"
)

// FindNearExpiryMaterials returns inventory expiring within daysThreshold
// days, most urgent first. Already-expired stock is surfaced with a negative
// days-until-expiry rather than filtered out.
func (o *Optimizer) FindNearExpiryMaterials(daysThreshold int) ([]domain.ExpiringMaterial, error) {
	if len(o.inventory) == 0 {
		return nil, ErrInventoryNotLoaded
	}
	return scanExpiry(o.inventory, o.recipes, daysThreshold, o.clock()), nil
}

func scanExpiry(inventory []domain.InventoryItem, recipes []domain.RecipeLine, daysThreshold int, now time.Time) []domain.ExpiringMaterial {
	cutoff := now.AddDate(0, 0, daysThreshold)

	linesByMaterial := make(map[string][]domain.RecipeLine)
	for _, line := range recipes {
		linesByMaterial[line.MaterialName] = append(linesByMaterial[line.MaterialName], line)
	}

	expiring := make([]domain.ExpiringMaterial, 0)
	for _, item := range inventory {
		if item.ExpiryDate.After(cutoff) {
			continue
		}

		em := domain.ExpiringMaterial{
			InventoryItem:   item,
			DaysUntilExpiry: domain.DaysUntil(now, item.ExpiryDate),
		}
		for _, line := range linesByMaterial[item.MaterialName] {
			em.UsableIn = append(em.UsableIn, domain.DishYield{
				DishName:          line.DishName,
				MaxDishesPossible: int(item.CurrentStock / line.QuantityNeeded),
			})
		}
		sort.Slice(em.UsableIn, func(i, j int) bool {
			return em.UsableIn[i].DishName < em.UsableIn[j].DishName
		})

		expiring = append(expiring, em)
	}

	sort.Slice(expiring, func(i, j int) bool {
		if expiring[i].DaysUntilExpiry != expiring[j].DaysUntilExpiry {
			return expiring[i].DaysUntilExpiry < expiring[j].DaysUntilExpiry
		}
		return expiring[i].MaterialName < expiring[j].MaterialName
	})

	return expiring
}
