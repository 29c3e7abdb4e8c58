package forecast

import (
	"sort"
	"time"

	"github.com/minhle/fnb-optimizer/internal/config"
	"github.com/minhle/fnb-optimizer/internal/domain"
)

// Statistical is the closed-form strategy: per-dish historical mean scaled by
// a seasonal month-bucket factor and a weekend factor. Deterministic and O(1)
// per forecast point.
type Statistical struct {
	cfg    config.ForecastConfig
	means  map[string]float64
	dishes []string
	clock  func() time.Time
}

func NewStatistical(cfg config.ForecastConfig) *Statistical {
	return &Statistical{cfg: cfg, clock: time.Now}
}

// Fit computes the per-dish mean quantity across all historical records.
func (s *Statistical) Fit(orders []domain.OrderRecord) error {
	if len(orders) == 0 {
		return ErrNoOrders
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, o := range orders {
		sums[o.DishName] += float64(o.QuantitySold)
		counts[o.DishName]++
	}

	s.means = make(map[string]float64, len(sums))
	s.dishes = make([]string, 0, len(sums))
	for dish, sum := range sums {
		s.means[dish] = sum / float64(counts[dish])
		s.dishes = append(s.dishes, dish)
	}
	sort.Strings(s.dishes)

	return nil
}

// Predict emits one point per (date, dish) for each of the next daysAhead
// calendar days starting tomorrow.
func (s *Statistical) Predict(daysAhead int) ([]domain.ForecastPoint, error) {
	if err := validateHorizon(daysAhead); err != nil {
		return nil, err
	}
	if len(s.means) == 0 {
		return nil, ErrNoOrders
	}

	today := midnight(s.clock())
	points := make([]domain.ForecastPoint, 0, daysAhead*len(s.dishes))
	for i := 1; i <= daysAhead; i++ {
		date := today.AddDate(0, 0, i)
		seasonal := s.seasonalFactor(date)
		weekend := 1.0
		if domain.IsWeekend(date) {
			weekend = s.cfg.WeekendFactor
		}

		for _, dish := range s.dishes {
			qty := int(s.means[dish] * seasonal * weekend)
			if qty < 0 {
				qty = 0
			}
			points = append(points, domain.ForecastPoint{
				Date:              date,
				DishName:          dish,
				PredictedQuantity: qty,
				SeasonalFactor:    seasonal,
				WeekendFactor:     weekend,
			})
		}
	}

	return points, nil
}

func (s *Statistical) seasonalFactor(date time.Time) float64 {
	switch domain.SeasonOf(date) {
	case domain.Winter:
		return s.cfg.WinterFactor
	case domain.Summer:
		return s.cfg.SummerFactor
	case domain.Spring:
		return s.cfg.SpringFactor
	default:
		return s.cfg.FallFactor
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
