package forecast

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/minhle/fnb-optimizer/internal/config"
	"github.com/minhle/fnb-optimizer/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// trainConcurrency caps the per-dish training fan-out.
const trainConcurrency = 4

// Learned trains one regression model per dish over engineered calendar
// features. A dish whose training fails gets a constant historical-mean
// predictor instead; that substitution is logged and never surfaced as an
// error to callers.
type Learned struct {
	cfg       config.ForecastConfig
	algorithm string
	models    map[string]trainedModel
	dishes    []string
	clock     func() time.Time
}

type trainedModel struct {
	predictor
	tag  string
	mean float64
}

func NewLearned(cfg config.ForecastConfig) *Learned {
	return &Learned{cfg: cfg, algorithm: cfg.Algorithm, clock: time.Now}
}

// Fit aggregates the history to per-(date, dish) daily totals and trains one
// model per dish. Training runs with bounded concurrency; each dish is
// independent.
func (l *Learned) Fit(orders []domain.OrderRecord) error {
	if len(orders) == 0 {
		return ErrNoOrders
	}

	series := dailySeries(orders)
	dishes := make([]string, 0, len(series))
	for dish := range series {
		dishes = append(dishes, dish)
	}
	sort.Strings(dishes)

	models := make(map[string]trainedModel, len(dishes))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(trainConcurrency)
	for _, dish := range dishes {
		dish := dish
		g.Go(func() error {
			m := l.trainDish(dish, series[dish])
			mu.Lock()
			models[dish] = m
			mu.Unlock()
			return nil
		})
	}
	// Goroutines never return errors; failures become mean fallbacks.
	_ = g.Wait()

	l.models = models
	l.dishes = dishes
	return nil
}

func (l *Learned) trainDish(dish string, points []dailyPoint) trainedModel {
	var sum float64
	features := make([][]float64, len(points))
	targets := make([]float64, len(points))
	for i, p := range points {
		features[i] = featureVector(p.date)
		targets[i] = p.quantity
		sum += p.quantity
	}
	mean := sum / float64(len(points))

	reg := regressorFactories[l.algorithm]()
	if err := reg.train(features, targets); err != nil {
		log.Warn().
			Str("dish", dish).
			Str("algorithm", l.algorithm).
			Err(err).
			Msg("forecast: training failed, using historical mean")
		return trainedModel{predictor: meanPredictor{mean: mean}, tag: "mean", mean: mean}
	}
	return trainedModel{predictor: reg, tag: l.algorithm, mean: mean}
}

// Predict builds the same feature vector for each future date and invokes the
// per-dish models. Results are clamped to >= 0 and truncated to integers.
func (l *Learned) Predict(daysAhead int) ([]domain.ForecastPoint, error) {
	if err := validateHorizon(daysAhead); err != nil {
		return nil, err
	}
	if len(l.models) == 0 {
		return nil, fmt.Errorf("forecast: models not fitted: %w", ErrNoOrders)
	}

	today := midnight(l.clock())
	points := make([]domain.ForecastPoint, 0, daysAhead*len(l.dishes))
	for i := 1; i <= daysAhead; i++ {
		date := today.AddDate(0, 0, i)
		fv := featureVector(date)

		for _, dish := range l.dishes {
			m := l.models[dish]
			v, err := m.predictOne(fv)
			tag := m.tag
			if err != nil {
				v = m.mean
				tag = "mean"
			}
			qty := int(v)
			if qty < 0 {
				qty = 0
			}
			points = append(points, domain.ForecastPoint{
				Date:              date,
				DishName:          dish,
				PredictedQuantity: qty,
				Algorithm:         tag,
			})
		}
	}

	return points, nil
}

type dailyPoint struct {
	date     time.Time
	quantity float64
}

// dailySeries collapses raw order records into per-dish, per-day totals
// sorted by date.
func dailySeries(orders []domain.OrderRecord) map[string][]dailyPoint {
	type dayKey struct {
		dish string
		day  string
	}
	totals := make(map[dayKey]float64)
	dates := make(map[dayKey]time.Time)
	for _, o := range orders {
		day := midnight(o.Date)
		k := dayKey{dish: o.DishName, day: day.Format("2006-01-02")}
		totals[k] += float64(o.QuantitySold)
		dates[k] = day
	}

	series := make(map[string][]dailyPoint)
	for k, qty := range totals {
		series[k.dish] = append(series[k.dish], dailyPoint{date: dates[k], quantity: qty})
	}
	for dish := range series {
		pts := series[dish]
		sort.Slice(pts, func(i, j int) bool { return pts[i].date.Before(pts[j].date) })
	}
	return series
}
