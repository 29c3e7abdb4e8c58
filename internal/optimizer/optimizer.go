// Package optimizer implements the forecast -> material-requirement ->
// restock -> expiry-aware recommendation pipeline. Everything here is a pure,
// read-only analysis over immutable snapshots of the three input tables;
// applying a restock decision is the caller's concern.
package optimizer

import (
	"errors"
	"time"

	"github.com/minhle/fnb-optimizer/internal/config"
	"github.com/minhle/fnb-optimizer/internal/domain"
	"github.com/minhle/fnb-optimizer/internal/forecast"
)

var (
	// ErrOrdersNotLoaded is returned when an operation needs order history
	// that has not been supplied.
	ErrOrdersNotLoaded = errors.New("optimizer: order history not loaded")

	// ErrRecipesNotLoaded is returned when an operation needs the recipe
	// graph and it has not been supplied.
	ErrRecipesNotLoaded = errors.New("optimizer: recipes not loaded")

	// ErrInventoryNotLoaded is returned when an operation needs inventory
	// and it has not been supplied.
	ErrInventoryNotLoaded = errors.New("optimizer: inventory not loaded")
)

// Optimizer orchestrates the pipeline over one snapshot of orders, recipes
// and inventory. It is not safe for concurrent use; build one per request.
type Optimizer struct {
	cfg        config.PlannerConfig
	forecaster forecast.Forecaster
	fitted     bool

	orders    []domain.OrderRecord
	recipes   []domain.RecipeLine
	inventory []domain.InventoryItem

	seasonPrefs map[domain.Season]domain.SeasonPreferences
	clock       func() time.Time
}

// New builds an Optimizer around a forecaster strategy. Input tables are
// supplied separately via LoadData.
func New(f forecast.Forecaster, cfg config.PlannerConfig) *Optimizer {
	return &Optimizer{
		cfg:         cfg,
		forecaster:  f,
		seasonPrefs: defaultSeasonPreferences(),
		clock:       time.Now,
	}
}

// LoadData replaces the three input snapshots. Any previously trained
// forecaster state is invalidated.
func (o *Optimizer) LoadData(orders []domain.OrderRecord, recipes []domain.RecipeLine, inventory []domain.InventoryItem) {
	o.orders = orders
	o.recipes = recipes
	o.inventory = inventory
	o.fitted = false
}

// SetSeasonPreferences overrides the seasonal preferred-dish table used by
// the recommender.
func (o *Optimizer) SetSeasonPreferences(prefs map[domain.Season]domain.SeasonPreferences) {
	o.seasonPrefs = prefs
}

// ForecastDemand predicts per-dish demand for the next daysAhead calendar
// days. The forecaster is fitted lazily on first use and the trained state is
// reused until LoadData replaces the snapshot.
func (o *Optimizer) ForecastDemand(daysAhead int) ([]domain.ForecastPoint, error) {
	if len(o.orders) == 0 {
		return nil, ErrOrdersNotLoaded
	}
	if !o.fitted {
		if err := o.forecaster.Fit(o.orders); err != nil {
			return nil, err
		}
		o.fitted = true
	}
	return o.forecaster.Predict(daysAhead)
}
