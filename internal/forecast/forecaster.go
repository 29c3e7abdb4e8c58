package forecast

import (
	"errors"

	"github.com/minhle/fnb-optimizer/internal/config"
	"github.com/minhle/fnb-optimizer/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	// MinHorizonDays and MaxHorizonDays bound a single forecast request.
	MinHorizonDays = 1
	MaxHorizonDays = 365
)

var (
	// ErrNoOrders is returned when a forecast is requested before any order
	// history has been fitted.
	ErrNoOrders = errors.New("forecast: no order history loaded")

	// ErrHorizonOutOfRange is returned for daysAhead outside [1, 365].
	ErrHorizonOutOfRange = errors.New("forecast: days ahead must be between 1 and 365")
)

// Forecaster produces a predicted-quantity series per dish for the next N
// calendar days starting tomorrow. Fit must be called before Predict.
type Forecaster interface {
	Fit(orders []domain.OrderRecord) error
	Predict(daysAhead int) ([]domain.ForecastPoint, error)
}

// Mode records, once at construction time, which strategy is actually in
// effect. It distinguishes "learned was never requested" from "learned was
// requested but the algorithm is unknown".
type Mode int

const (
	ModeStatistical Mode = iota
	ModeLearnedUnavailable
	ModeLearned
)

func (m Mode) String() string {
	switch m {
	case ModeLearned:
		return "learned"
	case ModeLearnedUnavailable:
		return "learned-unavailable"
	default:
		return "statistical"
	}
}

// New builds the forecaster selected by cfg. An unknown learned algorithm
// degrades to the statistical strategy with a warning rather than failing.
func New(cfg config.ForecastConfig) (Forecaster, Mode) {
	if !cfg.UseML {
		return NewStatistical(cfg), ModeStatistical
	}
	if _, ok := regressorFactories[cfg.Algorithm]; !ok {
		log.Warn().
			Str("algorithm", cfg.Algorithm).
			Msg("forecast: unknown learned algorithm, falling back to statistical strategy")
		return NewStatistical(cfg), ModeLearnedUnavailable
	}
	return NewLearned(cfg), ModeLearned
}

func validateHorizon(daysAhead int) error {
	if daysAhead < MinHorizonDays || daysAhead > MaxHorizonDays {
		return ErrHorizonOutOfRange
	}
	return nil
}
