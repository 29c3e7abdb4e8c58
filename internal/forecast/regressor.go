package forecast

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// predictor is a trained per-dish model handle.
type predictor interface {
	predictOne(features []float64) (float64, error)
}

// regressor is the trainable strategy behind the learned forecaster. Each
// backing algorithm provides one implementation.
type regressor interface {
	predictor
	train(features [][]float64, targets []float64) error
}

// regressorFactories maps the configured algorithm name to a constructor.
var regressorFactories = map[string]func() regressor{
	"ridge": func() regressor { return &linearRegressor{lambda: 1.0} },
	"ols":   func() regressor { return &linearRegressor{} },
}

// linearRegressor solves the (optionally ridge-regularized) normal equations
// over the calendar features, with an unpenalized intercept term.
type linearRegressor struct {
	lambda  float64
	weights []float64
}

func (r *linearRegressor) train(features [][]float64, targets []float64) error {
	n := len(features)
	if n == 0 || n != len(targets) {
		return errors.New("regressor: empty or mismatched training set")
	}
	p := len(features[0]) + 1 // leading intercept column

	if r.lambda == 0 && n < p {
		return fmt.Errorf("regressor: %d rows cannot determine %d coefficients", n, p)
	}

	a := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i, row := range features {
		a.Set(i, 0, 1.0)
		for j, v := range row {
			a.Set(i, j+1, v)
		}
		y.SetVec(i, targets[i])
	}

	var gram mat.Dense
	gram.Mul(a.T(), a)
	for j := 1; j < p; j++ {
		gram.Set(j, j, gram.At(j, j)+r.lambda)
	}

	rhs := mat.NewVecDense(p, nil)
	rhs.MulVec(a.T(), y)

	var w mat.VecDense
	if err := w.SolveVec(&gram, rhs); err != nil {
		return fmt.Errorf("regressor: normal equations are singular: %w", err)
	}

	r.weights = make([]float64, p)
	copy(r.weights, w.RawVector().Data)
	return nil
}

func (r *linearRegressor) predictOne(features []float64) (float64, error) {
	if r.weights == nil {
		return 0, errors.New("regressor: not trained")
	}
	if len(features)+1 != len(r.weights) {
		return 0, fmt.Errorf("regressor: expected %d features, got %d", len(r.weights)-1, len(features))
	}
	v := r.weights[0]
	for i, x := range features {
		v += r.weights[i+1] * x
	}
	return v, nil
}

// meanPredictor is the constant fallback used when per-dish training fails.
// It guarantees every dish always has some prediction.
type meanPredictor struct {
	mean float64
}

func (m meanPredictor) predictOne([]float64) (float64, error) {
	return m.mean, nil
}
