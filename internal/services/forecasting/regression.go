package forecasting

import (
	"context"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"marketmood/internal/domain/forecast"
	"marketmood/pkg/errors"
)

// regressionProducer fits a decomposable structural model: an intercept,
// a linear trend and day-of-week dummies, estimated with ridge-regularized
// least squares so short series with as many parameters as observations
// still fit.
type regressionProducer struct {
	minObservations int
}

const (
	regressionRidge    = 1e-6
	regressionFeatures = 8 // intercept + trend + 6 weekday dummies (Sunday baseline)
)

func newRegressionProducer(minObservations int) *regressionProducer {
	return &regressionProducer{minObservations: minObservations}
}

func (p *regressionProducer) Name() string { return forecast.ModelRegression }

func (p *regressionProducer) Produce(ctx context.Context, series forecast.DailySeries, horizon int) (forecast.Result, error) {
	n := len(series)
	if n < p.minObservations {
		return forecast.Result{}, errTooShort(forecast.ModelRegression, p.minObservations, n)
	}

	x := mat.NewDense(n, regressionFeatures, nil)
	y := mat.NewVecDense(n, nil)
	for i, pt := range series {
		setFeatures(x, i, float64(i), pt.Date.Weekday())
		y.SetVec(i, pt.Value)
	}

	// Normal equations with a ridge term: (X'X + lambda*I) beta = X'y
	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	for j := 0; j < regressionFeatures; j++ {
		xtx.Set(j, j, xtx.At(j, j)+regressionRidge)
	}
	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var beta mat.VecDense
	if err := beta.SolveVec(&xtx, &xty); err != nil {
		return forecast.Result{}, errors.Wrap(errors.ErrProducerUnavailable, "regression fit failed")
	}

	// Residual spread drives the 95% interval
	var fitted mat.VecDense
	fitted.MulVec(x, &beta)
	var rss float64
	for i := 0; i < n; i++ {
		r := y.AtVec(i) - fitted.AtVec(i)
		rss += r * r
	}
	residStd := math.Sqrt(rss / float64(n))
	interval := 1.96 * residStd

	dates := forecastDates(series, horizon)
	points := make([]forecast.Point, horizon)
	row := mat.NewDense(1, regressionFeatures, nil)
	for h := 0; h < horizon; h++ {
		setFeatures(row, 0, float64(n+h), dates[h].Weekday())

		var pred mat.VecDense
		pred.MulVec(row, &beta)
		value := pred.AtVec(0)

		points[h] = clampPoint(forecast.Point{
			Date:  dates[h],
			Value: value,
			Lower: value - interval,
			Upper: value + interval,
		})
	}

	return forecast.Result{
		Model:  forecast.ModelRegression,
		Points: points,
		Params: map[string]interface{}{
			"seasonality":    "daily_weekly",
			"interval_width": 0.95,
		},
	}, nil
}

// setFeatures fills one design-matrix row: intercept, trend index and the
// weekday dummy (Sunday is the baseline)
func setFeatures(m *mat.Dense, row int, t float64, weekday time.Weekday) {
	for j := 0; j < regressionFeatures; j++ {
		m.Set(row, j, 0)
	}
	m.Set(row, 0, 1)
	m.Set(row, 1, t)
	if weekday != time.Sunday {
		m.Set(row, 1+int(weekday), 1)
	}
}
