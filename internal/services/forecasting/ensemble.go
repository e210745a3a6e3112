package forecasting

import (
	"context"
	"math"

	"marketmood/internal/domain/forecast"
)

// ensembleProducer combines the ARIMA and regression forecasts with fixed
// weights. Confidence bounds take the wider of the two models per step,
// and the raw per-model values are retained on each point. A side that is
// unavailable degrades to the naive fallback through its ladder; a series
// too short for either fitted model skips straight to naive.
type ensembleProducer struct {
	cfg        Config
	arima      Producer
	regression Producer
	naive      Producer
}

func newEnsembleProducer(cfg Config) *ensembleProducer {
	naive := newNaiveProducer()
	return &ensembleProducer{
		cfg:        cfg,
		arima:      newLadder(withTimeout(newARIMAProducer(cfg.MinObservations), cfg.FitTimeout), naive),
		regression: newLadder(withTimeout(newRegressionProducer(cfg.MinObservations), cfg.FitTimeout), naive),
		naive:      naive,
	}
}

func (p *ensembleProducer) Name() string { return forecast.ModelEnsemble }

func (p *ensembleProducer) Produce(ctx context.Context, series forecast.DailySeries, horizon int) (forecast.Result, error) {
	if len(series) < p.cfg.MinObservations {
		return p.naive.Produce(ctx, series, horizon)
	}

	arimaResult, err := p.arima.Produce(ctx, series, horizon)
	if err != nil {
		return forecast.Result{}, err
	}
	regResult, err := p.regression.Produce(ctx, series, horizon)
	if err != nil {
		return forecast.Result{}, err
	}

	points := make([]forecast.Point, horizon)
	for h := 0; h < horizon; h++ {
		a := arimaResult.Points[h]
		r := regResult.Points[h]

		points[h] = clampPoint(forecast.Point{
			Date:  a.Date,
			Value: p.cfg.ARWeight*a.Value + p.cfg.RegressionWeight*r.Value,
			Lower: math.Min(a.Lower, r.Lower),
			Upper: math.Max(a.Upper, r.Upper),
			Components: map[string]float64{
				forecast.ModelARIMA:      a.Value,
				forecast.ModelRegression: r.Value,
			},
		})
	}

	return forecast.Result{
		Model:  forecast.ModelEnsemble,
		Points: points,
		Params: map[string]interface{}{
			"arima_weight":      p.cfg.ARWeight,
			"regression_weight": p.cfg.RegressionWeight,
			"models":            []string{arimaResult.Model, regResult.Model},
		},
	}, nil
}
