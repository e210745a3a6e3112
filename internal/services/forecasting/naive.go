package forecasting

import (
	"context"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"

	"marketmood/internal/domain/forecast"
)

// naiveProducer is the terminal fallback: a moving average over the last
// week of observations with a small linear trend adjustment. It never
// fails; an empty series yields zero-valued points.
type naiveProducer struct{}

func newNaiveProducer() *naiveProducer {
	return &naiveProducer{}
}

func (p *naiveProducer) Name() string { return forecast.ModelNaive }

func (p *naiveProducer) Produce(ctx context.Context, series forecast.DailySeries, horizon int) (forecast.Result, error) {
	dates := forecastDates(series, horizon)
	points := make([]forecast.Point, horizon)

	values := series.Values()
	n := len(values)

	if n == 0 {
		for h := range points {
			points[h] = forecast.Point{Date: dates[h]}
		}
		return p.result(points, 0), nil
	}

	window := minInt(7, n)

	var level, std float64
	if window < 2 {
		level = values[n-1]
	} else {
		sma := talib.Sma(values, window)
		level = sma[n-1]
		// Sample deviation, matching the dispersion the drift check uses
		std = stat.StdDev(values[n-window:], nil)
	}

	// Per-step trend from the two-day span between the last and the
	// third-to-last observation
	var trendStep float64
	if n >= 3 {
		trendStep = (values[n-1] - values[n-3]) / 2
	}

	for h := 0; h < horizon; h++ {
		value := level + float64(h)*trendStep
		points[h] = clampPoint(forecast.Point{
			Date:  dates[h],
			Value: value,
			Lower: value - 2*std,
			Upper: value + 2*std,
		})
	}

	return p.result(points, window), nil
}

func (p *naiveProducer) result(points []forecast.Point, window int) forecast.Result {
	return forecast.Result{
		Model:  forecast.ModelNaive,
		Points: points,
		Params: map[string]interface{}{
			"method": "moving_average",
			"window": window,
		},
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
