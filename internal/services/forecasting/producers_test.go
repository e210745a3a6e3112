package forecasting

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmood/internal/domain/forecast"
	"marketmood/pkg/errors"
)

func seriesOf(values ...float64) forecast.DailySeries {
	series := make(forecast.DailySeries, len(values))
	for i, v := range values {
		series[i] = forecast.DailyPoint{Date: day(i), Value: v}
	}
	return series
}

// fourteenDays is a two-week series with weekly structure and a mild trend
func fourteenDays() forecast.DailySeries {
	return seriesOf(100, 105, 98, 110, 120, 140, 135, 104, 109, 103, 116, 127, 146, 142)
}

func assertInvariants(t *testing.T, series forecast.DailySeries, result forecast.Result, horizon int) {
	t.Helper()
	require.Len(t, result.Points, horizon)

	next := series.LastDate().AddDate(0, 0, 1)
	for _, p := range result.Points {
		assert.Equal(t, next, p.Date)
		assert.GreaterOrEqual(t, p.Value, 0.0)
		assert.GreaterOrEqual(t, p.Lower, 0.0)
		assert.GreaterOrEqual(t, p.Upper, p.Lower)
		next = next.AddDate(0, 0, 1)
	}
}

func TestFittedProducersInvariants(t *testing.T) {
	series := fourteenDays()
	producers := []Producer{
		newARIMAProducer(7),
		newRegressionProducer(7),
		newNaiveProducer(),
		newEnsembleProducer(DefaultConfig()),
	}

	for _, p := range producers {
		t.Run(p.Name(), func(t *testing.T) {
			result, err := p.Produce(context.Background(), series, 7)
			require.NoError(t, err)
			assertInvariants(t, series, result, 7)
		})
	}
}

func TestARIMAInsufficientData(t *testing.T) {
	p := newARIMAProducer(7)

	_, err := p.Produce(context.Background(), seriesOf(1, 2, 3, 4, 5, 6), 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrProducerUnavailable))
	assert.True(t, errors.Is(err, errors.ErrInsufficientData))
}

func TestARIMAParams(t *testing.T) {
	p := newARIMAProducer(7)

	result, err := p.Produce(context.Background(), fourteenDays(), 3)
	require.NoError(t, err)

	assert.Equal(t, forecast.ModelARIMA, result.Model)
	assert.Equal(t, "(1,1,1)", result.Params["order"])
	aic, ok := result.Params["aic"].(float64)
	require.True(t, ok)
	bic, ok := result.Params["bic"].(float64)
	require.True(t, ok)
	assert.False(t, math.IsNaN(aic))
	assert.False(t, math.IsNaN(bic))
}

func TestRegressionInsufficientData(t *testing.T) {
	p := newRegressionProducer(7)

	_, err := p.Produce(context.Background(), seriesOf(1, 2, 3), 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrProducerUnavailable))
	assert.True(t, errors.Is(err, errors.ErrInsufficientData))
}

func TestRegressionParams(t *testing.T) {
	p := newRegressionProducer(7)

	result, err := p.Produce(context.Background(), fourteenDays(), 5)
	require.NoError(t, err)

	assert.Equal(t, forecast.ModelRegression, result.Model)
	assert.Equal(t, "daily_weekly", result.Params["seasonality"])
	assert.Equal(t, 0.95, result.Params["interval_width"])
}

func TestNaiveProducerExactValues(t *testing.T) {
	p := newNaiveProducer()

	result, err := p.Produce(context.Background(), seriesOf(10, 12, 14), 3)
	require.NoError(t, err)
	require.Len(t, result.Points, 3)

	// level = mean(10,12,14) = 12, per-step trend = (14-10)/2 = 2,
	// sample std of the window = sqrt(8/2) = 2
	std := 2.0
	for h, pt := range result.Points {
		want := 12.0 + 2.0*float64(h)
		assert.InDelta(t, want, pt.Value, 1e-9)
		assert.InDelta(t, math.Max(0, want-2*std), pt.Lower, 1e-9)
		assert.InDelta(t, want+2*std, pt.Upper, 1e-9)
	}

	assert.Equal(t, "moving_average", result.Params["method"])
	assert.Equal(t, 3, result.Params["window"])
}

func TestNaiveProducerEmptySeries(t *testing.T) {
	p := newNaiveProducer()

	result, err := p.Produce(context.Background(), forecast.DailySeries{}, 4)
	require.NoError(t, err)
	require.Len(t, result.Points, 4)

	for _, pt := range result.Points {
		assert.Equal(t, 0.0, pt.Value)
		assert.Equal(t, 0.0, pt.Lower)
		assert.Equal(t, 0.0, pt.Upper)
	}
}

func TestNaiveProducerSingleObservation(t *testing.T) {
	p := newNaiveProducer()

	result, err := p.Produce(context.Background(), seriesOf(42), 2)
	require.NoError(t, err)

	for _, pt := range result.Points {
		assert.Equal(t, 42.0, pt.Value)
		assert.Equal(t, 42.0, pt.Lower)
		assert.Equal(t, 42.0, pt.Upper)
	}
}

func TestEnsembleExactCombination(t *testing.T) {
	cfg := DefaultConfig()
	series := fourteenDays()

	arimaResult, err := newARIMAProducer(cfg.MinObservations).Produce(context.Background(), series, 7)
	require.NoError(t, err)
	regResult, err := newRegressionProducer(cfg.MinObservations).Produce(context.Background(), series, 7)
	require.NoError(t, err)

	result, err := newEnsembleProducer(cfg).Produce(context.Background(), series, 7)
	require.NoError(t, err)
	require.Len(t, result.Points, 7)

	for h, pt := range result.Points {
		a := arimaResult.Points[h]
		r := regResult.Points[h]

		assert.InDelta(t, 0.4*a.Value+0.6*r.Value, pt.Value, 1e-9)
		assert.InDelta(t, math.Min(a.Lower, r.Lower), pt.Lower, 1e-9)
		assert.InDelta(t, math.Max(a.Upper, r.Upper), pt.Upper, 1e-9)

		require.NotNil(t, pt.Components)
		assert.InDelta(t, a.Value, pt.Components[forecast.ModelARIMA], 1e-9)
		assert.InDelta(t, r.Value, pt.Components[forecast.ModelRegression], 1e-9)
	}

	assert.Equal(t, forecast.ModelEnsemble, result.Model)
	assert.Equal(t, 0.4, result.Params["arima_weight"])
	assert.Equal(t, 0.6, result.Params["regression_weight"])
}

func TestEnsembleShortSeriesFallsBackToNaive(t *testing.T) {
	result, err := newEnsembleProducer(DefaultConfig()).Produce(context.Background(), seriesOf(5, 6, 7), 3)
	require.NoError(t, err)
	assert.Equal(t, forecast.ModelNaive, result.Model)
}

// stubProducer returns a fixed outcome, optionally after a delay
type stubProducer struct {
	name  string
	err   error
	delay time.Duration
}

func (s *stubProducer) Name() string { return s.name }

func (s *stubProducer) Produce(ctx context.Context, series forecast.DailySeries, horizon int) (forecast.Result, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return forecast.Result{}, errors.Wrap(errors.ErrProducerUnavailable, "canceled")
		}
	}
	if s.err != nil {
		return forecast.Result{}, s.err
	}
	return forecast.Result{Model: s.name}, nil
}

func TestLadderAdvancesOnUnavailable(t *testing.T) {
	l := newLadder(
		&stubProducer{name: "first", err: errors.Wrap(errors.ErrProducerUnavailable, "no fit")},
		&stubProducer{name: "second"},
	)

	result, err := l.Produce(context.Background(), nil, 1)
	require.NoError(t, err)
	assert.Equal(t, "second", result.Model)
}

func TestLadderSurfacesOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	l := newLadder(
		&stubProducer{name: "first", err: boom},
		&stubProducer{name: "second"},
	)

	_, err := l.Produce(context.Background(), nil, 1)
	assert.ErrorIs(t, err, boom)
}

func TestWithTimeoutConvertsToUnavailable(t *testing.T) {
	slow := &stubProducer{name: "slow", delay: 200 * time.Millisecond}

	_, err := withTimeout(slow, 10*time.Millisecond).Produce(context.Background(), nil, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrProducerUnavailable))
	assert.True(t, errors.Is(err, errors.ErrTimeout))
}
