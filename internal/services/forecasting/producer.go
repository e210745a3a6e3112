package forecasting

import (
	"context"
	"time"

	"marketmood/internal/domain/forecast"
	"marketmood/internal/metrics"
	"marketmood/pkg/errors"
)

// Producer generates a forecast over a prepared daily series. A producer
// that cannot serve the series (too little data, fit failure, timeout)
// returns an error wrapping errors.ErrProducerUnavailable; callers treat
// every unavailable cause uniformly.
type Producer interface {
	Name() string
	Produce(ctx context.Context, series forecast.DailySeries, horizon int) (forecast.Result, error)
}

// ladder tries producers in order, advancing past unavailable ones.
// The final producer is expected to always succeed.
type ladder struct {
	producers []Producer
}

func newLadder(producers ...Producer) *ladder {
	return &ladder{producers: producers}
}

func (l *ladder) Name() string {
	return l.producers[len(l.producers)-1].Name()
}

func (l *ladder) Produce(ctx context.Context, series forecast.DailySeries, horizon int) (forecast.Result, error) {
	var lastErr error
	for _, p := range l.producers {
		result, err := p.Produce(ctx, series, horizon)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, errors.ErrProducerUnavailable) {
			return forecast.Result{}, err
		}
		metrics.ProducerFallbacks.WithLabelValues(p.Name()).Inc()
		lastErr = err
	}
	return forecast.Result{}, lastErr
}

// withTimeout bounds a producer's fit with a deadline and converts an
// expired fit into the uniform unavailable outcome.
type timeoutProducer struct {
	inner   Producer
	timeout time.Duration
}

func withTimeout(inner Producer, timeout time.Duration) Producer {
	if timeout <= 0 {
		return inner
	}
	return &timeoutProducer{inner: inner, timeout: timeout}
}

func (p *timeoutProducer) Name() string {
	return p.inner.Name()
}

func (p *timeoutProducer) Produce(ctx context.Context, series forecast.DailySeries, horizon int) (forecast.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type outcome struct {
		result forecast.Result
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := p.inner.Produce(ctx, series, horizon)
		done <- outcome{result, err}
	}()

	select {
	case out := <-done:
		return out.result, out.err
	case <-ctx.Done():
		return forecast.Result{}, errors.Newf("%s fit timed out after %s: %w: %w",
			p.inner.Name(), p.timeout, errors.ErrTimeout, errors.ErrProducerUnavailable)
	}
}

// errTooShort reports a series shorter than a producer's minimum: an
// insufficient-data condition that the ladder treats as the uniform
// unavailable outcome.
func errTooShort(model string, need, got int) error {
	return errors.Newf("%s needs at least %d observations, got %d: %w: %w",
		model, need, got, errors.ErrInsufficientData, errors.ErrProducerUnavailable)
}

// forecastDates returns horizon consecutive days starting the day after
// the series ends, or after now for an empty series.
func forecastDates(series forecast.DailySeries, horizon int) []time.Time {
	start := series.LastDate()
	if start.IsZero() {
		start = time.Now().UTC().Truncate(24 * time.Hour)
	}

	dates := make([]time.Time, horizon)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i+1)
	}
	return dates
}

// clampPoint enforces the non-negativity and ordering invariants on a
// forecast point
func clampPoint(p forecast.Point) forecast.Point {
	if p.Value < 0 {
		p.Value = 0
	}
	if p.Lower < 0 {
		p.Lower = 0
	}
	if p.Upper < p.Lower {
		p.Upper = p.Lower
	}
	return p
}
