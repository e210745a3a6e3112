package forecasting

import (
	"context"
	"strings"
	"time"

	"marketmood/internal/domain/forecast"
	"marketmood/internal/domain/signal"
	"marketmood/internal/metrics"
	"marketmood/pkg/errors"
	"marketmood/pkg/logger"
)

// Service generates demand forecasts per product category
type Service struct {
	store     signal.Store
	cfg       Config
	log       *logger.Logger
	producers map[string]Producer
}

// NewService creates a new forecasting service
func NewService(store signal.Store, cfg Config, log *logger.Logger) *Service {
	naive := newNaiveProducer()

	producers := map[string]Producer{
		forecast.ModelARIMA: newLadder(
			withTimeout(newARIMAProducer(cfg.MinObservations), cfg.FitTimeout),
			naive,
		),
		forecast.ModelRegression: newLadder(
			withTimeout(newRegressionProducer(cfg.MinObservations), cfg.FitTimeout),
			naive,
		),
		forecast.ModelEnsemble: newEnsembleProducer(cfg),
		forecast.ModelNaive:    naive,
	}

	return &Service{
		store:     store,
		cfg:       cfg,
		log:       log.With("component", "forecast_service"),
		producers: producers,
	}
}

// Categories returns the configured forecastable categories
func (s *Service) Categories() []string {
	return s.cfg.Categories
}

// ForecastCategory forecasts demand for one category daysAhead days into
// the future using the requested model. A category with no sales history
// still yields a forecast (zero-valued, from the naive fallback).
func (s *Service) ForecastCategory(ctx context.Context, category string, daysAhead int, model string) (forecast.Result, error) {
	if category == "" {
		return forecast.Result{}, errors.NewValidationError("category", "must not be empty", category)
	}
	if daysAhead < 1 || daysAhead > 30 {
		return forecast.Result{}, errors.NewValidationError("days_ahead", "must be between 1 and 30", daysAhead)
	}

	model = strings.ToLower(model)
	producer, ok := s.producers[model]
	if !ok {
		return forecast.Result{}, errors.NewValidationError("model", "must be one of arima, regression, ensemble, naive", model)
	}

	start := time.Now()

	series, err := s.prepareCategory(ctx, category, s.cfg.LookbackDays)
	if err != nil {
		metrics.ForecastRequests.WithLabelValues(model, "error").Inc()
		return forecast.Result{}, err
	}

	result, err := producer.Produce(ctx, series, daysAhead)
	if err != nil {
		metrics.ForecastRequests.WithLabelValues(model, "error").Inc()
		return forecast.Result{}, err
	}

	result.Category = category
	result.GeneratedAt = time.Now().UTC()
	result.HistoricalDataPoints = len(series)
	result.Trend = seriesTrend(series)

	metrics.ForecastRequests.WithLabelValues(model, "success").Inc()
	metrics.ForecastDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())

	s.log.Infow("Forecast completed",
		"category", category,
		"model", result.Model,
		"days_ahead", daysAhead,
		"history_points", len(series),
	)
	return result, nil
}

// ForecastAllCategories forecasts every configured category with the
// ensemble model. A category that fails degrades to a naive forecast;
// the map never loses a key to a single bad category.
func (s *Service) ForecastAllCategories(ctx context.Context, daysAhead int) (map[string]forecast.Result, error) {
	if daysAhead < 1 || daysAhead > 30 {
		return nil, errors.NewValidationError("days_ahead", "must be between 1 and 30", daysAhead)
	}

	results := make(map[string]forecast.Result, len(s.cfg.Categories))
	for _, category := range s.cfg.Categories {
		result, err := s.ForecastCategory(ctx, category, daysAhead, forecast.ModelEnsemble)
		if err != nil {
			s.log.Errorw("Category forecast failed, degrading to naive",
				"category", category,
				"error", err,
			)
			result, err = s.naiveFallback(ctx, category, daysAhead)
			if err != nil {
				return nil, err
			}
		}
		results[category] = result
	}

	return results, nil
}

// naiveFallback produces a forecast without touching the store again
func (s *Service) naiveFallback(ctx context.Context, category string, daysAhead int) (forecast.Result, error) {
	result, err := s.producers[forecast.ModelNaive].Produce(ctx, forecast.DailySeries{}, daysAhead)
	if err != nil {
		return forecast.Result{}, err
	}
	result.Category = category
	result.GeneratedAt = time.Now().UTC()
	result.Trend = forecast.TrendStable
	return result, nil
}

// prepareCategory loads and prepares the daily sales series for a category
func (s *Service) prepareCategory(ctx context.Context, category string, lookbackDays int) (forecast.DailySeries, error) {
	w := signal.WindowEndingNow(time.Duration(lookbackDays) * 24 * time.Hour)

	records, err := s.store.SalesByCategory(ctx, category, w)
	if err != nil {
		return nil, errors.Wrapf(err, "load sales for %s", category)
	}

	return prepareSeries(records), nil
}

// seriesTrend compares the endpoints of the historical series
func seriesTrend(series forecast.DailySeries) string {
	if len(series) < 2 {
		return forecast.TrendStable
	}
	first := series[0].Value
	last := series[len(series)-1].Value
	switch {
	case last > first:
		return forecast.TrendUp
	case last < first:
		return forecast.TrendDown
	default:
		return forecast.TrendStable
	}
}
