package forecasting

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat"

	"marketmood/internal/domain/forecast"
	"marketmood/internal/metrics"
	"marketmood/pkg/errors"
)

// Drift report wording
const (
	driftRecommendRetrain = "Retrain model"
	driftRecommendHealthy = "Model performing well"
	driftReasonNoData     = "insufficient_data"
)

// DetectConceptDrift compares the sales variance of the newest window
// against the oldest one; a relative change beyond the configured
// threshold flags drift. Too little history short-circuits to a non-drift
// report with a reason rather than an error.
func (s *Service) DetectConceptDrift(ctx context.Context, category string, windowDays int) (forecast.DriftReport, error) {
	if category == "" {
		return forecast.DriftReport{}, errors.NewValidationError("category", "must not be empty", category)
	}
	if windowDays < 1 {
		return forecast.DriftReport{}, errors.NewValidationError("window_days", "must be at least 1", windowDays)
	}

	series, err := s.prepareCategory(ctx, category, 2*windowDays)
	if err != nil {
		return forecast.DriftReport{}, err
	}

	if len(series) < windowDays {
		metrics.DriftChecks.WithLabelValues(category, driftReasonNoData).Inc()
		return forecast.DriftReport{
			Category:      category,
			DriftDetected: false,
			Reason:        driftReasonNoData,
		}, nil
	}

	values := series.Values()
	olderVar := stat.Variance(values[:windowDays], nil)
	recentVar := stat.Variance(values[len(values)-windowDays:], nil)

	report := forecast.DriftReport{
		Category:       category,
		Recommendation: driftRecommendHealthy,
	}

	if olderVar != 0 {
		change := math.Abs((recentVar - olderVar) / olderVar)
		report.VarianceChange = math.Round(change*1000) / 1000
		if change > s.cfg.DriftVarianceThreshold {
			report.DriftDetected = true
			report.Recommendation = driftRecommendRetrain
		}
	}

	outcome := "stable"
	if report.DriftDetected {
		outcome = "drift"
	}
	metrics.DriftChecks.WithLabelValues(category, outcome).Inc()

	s.log.Infow("Concept drift check completed",
		"category", category,
		"drift", report.DriftDetected,
		"variance_change", report.VarianceChange,
	)
	return report, nil
}
