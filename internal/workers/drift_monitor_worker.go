package workers

import (
	"context"
	"time"

	"marketmood/internal/events"
	"marketmood/internal/services/forecasting"
)

// DriftMonitorWorker periodically checks every forecastable category for
// concept drift and publishes an alert when a model needs retraining
type DriftMonitorWorker struct {
	*BaseWorker
	forecasts  *forecasting.Service
	publisher  *events.Publisher
	windowDays int
}

// NewDriftMonitorWorker creates a new drift monitor worker
func NewDriftMonitorWorker(
	forecastService *forecasting.Service,
	publisher *events.Publisher,
	windowDays int,
	interval time.Duration,
	enabled bool,
) *DriftMonitorWorker {
	return &DriftMonitorWorker{
		BaseWorker: NewBaseWorker("drift_monitor", interval, enabled),
		forecasts:  forecastService,
		publisher:  publisher,
		windowDays: windowDays,
	}
}

// Run checks each category once
func (w *DriftMonitorWorker) Run(ctx context.Context) error {
	start := time.Now()
	drifted := 0

	for _, category := range w.forecasts.Categories() {
		report, err := w.forecasts.DetectConceptDrift(ctx, category, w.windowDays)
		if err != nil {
			w.Log().Errorw("Drift check failed",
				"category", category,
				"error", err,
			)
			continue
		}

		if !report.DriftDetected {
			continue
		}

		drifted++
		if err := w.publisher.PublishDriftAlert(ctx, report); err != nil {
			w.Log().Errorw("Failed to publish drift alert",
				"category", category,
				"error", err,
			)
		}
	}

	w.RecordRun(time.Since(start))
	w.Log().Infow("Drift monitoring completed",
		"categories", len(w.forecasts.Categories()),
		"drifted", drifted,
	)
	return nil
}
