package workers

import (
	"context"
	"time"

	"marketmood/internal/events"
	"marketmood/internal/services/trends"
)

// TrendScanWorker periodically runs trend detection and publishes early
// warnings for downstream consumers
type TrendScanWorker struct {
	*BaseWorker
	trends    *trends.Service
	publisher *events.Publisher
	threshold float64
}

// NewTrendScanWorker creates a new trend scan worker
func NewTrendScanWorker(
	trendService *trends.Service,
	publisher *events.Publisher,
	threshold float64,
	interval time.Duration,
	enabled bool,
) *TrendScanWorker {
	return &TrendScanWorker{
		BaseWorker: NewBaseWorker("trend_scan", interval, enabled),
		trends:     trendService,
		publisher:  publisher,
		threshold:  threshold,
	}
}

// Run executes one scan: detect trends, derive warnings, publish them
func (w *TrendScanWorker) Run(ctx context.Context) error {
	start := time.Now()

	warnings, err := w.trends.GetEarlyWarnings(ctx, w.threshold)
	if err != nil {
		w.RecordError(err, time.Since(start))
		return err
	}

	for _, warning := range warnings {
		if err := w.publisher.PublishWarning(ctx, warning); err != nil {
			// A failed publish should not abort the rest of the batch
			w.Log().Errorw("Failed to publish warning",
				"keyword", warning.Keyword,
				"error", err,
			)
		}
	}

	w.RecordRun(time.Since(start))
	w.Log().Infow("Trend scan completed", "warnings", len(warnings))
	return nil
}
