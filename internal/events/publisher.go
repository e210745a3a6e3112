package events

import (
	"context"

	"marketmood/internal/adapters/kafka"
	"marketmood/internal/domain/forecast"
	"marketmood/internal/domain/trend"
	"marketmood/internal/metrics"
	"marketmood/pkg/errors"
	"marketmood/pkg/logger"
)

// Publisher publishes domain events to Kafka
type Publisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

// NewPublisher creates a new event publisher
func NewPublisher(producer *kafka.Producer) *Publisher {
	return &Publisher{
		producer: producer,
		log:      logger.Get().With("component", "event_publisher"),
	}
}

// PublishWarning writes one early warning to the warnings topic, keyed by
// keyword so consumers see per-keyword ordering
func (p *Publisher) PublishWarning(ctx context.Context, w trend.Warning) error {
	if err := p.producer.Publish(ctx, kafka.TopicTrendWarnings, w.Keyword, w); err != nil {
		metrics.KafkaMessages.WithLabelValues(kafka.TopicTrendWarnings, "error").Inc()
		return errors.Wrap(err, "publish trend warning")
	}

	metrics.KafkaMessages.WithLabelValues(kafka.TopicTrendWarnings, "success").Inc()
	p.log.Debugw("Warning published",
		"keyword", w.Keyword,
		"alert_level", w.AlertLevel,
	)
	return nil
}

// PublishDriftAlert writes a drift report to the drift topic, keyed by
// category. Only reports that actually flag drift are worth publishing;
// callers filter.
func (p *Publisher) PublishDriftAlert(ctx context.Context, report forecast.DriftReport) error {
	if err := p.producer.Publish(ctx, kafka.TopicDriftAlerts, report.Category, report); err != nil {
		metrics.KafkaMessages.WithLabelValues(kafka.TopicDriftAlerts, "error").Inc()
		return errors.Wrap(err, "publish drift alert")
	}

	metrics.KafkaMessages.WithLabelValues(kafka.TopicDriftAlerts, "success").Inc()
	p.log.Debugw("Drift alert published",
		"category", report.Category,
		"variance_change", report.VarianceChange,
	)
	return nil
}
