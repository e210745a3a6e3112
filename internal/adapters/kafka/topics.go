package kafka

// Topic definitions for Kafka event streaming
const (
	// Trend events
	TopicTrendWarnings = "trends.warnings"

	// Forecast events
	TopicDriftAlerts = "forecasts.drift"
)
