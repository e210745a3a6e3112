package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Worker metrics
	WorkerExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketmood_worker_executions_total",
			Help: "Total number of worker executions",
		},
		[]string{"worker", "status"}, // status: success|error
	)

	WorkerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketmood_worker_duration_seconds",
			Help:    "Worker execution duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"worker"},
	)

	WorkerLastRun = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marketmood_worker_last_run_timestamp",
			Help: "Unix timestamp of last worker execution",
		},
		[]string{"worker"},
	)

	// Trend detection metrics
	DetectionRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketmood_trend_detection_runs_total",
			Help: "Total number of trend detection runs",
		},
		[]string{"status"}, // status: success|error
	)

	TrendsDetected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "marketmood_trends_detected",
			Help: "Number of trends found by the most recent detection run",
		},
	)

	WarningsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketmood_trend_warnings_total",
			Help: "Total number of early warnings emitted",
		},
		[]string{"alert_level"}, // alert_level: HIGH|MEDIUM
	)

	// Forecasting metrics
	ForecastRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketmood_forecast_requests_total",
			Help: "Total number of forecast requests",
		},
		[]string{"model", "status"}, // status: success|error
	)

	ForecastDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketmood_forecast_duration_seconds",
			Help:    "Forecast generation duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"model"},
	)

	ProducerFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketmood_forecast_producer_fallbacks_total",
			Help: "Total number of forecast producer fallbacks",
		},
		[]string{"producer"}, // producer that was skipped as unavailable
	)

	DriftChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketmood_drift_checks_total",
			Help: "Total number of concept drift checks",
		},
		[]string{"category", "outcome"}, // outcome: drift|stable|insufficient_data
	)

	// Database metrics
	DBQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketmood_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"database", "operation", "status"}, // database: postgres|redis
	)

	// System metrics
	KafkaMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketmood_kafka_messages_total",
			Help: "Total Kafka messages produced",
		},
		[]string{"topic", "status"}, // status: success|error
	)

	CacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketmood_cache_requests_total",
			Help: "Total serving-cache lookups",
		},
		[]string{"outcome"}, // outcome: hit|miss|error
	)
)

// Init registers all metrics with Prometheus
func Init() {
	// Worker metrics
	prometheus.MustRegister(WorkerExecutions)
	prometheus.MustRegister(WorkerDuration)
	prometheus.MustRegister(WorkerLastRun)

	// Trend detection metrics
	prometheus.MustRegister(DetectionRuns)
	prometheus.MustRegister(TrendsDetected)
	prometheus.MustRegister(WarningsEmitted)

	// Forecasting metrics
	prometheus.MustRegister(ForecastRequests)
	prometheus.MustRegister(ForecastDuration)
	prometheus.MustRegister(ProducerFallbacks)
	prometheus.MustRegister(DriftChecks)

	// Database metrics
	prometheus.MustRegister(DBQueries)

	// System metrics
	prometheus.MustRegister(KafkaMessages)
	prometheus.MustRegister(CacheRequests)
}

// Handler returns the HTTP handler exposing the metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
