package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"marketmood/pkg/errors"
)

type Config struct {
	App           AppConfig
	HTTP          HTTPConfig
	Postgres      PostgresConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	Trend         TrendConfig
	Forecast      ForecastConfig
	Cache         CacheConfig
	ErrorTracking ErrorTrackingConfig
	Workers       WorkerConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"marketmood"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Version  string `envconfig:"APP_VERSION" default:"dev"`
}

type HTTPConfig struct {
	Port int `envconfig:"HTTP_PORT" default:"8080"`
}

type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" required:"true"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" required:"true"`
	Password string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	Database string `envconfig:"POSTGRES_DB" required:"true"`
	SSLMode  string `envconfig:"POSTGRES_SSL_MODE" default:"disable"`
	MaxConns int    `envconfig:"POSTGRES_MAX_CONNS" default:"25"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
}

// TrendConfig holds the tunables of the trend detection engine.
// SearchVolumeMentionDivisor maps the 0-100 search-volume index onto the
// mention scale; it is an empirical constant, keep it overridable rather
// than re-derived.
type TrendConfig struct {
	TrackedKeywords            []string      `envconfig:"TREND_TRACKED_KEYWORDS" default:"iPhone,OnePlus,Samsung,Xiaomi,Realme,Amazon,Flipkart,laptop,phone,smartphone,gadget,fashion,ecommerce,sale,discount"`
	WindowHours                int           `envconfig:"TREND_WINDOW_HOURS" default:"48"`
	WarningThreshold           float64       `envconfig:"TREND_WARNING_THRESHOLD" default:"50"`
	WarningVelocityThreshold   float64       `envconfig:"TREND_WARNING_VELOCITY_THRESHOLD" default:"0.5"`
	AgreementLookback          time.Duration `envconfig:"TREND_AGREEMENT_LOOKBACK" default:"24h"`
	SearchVolumeMentionDivisor int           `envconfig:"TREND_SEARCH_VOLUME_MENTION_DIVISOR" default:"10"`
}

// ForecastConfig holds the tunables of the forecasting engine.
// The ensemble weights are empirical constants (regression weighted higher,
// smoother for daily/weekly seasonal demand data); keep them overridable
// rather than re-derived.
type ForecastConfig struct {
	Categories             []string      `envconfig:"FORECAST_CATEGORIES" default:"phones,laptops,fashion,home,food"`
	LookbackDays           int           `envconfig:"FORECAST_LOOKBACK_DAYS" default:"14"`
	HorizonDays            int           `envconfig:"FORECAST_HORIZON_DAYS" default:"7"`
	MinObservations        int           `envconfig:"FORECAST_MIN_OBSERVATIONS" default:"7"`
	ARWeight               float64       `envconfig:"FORECAST_AR_WEIGHT" default:"0.4"`
	RegressionWeight       float64       `envconfig:"FORECAST_REGRESSION_WEIGHT" default:"0.6"`
	FitTimeout             time.Duration `envconfig:"FORECAST_FIT_TIMEOUT" default:"5s"`
	DriftVarianceThreshold float64       `envconfig:"FORECAST_DRIFT_VARIANCE_THRESHOLD" default:"0.5"`
	DriftWindowDays        int           `envconfig:"FORECAST_DRIFT_WINDOW_DAYS" default:"7"`
}

type CacheConfig struct {
	Enabled bool          `envconfig:"CACHE_ENABLED" default:"true"`
	TTL     time.Duration `envconfig:"CACHE_TTL" default:"5m"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// WorkerConfig contains intervals for the background workers
type WorkerConfig struct {
	TrendScanEnabled     bool          `envconfig:"WORKER_TREND_SCAN_ENABLED" default:"true"`
	TrendScanInterval    time.Duration `envconfig:"WORKER_TREND_SCAN_INTERVAL" default:"1h"`
	DriftMonitorEnabled  bool          `envconfig:"WORKER_DRIFT_MONITOR_ENABLED" default:"true"`
	DriftMonitorInterval time.Duration `envconfig:"WORKER_DRIFT_MONITOR_INTERVAL" default:"6h"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
