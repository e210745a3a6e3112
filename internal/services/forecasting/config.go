package forecasting

import "time"

// Config holds the tunables of the forecasting engine
type Config struct {
	// Categories forecast by ForecastAllCategories and the drift monitor
	Categories []string

	// LookbackDays is how much history is prepared for fitting
	LookbackDays int

	// MinObservations is the minimum series length the fitted models accept
	MinObservations int

	// ARWeight and RegressionWeight combine the two fitted models into the
	// ensemble value. They are empirical constants, kept configurable
	// rather than re-derived per run.
	ARWeight         float64
	RegressionWeight float64

	// FitTimeout bounds a single model fit; an expired fit degrades to the
	// next producer in the ladder
	FitTimeout time.Duration

	// DriftVarianceThreshold is the relative variance change that flags
	// concept drift
	DriftVarianceThreshold float64

	// DriftWindowDays is the comparison window for drift checks
	DriftWindowDays int
}

// DefaultConfig returns the production defaults
func DefaultConfig() Config {
	return Config{
		Categories:             []string{"phones", "laptops", "fashion", "home", "food"},
		LookbackDays:           14,
		MinObservations:        7,
		ARWeight:               0.4,
		RegressionWeight:       0.6,
		FitTimeout:             5 * time.Second,
		DriftVarianceThreshold: 0.5,
		DriftWindowDays:        7,
	}
}
