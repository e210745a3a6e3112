package forecast

import "time"

// Model names accepted by the forecasting service
const (
	ModelARIMA      = "arima"
	ModelRegression = "regression"
	ModelEnsemble   = "ensemble"
	ModelNaive      = "naive"
)

// Trend direction of the historical series a forecast was fitted on
const (
	TrendUp     = "UP"
	TrendDown   = "DOWN"
	TrendStable = "STABLE"
)

// DailyPoint is one observation of a daily demand series
type DailyPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// DailySeries is a gap-free, ascending daily series. Preparation
// guarantees one point per calendar day between the first and last
// observation.
type DailySeries []DailyPoint

// Values returns the series values in order.
func (s DailySeries) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// LastDate returns the date of the final observation, zero time when empty.
func (s DailySeries) LastDate() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Date
}

// Point is one forecast step with a 95% interval. Value and Lower are
// clamped to be non-negative and Upper never drops below Lower.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Lower float64   `json:"lower"`
	Upper float64   `json:"upper"`

	// Components carries the raw per-model values an ensemble point was
	// combined from, keyed by model name. Nil for single-model forecasts.
	Components map[string]float64 `json:"components,omitempty"`
}

// Result is a complete forecast for one category
type Result struct {
	Model                string                 `json:"model"`
	Category             string                 `json:"category"`
	Points               []Point                `json:"points"`
	Params               map[string]interface{} `json:"params,omitempty"`
	Trend                string                 `json:"trend"`
	HistoricalDataPoints int                    `json:"historical_data_points"`
	GeneratedAt          time.Time              `json:"generated_at"`
}

// DriftReport is the outcome of a concept-drift check for one category
type DriftReport struct {
	Category       string  `json:"category"`
	DriftDetected  bool    `json:"drift_detected"`
	VarianceChange float64 `json:"variance_change"`
	Recommendation string  `json:"recommendation"`
	Reason         string  `json:"reason,omitempty"`
}
