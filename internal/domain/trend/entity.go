package trend

import "time"

// Source identifies which signal family contributed evidence for a keyword
type Source string

const (
	SourceNews         Source = "news"
	SourceSocial       Source = "social"
	SourceSearchVolume Source = "search_volume"
)

// Signal classification labels, strongest first
const (
	SignalStrongPositive   = "STRONG EMERGING TREND (POSITIVE)"
	SignalStrongNegative   = "STRONG EMERGING TREND (NEGATIVE)"
	SignalModeratePositive = "MODERATE TREND (POSITIVE)"
	SignalModerateNegative = "MODERATE TREND (NEGATIVE)"
	SignalWeak             = "WEAK TREND"
	SignalStable           = "STABLE / NO TREND"
)

// Alert levels for early warnings
const (
	AlertHigh   = "HIGH"
	AlertMedium = "MEDIUM"
)

// Confidence levels for cross-source agreement
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

// KeywordSignal is the per-keyword evidence accumulated during one
// aggregation pass. It lives only for the duration of a detection run.
type KeywordSignal struct {
	Keyword          string
	MentionCount     int
	Sources          map[Source]struct{}
	SentimentSamples []float64
}

// AvgSentiment returns the mean of the collected sentiment samples,
// zero when there are none.
func (s *KeywordSignal) AvgSentiment() float64 {
	if len(s.SentimentSamples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s.SentimentSamples {
		sum += v
	}
	return sum / float64(len(s.SentimentSamples))
}

// SourceList returns the contributing sources in a stable order.
func (s *KeywordSignal) SourceList() []Source {
	out := make([]Source, 0, len(s.Sources))
	for _, src := range []Source{SourceNews, SourceSocial, SourceSearchVolume} {
		if _, ok := s.Sources[src]; ok {
			out = append(out, src)
		}
	}
	return out
}

// Trend is one scored and classified keyword trend
type Trend struct {
	Keyword      string    `json:"keyword"`
	Strength     float64   `json:"strength"`
	Velocity     float64   `json:"velocity"`
	GrowthRate   float64   `json:"growth_rate"`
	Sources      []Source  `json:"sources"`
	MentionCount int       `json:"mention_count"`
	AvgSentiment float64   `json:"avg_sentiment"`
	Signal       string    `json:"signal"`
	DetectedAt   time.Time `json:"detected_at"`
}

// Warning is an actionable early-warning alert for an accelerating trend
type Warning struct {
	ID             string    `json:"id"`
	Keyword        string    `json:"keyword"`
	AlertLevel     string    `json:"alert_level"`
	Strength       float64   `json:"strength"`
	Velocity       float64   `json:"velocity"`
	Sources        []Source  `json:"sources"`
	Confidence     string    `json:"confidence"`
	Recommendation string    `json:"recommendation"`
	Timestamp      time.Time `json:"timestamp"`
}

// Agreement reports whether independent signal sources corroborate a keyword
type Agreement struct {
	Keyword     string         `json:"keyword"`
	Agreement   bool           `json:"agreement"`
	SourceCount int            `json:"source_count"`
	PerSource   map[Source]int `json:"per_source"`
	Confidence  string         `json:"confidence"`
}
