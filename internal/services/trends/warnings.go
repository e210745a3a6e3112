package trends

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"marketmood/internal/domain/trend"
	"marketmood/internal/metrics"
	"marketmood/pkg/errors"
)

// GetEarlyWarnings returns actionable alerts for trends that are strong,
// moving fast and corroborated by at least two independent sources within
// the agreement lookback.
func (s *Service) GetEarlyWarnings(ctx context.Context, threshold float64) ([]trend.Warning, error) {
	if threshold < 0 || threshold > 100 {
		return nil, errors.NewValidationError("threshold", "must be between 0 and 100", threshold)
	}

	trends, err := s.DetectTrends(ctx, s.cfg.WindowHours)
	if err != nil {
		return nil, err
	}

	warnings := []trend.Warning{}
	for _, t := range trends {
		if t.Strength < threshold {
			continue
		}
		if math.Abs(t.Velocity) <= s.cfg.WarningVelocityThreshold {
			continue
		}

		agreement, err := s.CheckCrossSourceAgreement(ctx, t.Keyword, s.cfg.AgreementLookback)
		if err != nil {
			return nil, err
		}
		if !agreement.Agreement {
			continue
		}

		alertLevel := trend.AlertMedium
		if t.Strength > 70 {
			alertLevel = trend.AlertHigh
		}

		warnings = append(warnings, trend.Warning{
			ID:             uuid.NewString(),
			Keyword:        t.Keyword,
			AlertLevel:     alertLevel,
			Strength:       t.Strength,
			Velocity:       t.Velocity,
			Sources:        t.Sources,
			Confidence:     agreement.Confidence,
			Recommendation: recommend(t),
			Timestamp:      time.Now().UTC(),
		})
		metrics.WarningsEmitted.WithLabelValues(alertLevel).Inc()
	}

	s.log.Infow("Early warning scan completed",
		"threshold", threshold,
		"warnings", len(warnings),
	)
	return warnings, nil
}

// recommend maps a trend's velocity and sentiment onto an actionable
// recommendation
func recommend(t trend.Trend) string {
	switch {
	case t.Velocity > 0.5 && t.AvgSentiment > 0.3:
		return fmt.Sprintf("OPPORTUNITY: %s showing strong positive momentum. Consider increasing inventory/marketing.", t.Keyword)
	case t.Velocity > 0.5 && t.AvgSentiment < -0.3:
		return fmt.Sprintf("RISK: %s showing negative sentiment surge. Review product quality/pricing.", t.Keyword)
	case t.Velocity < -0.5 && t.AvgSentiment > 0:
		return fmt.Sprintf("CAUTION: %s positive sentiment declining. Monitor closely for issues.", t.Keyword)
	case math.Abs(t.Velocity) > 0.3:
		return fmt.Sprintf("MONITOR: %s showing significant sentiment shift. Investigate cause.", t.Keyword)
	default:
		return fmt.Sprintf("WATCH: %s trending. Continue monitoring.", t.Keyword)
	}
}
