package trends

import (
	"context"
	"math"
	"sort"
	"time"

	"marketmood/internal/domain/signal"
	"marketmood/internal/domain/trend"
	"marketmood/internal/metrics"
	"marketmood/pkg/errors"
	"marketmood/pkg/logger"
)

// Service detects emerging keyword trends from the collected signals
type Service struct {
	store signal.Store
	cfg   DetectorConfig
	log   *logger.Logger
}

// NewService creates a new trend detection service
func NewService(store signal.Store, cfg DetectorConfig, log *logger.Logger) *Service {
	return &Service{
		store: store,
		cfg:   cfg,
		log:   log.With("component", "trend_service"),
	}
}

// DetectTrends scans the last windowHours of signals and returns scored,
// classified trends sorted by strength descending. A window with no
// matching signals yields an empty slice, not an error.
func (s *Service) DetectTrends(ctx context.Context, windowHours int) ([]trend.Trend, error) {
	if windowHours < 1 {
		return nil, errors.NewValidationError("window_hours", "must be at least 1", windowHours)
	}

	w := signal.WindowEndingNow(time.Duration(windowHours) * time.Hour)

	signals, err := s.aggregate(ctx, w)
	if err != nil {
		metrics.DetectionRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	trends := make([]trend.Trend, 0, len(signals))
	for keyword, ks := range signals {
		velocity, err := s.velocity(ctx, keyword, w)
		if err != nil {
			metrics.DetectionRuns.WithLabelValues("error").Inc()
			return nil, err
		}
		growthRate, err := s.growthRate(ctx, keyword, w)
		if err != nil {
			metrics.DetectionRuns.WithLabelValues("error").Inc()
			return nil, err
		}

		strength := scoreTrend(velocity, growthRate, len(ks.Sources), ks.MentionCount)

		trends = append(trends, trend.Trend{
			Keyword:      keyword,
			Strength:     round(strength, 2),
			Velocity:     round(velocity, 3),
			GrowthRate:   round(growthRate, 1),
			Sources:      ks.SourceList(),
			MentionCount: ks.MentionCount,
			AvgSentiment: round(ks.AvgSentiment(), 3),
			Signal:       classifyTrend(strength, velocity),
			DetectedAt:   time.Now().UTC(),
		})
	}

	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].Strength > trends[j].Strength
	})

	metrics.DetectionRuns.WithLabelValues("success").Inc()
	metrics.TrendsDetected.Set(float64(len(trends)))

	s.log.Infow("Trend detection completed",
		"window_hours", windowHours,
		"trends", len(trends),
	)
	return trends, nil
}

// CheckCrossSourceAgreement checks whether independent signal sources
// corroborate a keyword within the lookback window.
func (s *Service) CheckCrossSourceAgreement(ctx context.Context, keyword string, lookback time.Duration) (trend.Agreement, error) {
	if keyword == "" {
		return trend.Agreement{}, errors.NewValidationError("keyword", "must not be empty", keyword)
	}
	if lookback <= 0 {
		lookback = s.cfg.AgreementLookback
	}

	w := signal.WindowEndingNow(lookback)

	newsCount, err := s.store.CountArticlesMatching(ctx, keyword, w)
	if err != nil {
		return trend.Agreement{}, errors.Wrap(err, "agreement news count")
	}
	socialCount, err := s.store.CountSocialPostsMatching(ctx, keyword, w)
	if err != nil {
		return trend.Agreement{}, errors.Wrap(err, "agreement social count")
	}
	searchCount, err := s.store.CountSearchVolumeExact(ctx, keyword, w)
	if err != nil {
		return trend.Agreement{}, errors.Wrap(err, "agreement search count")
	}

	perSource := map[trend.Source]int{
		trend.SourceNews:         newsCount,
		trend.SourceSocial:       socialCount,
		trend.SourceSearchVolume: searchCount,
	}

	sourceCount := 0
	for _, count := range perSource {
		if count > 0 {
			sourceCount++
		}
	}

	confidence := trend.ConfidenceLow
	switch {
	case sourceCount >= 3:
		confidence = trend.ConfidenceHigh
	case sourceCount == 2:
		confidence = trend.ConfidenceMedium
	}

	return trend.Agreement{
		Keyword:     keyword,
		Agreement:   sourceCount >= 2,
		SourceCount: sourceCount,
		PerSource:   perSource,
		Confidence:  confidence,
	}, nil
}

// round rounds v to the given number of decimal places
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
